package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"cosmic/internal/config"
)

type keyMap struct {
	Quit     key.Binding
	Add      key.Binding
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	Detail   key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Edit     key.Binding
	Grab     key.Binding
	Filter   key.Binding
	Priority key.Binding
	Filters  key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys(append(keysFor(k.Quit), "ctrl+c")...), key.WithHelp(label(k.Quit), "quit")),
		Add:      key.NewBinding(key.WithKeys(keysFor(k.Add)...), key.WithHelp(label(k.Add), "add")),
		Up:       key.NewBinding(key.WithKeys(append(keysFor(k.Up), "up")...), key.WithHelp(label(k.Up)+"/↑", "up")),
		Down:     key.NewBinding(key.WithKeys(append(keysFor(k.Down), "down")...), key.WithHelp(label(k.Down)+"/↓", "down")),
		Toggle:   key.NewBinding(key.WithKeys(keysFor(k.Toggle)...), key.WithHelp(label(k.Toggle), "toggle")),
		Delete:   key.NewBinding(key.WithKeys(keysFor(k.Delete)...), key.WithHelp(label(k.Delete), "delete")),
		Detail:   key.NewBinding(key.WithKeys(keysFor(k.Detail)...), key.WithHelp(label(k.Detail), "detail")),
		Confirm:  key.NewBinding(key.WithKeys(keysFor(k.Confirm)...), key.WithHelp(label(k.Confirm), "confirm")),
		Cancel:   key.NewBinding(key.WithKeys(keysFor(k.Cancel)...), key.WithHelp(label(k.Cancel), "cancel")),
		Edit:     key.NewBinding(key.WithKeys(keysFor(k.Edit)...), key.WithHelp(label(k.Edit), "edit")),
		Grab:     key.NewBinding(key.WithKeys(keysFor(k.Grab)...), key.WithHelp(label(k.Grab), "move")),
		Filter:   key.NewBinding(key.WithKeys(keysFor(k.Filter)...), key.WithHelp(label(k.Filter), "filter")),
		Priority: key.NewBinding(key.WithKeys(keysFor(k.Priority)...), key.WithHelp(label(k.Priority), "priority")),
		Filters:  key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "filter")),
	}
}

// keysFor accepts both spellings of the space bar.
func keysFor(k string) []string {
	if k == " " || k == "space" {
		return []string{" ", "space"}
	}
	return []string{k}
}

func label(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.Grab, k.Filter, k.Priority, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Detail},
		{k.Add, k.Toggle, k.Edit, k.Delete},
		{k.Grab, k.Confirm, k.Cancel},
		{k.Filter, k.Filters, k.Priority, k.Quit},
	}
}
