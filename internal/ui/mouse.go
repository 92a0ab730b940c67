package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cosmic/internal/task"
)

const doubleClickWindow = 400 * time.Millisecond

// mouseState tracks a press-drag-release gesture and the previous click for
// double-click detection.
type mouseState struct {
	pressed     bool
	pressID     int64
	lastClickID int64
	lastClickAt time.Time
}

// rowAt maps a screen line to an index into m.rows, taking the scroll
// offset into account.
func (m Model) rowAt(y int) (int, bool) {
	line := y - listTop
	if line < 0 || line >= m.visibleRows() {
		return 0, false
	}
	i := m.offset + line
	if i >= len(m.rows) {
		return 0, false
	}
	return i, true
}

func (m Model) updateMouse(ev tea.MouseEvent) (tea.Model, tea.Cmd) {
	switch ev.Action {
	case tea.MouseActionPress:
		switch ev.Button {
		case tea.MouseButtonWheelUp:
			m.cursor = clampCursor(m.cursor-1, len(m.rows))
			return m, nil
		case tea.MouseButtonWheelDown:
			m.cursor = clampCursor(m.cursor+1, len(m.rows))
			return m, nil
		case tea.MouseButtonLeft:
			return m.press(ev.Y)
		}
	case tea.MouseActionMotion:
		if !m.mouse.pressed {
			return m, nil
		}
		if i, ok := m.rowAt(ev.Y); ok {
			m.cursor = i
		}
	case tea.MouseActionRelease:
		return m.release(ev.Y)
	}
	return m, nil
}

func (m Model) press(y int) (tea.Model, tea.Cmd) {
	i, onRow := m.rowAt(y)
	switch m.mode {
	case modeEdit:
		if onRow && m.rows[i].ID == m.editID {
			return m, nil
		}
		// Clicking anywhere else takes focus away from the field.
		cmd := m.commitEdit()
		return m, cmd
	case modeAdd:
		return m, nil
	}
	if !onRow {
		return m, nil
	}

	m.cursor = i
	t := m.rows[i]
	now := m.now()
	if t.ID == m.mouse.lastClickID && now.Sub(m.mouse.lastClickAt) <= doubleClickWindow {
		m.mouse = mouseState{}
		return m.startEdit(t)
	}
	m.mouse.lastClickID = t.ID
	m.mouse.lastClickAt = now
	m.mouse.pressID = t.ID
	m.mouse.pressed = true
	return m, nil
}

// release finishes a drag: dropping onto another row reorders.
func (m Model) release(y int) (tea.Model, tea.Cmd) {
	if !m.mouse.pressed {
		return m, nil
	}
	m.mouse.pressed = false
	moved := m.mouse.pressID
	i, ok := m.rowAt(y)
	if !ok || m.rows[i].ID == moved {
		return m, nil
	}
	m.mouse.lastClickAt = time.Time{}
	m.status = "Moved"
	_, cmd := m.dispatch(task.ReorderCommand{MovedID: moved, TargetID: m.rows[i].ID})
	return m, cmd
}
