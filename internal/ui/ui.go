package ui

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cosmic/internal/config"
	"cosmic/internal/task"
	"cosmic/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

const (
	defaultWidth = 60
	// listTop is the screen line of the first task row: title, stars, stats,
	// selectors and the confetti strip come first.
	listTop = 5
)

type Model struct {
	store *task.Store
	cfg   config.Config
	keys  keyMap
	help  help.Model

	rows   []task.Task
	stats  view.Stats
	cursor int
	mode   mode
	input  textinput.Model
	status string

	filter   view.Filter
	priority task.Priority
	dragID   int64
	dragging bool
	editID   int64

	confirmDel bool
	pendingDel *task.Task

	toast    *toast
	confetti *confetti
	stars    string
	seq      int
	width    int
	height   int
	offset   int // index of the first row on screen

	mouse mouseState
	rng   *rand.Rand
	now   func() time.Time
}

func New(store *task.Store, cfg config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 256
	ti.Width = 40

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	m := Model{
		store:    store,
		cfg:      cfg,
		keys:     newKeyMap(cfg.Keys),
		help:     help.New(),
		status:   fmt.Sprintf("Press '%s' to add, %s to toggle, '%s' to edit.", cfg.Keys.Add, label(cfg.Keys.Toggle), cfg.Keys.Edit),
		input:    ti,
		mode:     modeList,
		filter:   cfg.Filter(),
		priority: cfg.Priority(),
		width:    defaultWidth,
		rng:      rng,
		now:      time.Now,
	}
	m.stars = newStarfield(rng, m.width)
	m.refresh()
	return m
}

// Run starts the interactive session and blocks until the user quits.
func Run(store *task.Store, cfg config.Config, configPath string, firstLaunch bool) error {
	m := New(store, cfg)
	if firstLaunch {
		m.status = "Welcome! Settings were written to " + configPath
	}
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	nm := next.(Model)
	nm.scroll()
	return nm, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			// A pending edit is kept, a half-typed new task is not.
			m.commitEdit()
			return m, tea.Quit
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg)
		case modeEdit:
			return m.updateEditMode(msg)
		}
		return m.updateListMode(msg)
	case tea.MouseMsg:
		if !m.cfg.Mouse || m.confirmDel {
			return m, nil
		}
		return m.updateMouse(tea.MouseEvent(msg))
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.input.Width = msg.Width - 10
		m.help.Width = msg.Width
		if msg.Width > 0 && msg.Width != m.width {
			m.width = msg.Width
			m.stars = newStarfield(m.rng, m.width)
		}
	case toastExpiredMsg:
		if m.toast != nil && m.toast.seq == msg.seq {
			m.toast = nil
		}
	case confettiFrameMsg:
		if m.confetti == nil || m.confetti.seq != msg.seq {
			return m, nil
		}
		if m.confetti.advance() {
			m.confetti = nil
			return m, nil
		}
		return m, nextConfettiFrame(msg.seq)
	}
	return m, nil
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		out, cmd := m.dispatch(task.AddCommand{Text: m.input.Value(), Priority: m.priority})
		if !out.Changed {
			return m, cmd
		}
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		m.status = "Added task"
		return m, cmd
	case msg.Type == tea.KeyTab:
		m.priority = m.priority.Next()
		m.status = m.addStatus()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dragging {
		switch {
		case key.Matches(msg, m.keys.Grab), key.Matches(msg, m.keys.Confirm):
			return m.drop()
		case key.Matches(msg, m.keys.Cancel):
			m.dragging = false
			m.status = "Move cancelled"
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		if len(m.rows) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(m.rows))
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.rows))
		}
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.Placeholder = "What needs doing?"
		m.input.SetValue("")
		m.status = m.addStatus()
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Toggle):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		_, cmd := m.dispatch(task.ToggleCommand{ID: t.ID})
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		if !m.cfg.ConfirmDelete {
			_, cmd := m.dispatch(task.DeleteCommand{ID: t.ID})
			return m, cmd
		}
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Text)
	case key.Matches(msg, m.keys.Edit):
		t, ok := m.selected()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		return m.startEdit(t)
	case key.Matches(msg, m.keys.Grab):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.dragID = t.ID
		m.dragging = true
		m.status = fmt.Sprintf("Moving \"%s\": pick a spot and press %s", t.Text, label(m.cfg.Keys.Grab))
	case key.Matches(msg, m.keys.Filter):
		m.setFilter(m.filter.Next())
	case key.Matches(msg, m.keys.Filters):
		m.setFilter(view.Filters[int(msg.String()[0]-'1')])
	case key.Matches(msg, m.keys.Priority):
		m.priority = m.priority.Next()
		m.status = "New tasks: " + string(m.priority)
	case key.Matches(msg, m.keys.Detail):
		t, ok := m.selected()
		if !ok {
			m.status = "No tasks"
			return m, nil
		}
		m.status = detail(t)
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "n", "N", "esc":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		_, cmd := m.dispatch(task.DeleteCommand{ID: m.pendingDel.ID})
		m.confirmDel = false
		m.pendingDel = nil
		return m, cmd
	default:
		return m, nil
	}
}

func (m Model) startEdit(t task.Task) (tea.Model, tea.Cmd) {
	m.mode = modeEdit
	m.editID = t.ID
	m.dragging = false
	m.input.SetValue(t.Text)
	m.input.CursorEnd()
	m.status = "Editing: enter or leaving the field saves, an empty text deletes"
	cmd := m.input.Focus()
	return m, cmd
}

// updateEditMode commits on Enter and on anything that moves focus away
// from the field.
func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm),
		key.Matches(msg, m.keys.Cancel),
		msg.Type == tea.KeyTab, msg.Type == tea.KeyShiftTab,
		msg.Type == tea.KeyUp, msg.Type == tea.KeyDown:
		cmd := m.commitEdit()
		return m, cmd
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// commitEdit applies the pending edit once and leaves edit mode.
func (m *Model) commitEdit() tea.Cmd {
	if m.mode != modeEdit {
		return nil
	}
	id, text := m.editID, m.input.Value()
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	m.status = "Saved"
	_, cmd := m.dispatch(task.EditCommand{ID: id, Text: text})
	return cmd
}

func (m Model) drop() (tea.Model, tea.Cmd) {
	moved := m.dragID
	m.dragging = false
	target, ok := m.selected()
	if !ok || target.ID == moved {
		m.status = "Move cancelled"
		return m, nil
	}
	m.status = "Moved"
	_, cmd := m.dispatch(task.ReorderCommand{MovedID: moved, TargetID: target.ID})
	return m, cmd
}

func (m *Model) setFilter(f view.Filter) {
	m.filter = f
	m.status = "Filter: " + string(f)
	m.refresh()
}

// dispatch applies a command, re-derives the view and starts the effects the
// outcome calls for.
func (m *Model) dispatch(cmd task.Command) (task.Outcome, tea.Cmd) {
	out, err := m.store.Dispatch(cmd)

	m.refresh()
	switch cmd.(type) {
	case task.AddCommand, task.EditCommand, task.ReorderCommand:
		if out.Changed {
			m.focus(out.Task.ID)
		}
	}
	return out, m.react(out, err)
}

func (m *Model) react(out task.Outcome, err error) tea.Cmd {
	switch {
	case errors.Is(err, task.ErrEmptyText):
		return m.showToast("Please enter a task!", severityError)
	case err != nil:
		return m.showToast(fmt.Sprintf("save failed: %v", err), severityError)
	}
	switch out.Signal {
	case task.SignalAdded:
		return m.showToast("Task added successfully!", severitySuccess)
	case task.SignalCompleted:
		return tea.Batch(m.showToast("Task completed! Great job!", severitySuccess), m.celebrate())
	case task.SignalDeleted:
		return m.showToast("Task deleted!", severityInfo)
	}
	return nil
}

func (m *Model) showToast(text string, sev severity) tea.Cmd {
	m.seq++
	m.toast = &toast{text: text, severity: sev, seq: m.seq}
	secs := m.cfg.ToastSeconds
	if secs <= 0 {
		secs = 3
	}
	return expireToast(m.seq, time.Duration(secs)*time.Second)
}

func (m *Model) celebrate() tea.Cmd {
	if !m.cfg.Celebrate {
		return nil
	}
	m.seq++
	m.confetti = newConfetti(m.rng, m.width, m.seq)
	return nextConfettiFrame(m.seq)
}

// refresh recomputes rows and counters from the store.
func (m *Model) refresh() {
	all := m.store.Tasks()
	m.rows = view.Compute(all, m.filter)
	m.stats = view.ComputeStats(all)
	m.cursor = clampCursor(m.cursor, len(m.rows))
}

// focus moves the cursor onto the task if it is visible under the filter.
func (m *Model) focus(id int64) {
	if i := m.rowIndex(id); i >= 0 {
		m.cursor = i
	}
}

// visibleRows is how many task rows fit between the header and the footer.
// Before the first WindowSizeMsg every row is shown.
func (m Model) visibleRows() int {
	if m.height <= 0 {
		return max(len(m.rows), 1)
	}
	// blank line, status and help below the list
	n := m.height - listTop - 3
	if m.mode == modeAdd {
		n -= 2
	}
	return max(n, 1)
}

// scroll keeps the cursor inside the rendered window of rows.
func (m *Model) scroll() {
	n := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+n {
		m.offset = m.cursor - n + 1
	}
	m.offset = max(0, min(m.offset, len(m.rows)-n))
}

func (m Model) held(t task.Task) bool {
	return (m.dragging && t.ID == m.dragID) || (m.mouse.pressed && t.ID == m.mouse.pressID)
}

func (m Model) addStatus() string {
	return fmt.Sprintf("Add mode: type a task and press Enter (tab: priority %s)", m.priority)
}

func (m Model) rowIndex(id int64) int {
	for i, t := range m.rows {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (m Model) selected() (task.Task, bool) {
	if len(m.rows) == 0 {
		return task.Task{}, false
	}
	return m.rows[clampCursor(m.cursor, len(m.rows))], true
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("✦ Cosmic Tasks"))
	b.WriteString("\n")
	b.WriteString(starStyle.Render(m.stars))
	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")
	b.WriteString(m.renderSelectors())
	b.WriteString("\n")
	b.WriteString(m.confetti.view())
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(mutedStyle.Render(emptyMessage(m.filter, m.stats.Total, m.cfg.Keys.Add)))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	if m.mode == modeAdd {
		b.WriteString("\n")
		b.WriteString("Add Task (" + priorityBadge(m.priority) + "): ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	if t := m.toast.view(); t != "" {
		b.WriteString("  ")
		b.WriteString(t)
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) renderStats() string {
	return fmt.Sprintf("Total %d • Completed %d • Pending %d", m.stats.Total, m.stats.Completed, m.stats.Pending)
}

func (m Model) renderSelectors() string {
	var chips []string
	for _, f := range view.Filters {
		if f == m.filter {
			chips = append(chips, activeChipStyle.Render(string(f)))
		} else {
			chips = append(chips, chipStyle.Render(string(f)))
		}
	}
	return strings.Join(chips, "") + "  new: " + priorityBadge(m.priority)
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	end := min(m.offset+m.visibleRows(), len(m.rows))
	for i := m.offset; i < end; i++ {
		t := m.rows[i]
		cursor := " "
		if m.cursor == i && m.mode != modeAdd {
			cursor = cursorStyle.Render(">")
		}

		grip := " "
		if m.held(t) {
			grip = "≡"
		}

		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}

		text := t.Text
		switch {
		case m.mode == modeEdit && t.ID == m.editID:
			text = m.input.View()
		case t.Completed:
			text = completedStyle.Render(text)
		}
		if (m.dragging || m.mouse.pressed) && m.cursor == i && !m.held(t) {
			text = dropStyle.Render(text)
		}

		b.WriteString(fmt.Sprintf("%s%s %s %s  %s", cursor, grip, checkbox, text, priorityBadge(t.Priority)))
		b.WriteString("\n")
	}
	return b.String()
}

func emptyMessage(f view.Filter, total int, addKey string) string {
	if total == 0 {
		return fmt.Sprintf("No tasks yet. Press '%s' to add one.", addKey)
	}
	return fmt.Sprintf("No %s tasks.", f)
}

func detail(t task.Task) string {
	info := fmt.Sprintf("Task #%d • %s • %s • priority:%s", t.ID, t.Text, humanDone(t.Completed), t.Priority)
	if !t.CreatedAt.IsZero() {
		info += " • created:" + t.CreatedAt.Local().Format("2006-01-02 15:04")
	}
	return info
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func humanDone(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}
