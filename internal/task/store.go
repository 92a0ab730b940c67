package task

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
)

// Repository reads and writes the whole collection at once.
type Repository interface {
	Load() ([]Task, error)
	Save(tasks []Task) error
}

// Signal tells presentation effects what a mutation did.
type Signal int

const (
	SignalNone Signal = iota
	SignalAdded
	SignalCompleted
	SignalDeleted
)

func (s Signal) String() string {
	switch s {
	case SignalAdded:
		return "added"
	case SignalCompleted:
		return "completed"
	case SignalDeleted:
		return "deleted"
	default:
		return "none"
	}
}

// Outcome describes the result of one mutation. Changed is false when the
// mutation was a no-op, e.g. the id was not found.
type Outcome struct {
	Signal  Signal
	Task    Task
	Changed bool
}

// Store owns the ordered task collection. Its mutation methods are the only
// way to change it; each one that changes something persists the whole
// collection before returning.
type Store struct {
	repo   Repository
	tasks  []Task
	lastID int64
	now    func() time.Time
	log    *slog.Logger
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open loads the collection from repo. Unreadable or malformed data is
// replaced by an empty collection and logged; Open never fails on it.
func Open(repo Repository, opts ...Option) *Store {
	s := &Store{
		repo: repo,
		now:  time.Now,
		log:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

func (s *Store) load() {
	loaded, err := s.repo.Load()
	if err != nil {
		s.log.Warn("stored tasks unreadable, starting empty", "error", err)
		loaded = nil
	}
	tasks, dropped := normalize(loaded)
	if dropped > 0 {
		s.log.Warn("dropped invalid stored tasks", "count", dropped)
	}
	s.tasks = tasks
	for _, t := range tasks {
		s.lastID = max(s.lastID, t.ID)
	}
	s.log.Debug("tasks loaded", "count", len(tasks))
}

func (s *Store) persist() error {
	if err := s.repo.Save(s.tasks); err != nil {
		s.log.Error("persist tasks", "error", err)
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}

// Tasks returns a copy of the collection in stored order.
func (s *Store) Tasks() []Task {
	return slices.Clone(s.tasks)
}

func (s *Store) Get(id int64) (Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

// nextID is creation-time based but strictly increasing, so two tasks created
// within the same millisecond still get distinct ids.
func (s *Store) nextID() int64 {
	id := max(s.now().UnixMilli(), s.lastID+1)
	s.lastID = id
	return id
}

func (s *Store) Add(text string, priority Priority) (Outcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Outcome{}, ErrEmptyText
	}
	if !priority.Valid() {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownPriority, priority)
	}
	t := Task{
		ID:        s.nextID(),
		Text:      text,
		Priority:  priority,
		CreatedAt: s.now().UTC(),
	}
	s.tasks = append(s.tasks, t)
	s.log.Debug("task added", "id", t.ID, "priority", t.Priority)
	return Outcome{Signal: SignalAdded, Task: t, Changed: true}, s.persist()
}

func (s *Store) Toggle(id int64) (Outcome, error) {
	i := s.indexOf(id)
	if i < 0 {
		s.log.Debug("toggle: no such task", "id", id)
		return Outcome{}, nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	out := Outcome{Task: s.tasks[i], Changed: true}
	if s.tasks[i].Completed {
		out.Signal = SignalCompleted
	}
	return out, s.persist()
}

func (s *Store) Delete(id int64) (Outcome, error) {
	i := s.indexOf(id)
	if i < 0 {
		s.log.Debug("delete: no such task", "id", id)
		return Outcome{}, nil
	}
	removed := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return Outcome{Signal: SignalDeleted, Task: removed, Changed: true}, s.persist()
}

// Edit replaces the text of a task. Blank text deletes the task instead.
func (s *Store) Edit(id int64, text string) (Outcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.Delete(id)
	}
	i := s.indexOf(id)
	if i < 0 {
		s.log.Debug("edit: no such task", "id", id)
		return Outcome{}, nil
	}
	s.tasks[i].Text = text
	return Outcome{Task: s.tasks[i], Changed: true}, s.persist()
}

// Reorder moves a task to the index the target occupied before the move.
// Dragging down therefore lands after the target, dragging up before it.
func (s *Store) Reorder(movedID, targetID int64) (Outcome, error) {
	if movedID == targetID {
		return Outcome{}, nil
	}
	from, to := s.indexOf(movedID), s.indexOf(targetID)
	if from < 0 || to < 0 {
		s.log.Debug("reorder: no such task", "moved", movedID, "target", targetID)
		return Outcome{}, nil
	}
	moved := s.tasks[from]
	s.tasks = slices.Delete(s.tasks, from, from+1)
	s.tasks = slices.Insert(s.tasks, to, moved)
	return Outcome{Task: moved, Changed: true}, s.persist()
}
