package task

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency level picked when a task is created.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Rank orders priorities: high > medium > low. Unknown values rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// Next cycles high -> medium -> low -> high.
func (p Priority) Next() Priority {
	for i, candidate := range Priorities {
		if candidate == p {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return PriorityLow
}

func ParsePriority(v string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(v)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPriority, v)
	}
	return p, nil
}

// Task is a single to-do record. The json tags are the stored record format.
type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Priority  Priority  `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
}

// normalize enforces the collection invariants on data read from storage:
// non-empty text, unique ids and a known priority.
func normalize(tasks []Task) ([]Task, int) {
	out := make([]Task, 0, len(tasks))
	seen := make(map[int64]struct{}, len(tasks))
	dropped := 0
	for _, t := range tasks {
		t.Text = strings.TrimSpace(t.Text)
		if t.Text == "" {
			dropped++
			continue
		}
		if _, dup := seen[t.ID]; dup {
			dropped++
			continue
		}
		seen[t.ID] = struct{}{}
		if !t.Priority.Valid() {
			t.Priority = PriorityLow
		}
		out = append(out, t)
	}
	return out, dropped
}
