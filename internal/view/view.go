// Package view derives what is shown from the task collection: the filtered,
// sorted rows and the counters. It never mutates the collection.
package view

import (
	"fmt"
	"slices"
	"strings"

	"cosmic/internal/task"
)

// Filter selects which tasks are displayed.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterHigh      Filter = "high"
)

// Filters is the selector order used by the UI.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted, FilterHigh}

func ParseFilter(v string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(v)))
	if !slices.Contains(Filters, f) {
		return "", fmt.Errorf("unknown filter %q", v)
	}
	return f, nil
}

// Next cycles through Filters.
func (f Filter) Next() Filter {
	i := slices.Index(Filters, f)
	return Filters[(i+1)%len(Filters)]
}

// Match reports whether t passes the filter. The high filter ignores
// completion status.
func (f Filter) Match(t task.Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterHigh:
		return t.Priority == task.PriorityHigh
	default:
		return true
	}
}

// Compute filters tasks and sorts them for display: incomplete before
// completed, then by priority, high first. The sort is stable so tasks equal
// on both keys keep their collection order.
func Compute(tasks []task.Task, f Filter) []task.Task {
	rows := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			rows = append(rows, t)
		}
	}
	slices.SortStableFunc(rows, compareRows)
	return rows
}

func compareRows(a, b task.Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	return b.Priority.Rank() - a.Priority.Rank()
}

type Stats struct {
	Total     int
	Completed int
	Pending   int
}

// ComputeStats counts over the unfiltered collection.
func ComputeStats(tasks []task.Task) Stats {
	var st Stats
	st.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	return st
}
