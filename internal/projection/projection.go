// Package projection derives display-ready task lists from the canonical
// collection. Nothing here mutates its input; every call builds a fresh
// slice so the canonical order is never disturbed by what the UI shows.
package projection

import (
	"sort"

	"github.com/tasknest/tasknest/internal/model"
)

type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterActive    FilterMode = "active"
	FilterCompleted FilterMode = "completed"
)

func (f FilterMode) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

type SortKey string

const (
	SortNone     SortKey = ""
	SortDueDate  SortKey = "dueDate"
	SortPriority SortKey = "priority"
)

// Filter selects tasks by completion state, preserving relative order.
// Unknown modes behave like FilterAll.
func Filter(tasks []model.Task, mode FilterMode) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		switch mode {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Sort orders a copy of tasks by the given key. Priority sorts descending by
// rank (high first); due date sorts ascending with absent dates first, since
// an empty dueDate parses to the zero time. Both sorts are stable so equal
// elements keep their canonical relative order.
func Sort(tasks []model.Task, key SortKey) []model.Task {
	out := append([]model.Task(nil), tasks...)
	switch key {
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() > out[j].Priority.Rank()
		})
	case SortDueDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DueTime().Before(out[j].DueTime())
		})
	}
	return out
}

// Progress reports completed and total subtask counts for display next to a
// task title.
func Progress(task model.Task) (completed, total int) {
	for _, s := range task.Subtasks {
		if s.Completed {
			completed++
		}
	}
	return completed, len(task.Subtasks)
}
