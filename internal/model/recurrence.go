package model

import (
	"errors"
	"fmt"
	"time"
)

type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

var ErrNoRecurrence = errors.New("model: task does not recur")

func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}

// NextAfter computes the next occurrence strictly after from. Monthly
// recurrence steps by calendar month; time.AddDate normalizes overflow, so
// Jan 31 + 1 month lands on Mar 2/3 rather than failing.
func (r Recurrence) NextAfter(from time.Time) (time.Time, error) {
	switch r {
	case RecurrenceDaily:
		return from.AddDate(0, 0, 1), nil
	case RecurrenceWeekly:
		return from.AddDate(0, 0, 7), nil
	case RecurrenceMonthly:
		return from.AddDate(0, 1, 0), nil
	case RecurrenceNone:
		return time.Time{}, ErrNoRecurrence
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidRecurrence, r)
	}
}

// Preview lists the next count occurrences after from, for display beside a
// recurring task.
func (r Recurrence) Preview(from time.Time, count int) ([]time.Time, error) {
	if count <= 0 {
		return []time.Time{}, nil
	}
	out := make([]time.Time, 0, count)
	cursor := from
	for i := 0; i < count; i++ {
		next, err := r.NextAfter(cursor)
		if err != nil {
			return nil, err
		}
		out = append(out, next)
		cursor = next
	}
	return out, nil
}
