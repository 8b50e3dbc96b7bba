package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority   = errors.New("model: invalid task priority")
	ErrInvalidRecurrence = errors.New("model: invalid task recurrence")
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank orders priorities for sorting: high > medium > low. Unknown values
// rank below low so corrupted data sinks instead of surfacing.
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

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     string     `json:"dueDate"`
	Priority    Priority   `json:"priority"`
	Reminder    string     `json:"reminder"`
	Recurrence  Recurrence `json:"recurrence"`
	Completed   bool       `json:"completed"`
	Subtasks    []Subtask  `json:"subtasks"`
	Comments    []Comment  `json:"comments"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.Recurrence.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRecurrence, t.Recurrence)
	}
	return nil
}

// DueTime parses the task's due date. An empty or unparseable value reports
// the zero time, which sorts before every real timestamp.
func (t Task) DueTime() time.Time {
	raw := strings.TrimSpace(t.DueDate)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func (s Subtask) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("model: subtask id is required")
	}
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("model: subtask title is required")
	}
	return nil
}

type Comment struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author"`
	Date   string `json:"date"`
}

func (c Comment) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: comment id is required")
	}
	if strings.TrimSpace(c.Text) == "" {
		return errors.New("model: comment text is required")
	}
	return nil
}
