// Package tasks implements every mutation of the active user's task tree:
// add/toggle/delete for tasks and subtasks, append-only comments, and
// canonical reordering. Each operation transforms the collection and then
// persists it through the session manager before returning.
package tasks

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/session"
)

var (
	ErrNoSession  = session.ErrNoSession
	ErrEmptyTitle = errors.New("tasks: title is required")
)

type TaskInput struct {
	Title       string
	Description string
	DueDate     string
	Priority    model.Priority
	Reminder    string
	Recurrence  model.Recurrence
}

type Mutator struct {
	sessions *session.Manager
	ids      *model.IDGenerator
	now      func() time.Time
}

func NewMutator(sessions *session.Manager, ids *model.IDGenerator) *Mutator {
	if ids == nil {
		ids = model.NewIDGenerator()
	}
	return &Mutator{sessions: sessions, ids: ids, now: time.Now}
}

// WithClock pins the mutator's clock, for tests that assert comment
// timestamps.
func (m *Mutator) WithClock(now func() time.Time) *Mutator {
	m.now = now
	return m
}

func (m *Mutator) canonical() ([]model.Task, error) {
	current := m.sessions.Current()
	if current == nil {
		return nil, ErrNoSession
	}
	return current.Tasks, nil
}

// Add appends a new task to the end of the canonical sequence. The task
// starts uncompleted with empty subtask and comment sequences.
func (m *Mutator) Add(ctx context.Context, in TaskInput) (model.Task, error) {
	tasks, err := m.canonical()
	if err != nil {
		return model.Task{}, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return model.Task{}, ErrEmptyTitle
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if in.Recurrence == "" {
		in.Recurrence = model.RecurrenceNone
	}

	task := model.Task{
		ID:          m.ids.Next(),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Reminder:    in.Reminder,
		Recurrence:  in.Recurrence,
		Completed:   false,
		Subtasks:    []model.Subtask{},
		Comments:    []model.Comment{},
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}

	updated := append(model.CloneTasks(tasks), task)
	if err := m.sessions.ReplaceTasks(ctx, updated); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// Toggle flips the completed flag on the matching task. Subtask completion is
// untouched; there is no roll-up in either direction. An absent id is a
// silent no-op.
func (m *Mutator) Toggle(ctx context.Context, taskID string) error {
	return m.updateTask(ctx, taskID, func(t *model.Task) {
		t.Completed = !t.Completed
	})
}

// Delete removes the matching task and, by containment, its subtasks and
// comments. An absent id leaves the sequence unchanged.
func (m *Mutator) Delete(ctx context.Context, taskID string) error {
	tasks, err := m.canonical()
	if err != nil {
		return err
	}
	updated := make([]model.Task, 0, len(tasks))
	removed := false
	for _, t := range tasks {
		if t.ID == taskID {
			removed = true
			continue
		}
		updated = append(updated, t)
	}
	if !removed {
		return nil
	}
	return m.sessions.ReplaceTasks(ctx, model.CloneTasks(updated))
}

// AddSubtask appends a new uncompleted subtask to the matching task.
func (m *Mutator) AddSubtask(ctx context.Context, taskID, title string) (model.Subtask, error) {
	if strings.TrimSpace(title) == "" {
		return model.Subtask{}, ErrEmptyTitle
	}
	sub := model.Subtask{
		ID:        m.ids.Next(),
		Title:     title,
		Completed: false,
	}
	err := m.updateTask(ctx, taskID, func(t *model.Task) {
		t.Subtasks = append(t.Subtasks, sub)
	})
	if err != nil {
		return model.Subtask{}, err
	}
	return sub, nil
}

// ToggleSubtask flips the completed flag on the matching subtask within the
// matching task.
func (m *Mutator) ToggleSubtask(ctx context.Context, taskID, subtaskID string) error {
	return m.updateTask(ctx, taskID, func(t *model.Task) {
		for i := range t.Subtasks {
			if t.Subtasks[i].ID == subtaskID {
				t.Subtasks[i].Completed = !t.Subtasks[i].Completed
			}
		}
	})
}

// AddComment appends a comment stamped with the mutator's clock. Comments
// cannot be edited or deleted once added.
func (m *Mutator) AddComment(ctx context.Context, taskID, text, author string) (model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return model.Comment{}, errors.New("tasks: comment text is required")
	}
	comment := model.Comment{
		ID:     m.ids.Next(),
		Text:   text,
		Author: author,
		Date:   m.now().UTC().Format(time.RFC3339),
	}
	err := m.updateTask(ctx, taskID, func(t *model.Task) {
		t.Comments = append(t.Comments, comment)
	})
	if err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}

// Reorder moves the task at from to position to within the canonical
// sequence. Indices address the unfiltered, unsorted order only; callers
// rendering a projection must not pass projected positions here. Out-of-range
// indices are a no-op rather than a corruption.
func (m *Mutator) Reorder(ctx context.Context, from, to int) error {
	tasks, err := m.canonical()
	if err != nil {
		return err
	}
	if from < 0 || from >= len(tasks) || to < 0 || to >= len(tasks) || from == to {
		return nil
	}
	updated := model.CloneTasks(tasks)
	moved := updated[from]
	updated = append(updated[:from], updated[from+1:]...)
	rest := append([]model.Task(nil), updated[to:]...)
	updated = append(append(updated[:to], moved), rest...)
	return m.sessions.ReplaceTasks(ctx, updated)
}

// Find returns the task with the given id from the canonical sequence.
func (m *Mutator) Find(taskID string) (model.Task, bool) {
	current := m.sessions.Current()
	if current == nil {
		return model.Task{}, false
	}
	for _, t := range current.Tasks {
		if t.ID == taskID {
			return t, true
		}
	}
	return model.Task{}, false
}

func (m *Mutator) updateTask(ctx context.Context, taskID string, apply func(*model.Task)) error {
	tasks, err := m.canonical()
	if err != nil {
		return err
	}
	updated := model.CloneTasks(tasks)
	found := false
	for i := range updated {
		if updated[i].ID == taskID {
			apply(&updated[i])
			found = true
			break
		}
	}
	if !found {
		// Stale reference, not a user error: ids are internally generated.
		return nil
	}
	return m.sessions.ReplaceTasks(ctx, updated)
}
