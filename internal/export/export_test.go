package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tasknest/tasknest/internal/model"
)

func TestWriteReadRoundTrip(t *testing.T) {
	snap := Snapshot{
		Theme:         model.ThemeDark,
		Collaborators: []string{"bob@example.com"},
		Tasks: []model.Task{{
			ID:         "1756600000000",
			Title:      "Buy milk",
			Priority:   model.PriorityHigh,
			Recurrence: model.RecurrenceWeekly,
			Subtasks:   []model.Subtask{{ID: "1756600000001", Title: "2%", Completed: true}},
			Comments:   []model.Comment{{ID: "1756600000002", Text: "whole?", Author: "alice", Date: "2026-08-31T09:00:00Z"}},
		}},
	}

	var buf bytes.Buffer
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	if err := Write(&buf, snap, now); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Version != 1 || got.ExportedAt != "2026-08-31T09:00:00Z" {
		t.Fatalf("unexpected envelope: %#v", got)
	}
	if got.Theme != model.ThemeDark || len(got.Collaborators) != 1 {
		t.Fatalf("theme/collaborators lost: %#v", got)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].Title != "Buy milk" {
		t.Fatalf("tasks lost: %#v", got.Tasks)
	}
	if len(got.Tasks[0].Subtasks) != 1 || !got.Tasks[0].Subtasks[0].Completed {
		t.Fatalf("subtasks lost: %#v", got.Tasks[0].Subtasks)
	}
}

func TestReadRejectsNonJSON(t *testing.T) {
	_, err := Read(strings.NewReader("not json at all"))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestReadRejectsSchemaViolations(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"missing tasks", `{"version": 1}`},
		{"wrong version", `{"version": 2, "tasks": []}`},
		{"bad priority", `{"version": 1, "tasks": [{"id": "1", "title": "x", "priority": "urgent", "recurrence": "none", "completed": false}]}`},
		{"empty title", `{"version": 1, "tasks": [{"id": "1", "title": "", "priority": "low", "recurrence": "none", "completed": false}]}`},
		{"bad recurrence", `{"version": 1, "tasks": [{"id": "1", "title": "x", "priority": "low", "recurrence": "hourly", "completed": false}]}`},
		{"bad theme", `{"version": 1, "theme": "neon", "tasks": []}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tc.payload))
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestReadAcceptsMinimalPayload(t *testing.T) {
	snap, err := Read(strings.NewReader(`{"version": 1, "tasks": []}`))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if snap.Tasks == nil || len(snap.Tasks) != 0 {
		t.Fatalf("unexpected tasks: %#v", snap.Tasks)
	}
}
