package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tasknest/tasknest/internal/model"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tasknest-test.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestRawGetSetDelete(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	if _, err := st.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}

	if err := st.Set(ctx, "theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := st.Get(ctx, "theme")
	if err != nil || got != "dark" {
		t.Fatalf("get = %q, %v", got, err)
	}

	if err := st.Set(ctx, "theme", "blue"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = st.Get(ctx, "theme")
	if got != "blue" {
		t.Fatalf("overwrite not applied, got %q", got)
	}

	if err := st.Delete(ctx, "theme"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.Get(ctx, "theme"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got: %v", err)
	}
	if err := st.Delete(ctx, "theme"); err != nil {
		t.Fatalf("deleting absent key must not error: %v", err)
	}
}

func TestAbsentKeysYieldDefaults(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	theme, err := st.Theme(ctx)
	if err != nil || theme != model.ThemeLight {
		t.Fatalf("Theme = %q, %v; want light", theme, err)
	}
	collabs, err := st.Collaborators(ctx)
	if err != nil || len(collabs) != 0 {
		t.Fatalf("Collaborators = %#v, %v; want empty", collabs, err)
	}
	users, err := st.Users(ctx)
	if err != nil || len(users) != 0 {
		t.Fatalf("Users = %#v, %v; want empty", users, err)
	}
	current, err := st.CurrentUser(ctx)
	if err != nil || current != nil {
		t.Fatalf("CurrentUser = %#v, %v; want nil", current, err)
	}
	tasks, err := st.Tasks(ctx, "u1")
	if err != nil || len(tasks) != 0 {
		t.Fatalf("Tasks = %#v, %v; want empty", tasks, err)
	}
	custom, err := st.CustomTheme(ctx)
	if err != nil || custom != model.DefaultCustomTheme() {
		t.Fatalf("CustomTheme = %#v, %v; want defaults", custom, err)
	}
}

func TestUserDirectoryOmitsTaskPayload(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	users := []model.User{{
		ID:       "u1",
		Username: "alice",
		Password: "secret1",
		Tasks:    []model.Task{{ID: "t1", Title: "should not persist here"}},
	}}
	if err := st.SetUsers(ctx, users); err != nil {
		t.Fatalf("set users: %v", err)
	}

	got, err := st.Users(ctx)
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	if len(got) != 1 || got[0].Username != "alice" {
		t.Fatalf("unexpected directory: %#v", got)
	}
	if len(got[0].Tasks) != 0 {
		t.Fatalf("directory entry must not carry tasks: %#v", got[0].Tasks)
	}
}

func TestTasksRoundTripPerUser(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	tasks := []model.Task{{
		ID:         "1756600000000",
		Title:      "Buy milk",
		Priority:   model.PriorityHigh,
		Recurrence: model.RecurrenceNone,
		Subtasks:   []model.Subtask{{ID: "1756600000001", Title: "2%"}},
		Comments:   []model.Comment{{ID: "1756600000002", Text: "whole?", Author: "alice", Date: "2026-08-31T09:00:00Z"}},
	}}
	if err := st.SetTasks(ctx, "u1", tasks); err != nil {
		t.Fatalf("set tasks: %v", err)
	}

	got, err := st.Tasks(ctx, "u1")
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Buy milk" {
		t.Fatalf("unexpected tasks: %#v", got)
	}
	if len(got[0].Subtasks) != 1 || got[0].Subtasks[0].Title != "2%" {
		t.Fatalf("subtasks lost in round trip: %#v", got[0].Subtasks)
	}
	if len(got[0].Comments) != 1 || got[0].Comments[0].Author != "alice" {
		t.Fatalf("comments lost in round trip: %#v", got[0].Comments)
	}

	other, err := st.Tasks(ctx, "u2")
	if err != nil || len(other) != 0 {
		t.Fatalf("tasks must be keyed per user, got %#v, %v", other, err)
	}
}

func TestCurrentUserSnapshotIncludesTasks(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	user := &model.User{
		ID:       "u1",
		Username: "alice",
		Password: "secret1",
		Tasks:    []model.Task{{ID: "t1", Title: "A", Priority: model.PriorityLow, Recurrence: model.RecurrenceNone}},
	}
	if err := st.SetCurrentUser(ctx, user); err != nil {
		t.Fatalf("set current user: %v", err)
	}
	got, err := st.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if got == nil || got.Username != "alice" || len(got.Tasks) != 1 {
		t.Fatalf("unexpected session snapshot: %#v", got)
	}

	if err := st.ClearCurrentUser(ctx); err != nil {
		t.Fatalf("clear current user: %v", err)
	}
	got, err = st.CurrentUser(ctx)
	if err != nil || got != nil {
		t.Fatalf("expected no session after clear, got %#v, %v", got, err)
	}
}

func TestSetThemeRejectsUnknownValue(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	if err := st.SetTheme(ctx, model.Theme("neon")); !errors.Is(err, model.ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got: %v", err)
	}
	if err := st.SetTheme(ctx, model.ThemeMidnight); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	theme, err := st.Theme(ctx)
	if err != nil || theme != model.ThemeMidnight {
		t.Fatalf("Theme = %q, %v", theme, err)
	}
}

func TestMigrateRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	st, err := New(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := st.Set(context.Background(), "theme", "dark"); err != nil {
		t.Fatalf("set after remigrate: %v", err)
	}
}
