package update

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/projection"
)

func runCommand(t *testing.T, m Model, input string) Model {
	t.Helper()
	m = press(t, m, "/")
	if !m.Palette.Active {
		t.Fatal("expected palette active")
	}
	m = typeText(t, m, input)
	m = press(t, m, "enter")
	if m.Palette.Active {
		t.Fatal("expected palette closed after execute")
	}
	return m
}

func TestCommandAdd(t *testing.T) {
	m, deps := setupSignedIn(t)
	m = runCommand(t, m, "add write the report")
	if m.Status.IsError {
		t.Fatalf("unexpected error status: %s", m.Status.Text)
	}
	tasks := deps.Sessions.Current().Tasks
	if len(tasks) != 1 || tasks[0].Title != "write the report" {
		t.Fatalf("expected added task, got %+v", tasks)
	}
}

func TestCommandFilterAndSort(t *testing.T) {
	m, _ := setupSignedIn(t)
	m = runCommand(t, m, "filter completed")
	if m.Tasks.Filter != projection.FilterCompleted {
		t.Fatalf("expected completed filter, got %q", m.Tasks.Filter)
	}

	m = runCommand(t, m, "sort priority")
	if m.Tasks.Sort != projection.SortPriority {
		t.Fatalf("expected priority sort, got %q", m.Tasks.Sort)
	}

	// Same key again toggles back to manual order.
	m = runCommand(t, m, "sort priority")
	if m.Tasks.Sort != projection.SortNone {
		t.Fatalf("expected manual sort after toggle, got %q", m.Tasks.Sort)
	}
}

func TestCommandShare(t *testing.T) {
	m, deps := setupSignedIn(t)
	m = runCommand(t, m, "share carol@example.com")
	if m.Status.IsError {
		t.Fatalf("unexpected error: %s", m.Status.Text)
	}

	m = runCommand(t, m, "share carol@example.com")
	if !strings.Contains(m.Status.Text, "already") {
		t.Fatalf("expected duplicate notice, got %q", m.Status.Text)
	}

	emails, err := deps.Store.Collaborators(context.Background())
	if err != nil {
		t.Fatalf("collaborators: %v", err)
	}
	if len(emails) != 1 {
		t.Fatalf("expected single collaborator, got %v", emails)
	}
}

func TestCommandTheme(t *testing.T) {
	m, _ := setupSignedIn(t)
	m = runCommand(t, m, "theme midnight")
	if m.Theme != model.ThemeMidnight {
		t.Fatalf("expected midnight theme, got %q", m.Theme)
	}

	m = runCommand(t, m, "theme neon")
	if !m.Status.IsError {
		t.Fatal("expected error for unknown theme")
	}
}

func TestCommandUnknownReportsError(t *testing.T) {
	m, _ := setupSignedIn(t)
	m = runCommand(t, m, "frobnicate now")
	if !m.Status.IsError {
		t.Fatal("expected error status for unknown command")
	}
}

func TestCommandExportImportRoundTrip(t *testing.T) {
	m, deps := setupSignedIn(t)
	m = runCommand(t, m, "add pack bags")
	m = runCommand(t, m, "share dan@example.com")
	path := filepath.Join(t.TempDir(), "snapshot.json")

	m = runCommand(t, m, "export "+path)
	if m.Status.IsError {
		t.Fatalf("export failed: %s", m.Status.Text)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected snapshot file: %v", err)
	}

	// Wipe the collection, then restore it from the snapshot.
	if err := deps.Sessions.ReplaceTasks(context.Background(), nil); err != nil {
		t.Fatalf("replace: %v", err)
	}
	m = runCommand(t, m, "import "+path)
	if m.Status.IsError {
		t.Fatalf("import failed: %s", m.Status.Text)
	}
	tasks := deps.Sessions.Current().Tasks
	if len(tasks) != 1 || tasks[0].Title != "pack bags" {
		t.Fatalf("expected restored task, got %+v", tasks)
	}
}

func TestCommandImportRejectsInvalidPayload(t *testing.T) {
	m, deps := setupSignedIn(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"version": 1, "tasks": [{"id": "1"}]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m = runCommand(t, m, "import "+path)
	if !m.Status.IsError {
		t.Fatal("expected schema rejection")
	}
	if len(deps.Sessions.Current().Tasks) != 0 {
		t.Fatal("expected tasks untouched after failed import")
	}
}
