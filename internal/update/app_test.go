package update

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/projection"
	"github.com/tasknest/tasknest/internal/session"
	"github.com/tasknest/tasknest/internal/store"
	"github.com/tasknest/tasknest/internal/tasks"
)

func setupDeps(t *testing.T) Deps {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "update-test.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	mgr := session.NewManager(st, nil)
	return Deps{
		Sessions: mgr,
		Tasks:    tasks.NewMutator(mgr, nil),
		Store:    st,
	}
}

func setupSignedIn(t *testing.T) (Model, Deps) {
	t.Helper()
	deps := setupDeps(t)
	if _, err := deps.Sessions.Register(context.Background(), session.RegisterInput{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	return NewModel(deps), deps
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(Model)
}

func TestNewModelStartsOnAuth(t *testing.T) {
	m := NewModel(setupDeps(t))
	if m.Screen != ScreenAuth {
		t.Fatalf("expected auth screen, got %q", m.Screen)
	}
	if m.Auth.Mode != AuthModeLogin {
		t.Fatalf("expected login mode, got %q", m.Auth.Mode)
	}
}

func TestNewModelResumesSession(t *testing.T) {
	m, _ := setupSignedIn(t)
	if m.Screen != ScreenTasks {
		t.Fatalf("expected tasks screen for active session, got %q", m.Screen)
	}
}

func TestRegisterThroughAuthScreen(t *testing.T) {
	m := NewModel(setupDeps(t))
	m = press(t, m, "ctrl+r")
	if m.Auth.Mode != AuthModeRegister {
		t.Fatalf("expected register mode, got %q", m.Auth.Mode)
	}

	m = typeText(t, m, "bob")
	m = press(t, m, "tab")
	m = typeText(t, m, "hunter2")
	m = press(t, m, "enter")

	if m.Auth.Err != "" {
		t.Fatalf("unexpected auth error: %s", m.Auth.Err)
	}
	if m.Screen != ScreenTasks {
		t.Fatalf("expected tasks screen after register, got %q", m.Screen)
	}
	if user := m.currentUser(); user == nil || user.Username != "bob" {
		t.Fatalf("expected bob signed in, got %+v", user)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	deps := setupDeps(t)
	if _, err := deps.Sessions.Register(context.Background(), session.RegisterInput{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := deps.Sessions.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}

	m := NewModel(deps)
	m = typeText(t, m, "alice")
	m = press(t, m, "tab")
	m = typeText(t, m, "wrong")
	m = press(t, m, "enter")

	if m.Screen != ScreenAuth {
		t.Fatalf("expected to stay on auth, got %q", m.Screen)
	}
	if m.Auth.Err == "" {
		t.Fatal("expected auth error for bad password")
	}
}

func TestAddTaskFromListScreen(t *testing.T) {
	m, deps := setupSignedIn(t)
	m = press(t, m, "a")
	if !m.Tasks.Adding {
		t.Fatal("expected add input open")
	}
	m = typeText(t, m, "buy milk")
	m = press(t, m, "enter")

	user := deps.Sessions.Current()
	if len(user.Tasks) != 1 || user.Tasks[0].Title != "buy milk" {
		t.Fatalf("expected one task 'buy milk', got %+v", user.Tasks)
	}
	if m.Tasks.Adding {
		t.Fatal("expected add input closed after submit")
	}
}

func TestToggleAndDeleteFromListScreen(t *testing.T) {
	m, deps := setupSignedIn(t)
	m = press(t, m, "a")
	m = typeText(t, m, "one")
	m = press(t, m, "enter")

	m = press(t, m, " ")
	if !deps.Sessions.Current().Tasks[0].Completed {
		t.Fatal("expected task toggled completed")
	}

	m = press(t, m, "d")
	if len(deps.Sessions.Current().Tasks) != 0 {
		t.Fatalf("expected empty task list, got %+v", deps.Sessions.Current().Tasks)
	}
	_ = m
}

func TestReorderRefusedWhileProjectionActive(t *testing.T) {
	m, deps := setupSignedIn(t)
	for _, title := range []string{"A", "B"} {
		m = press(t, m, "a")
		m = typeText(t, m, title)
		m = press(t, m, "enter")
	}

	m = press(t, m, "f") // filter: active
	m = press(t, m, "J")
	if !m.Status.IsError {
		t.Fatal("expected reorder refusal while filtered")
	}
	if got := deps.Sessions.Current().Tasks[0].Title; got != "A" {
		t.Fatalf("expected order unchanged, first is %q", got)
	}

	m = press(t, m, "f", "f") // back to all
	m = press(t, m, "J")
	if got := deps.Sessions.Current().Tasks[0].Title; got != "B" {
		t.Fatalf("expected B first after reorder, got %q", got)
	}
}

func TestDetailSubtaskAndComment(t *testing.T) {
	m, deps := setupSignedIn(t)
	m = press(t, m, "a")
	m = typeText(t, m, "parent")
	m = press(t, m, "enter")

	m = press(t, m, "enter") // open detail
	if m.Screen != ScreenDetail {
		t.Fatalf("expected detail screen, got %q", m.Screen)
	}

	m = press(t, m, "s")
	m = typeText(t, m, "child")
	m = press(t, m, "enter")

	m = press(t, m, "c")
	m = typeText(t, m, "looks good")
	m = press(t, m, "enter")

	task := deps.Sessions.Current().Tasks[0]
	if len(task.Subtasks) != 1 || task.Subtasks[0].Title != "child" {
		t.Fatalf("expected one subtask 'child', got %+v", task.Subtasks)
	}
	if len(task.Comments) != 1 || task.Comments[0].Text != "looks good" {
		t.Fatalf("expected one comment, got %+v", task.Comments)
	}
	if task.Comments[0].Author != "alice" {
		t.Fatalf("expected comment author alice, got %q", task.Comments[0].Author)
	}

	m = press(t, m, " ")
	if !deps.Sessions.Current().Tasks[0].Subtasks[0].Completed {
		t.Fatal("expected subtask toggled")
	}
	if deps.Sessions.Current().Tasks[0].Completed {
		t.Fatal("subtask completion must not roll up to the task")
	}
}

func TestShareFromCollaborationScreen(t *testing.T) {
	m, deps := setupSignedIn(t)
	m = press(t, m, "2")
	if m.Screen != ScreenCollaboration {
		t.Fatalf("expected collaboration screen, got %q", m.Screen)
	}

	m = typeText(t, m, "not-an-email")
	m = press(t, m, "enter")
	if m.Collaboration.Err == "" {
		t.Fatal("expected malformed email rejection")
	}

	m = press(t, m, "esc")
	m = press(t, m, "2")
	m = typeText(t, m, "bob@example.com")
	m = press(t, m, "enter")

	emails, err := deps.Store.Collaborators(context.Background())
	if err != nil {
		t.Fatalf("collaborators: %v", err)
	}
	if len(emails) != 1 || emails[0] != "bob@example.com" {
		t.Fatalf("expected [bob@example.com], got %v", emails)
	}
}

func TestProfileEditSaves(t *testing.T) {
	m, deps := setupSignedIn(t)
	m = press(t, m, "3", "e")
	if !m.Profile.Editing {
		t.Fatal("expected profile editing")
	}
	m = typeText(t, m, "Alice Smith")
	m = press(t, m, "tab")
	m = typeText(t, m, "alice@example.com")
	m = press(t, m, "enter")

	user := deps.Sessions.Current()
	if user.FullName != "Alice Smith" || user.Email != "alice@example.com" {
		t.Fatalf("unexpected profile: %+v", user)
	}
}

func TestThemeApplyPersists(t *testing.T) {
	m, deps := setupSignedIn(t)
	m = press(t, m, "4")
	if m.Screen != ScreenTheme {
		t.Fatalf("expected theme screen, got %q", m.Screen)
	}
	m = press(t, m, "j", "enter") // second entry: dark
	if m.Theme != model.ThemeDark {
		t.Fatalf("expected dark theme, got %q", m.Theme)
	}
	stored, err := deps.Store.Theme(context.Background())
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if stored != model.ThemeDark {
		t.Fatalf("expected dark persisted, got %q", stored)
	}
}

func TestLogoutReturnsToAuth(t *testing.T) {
	m, deps := setupSignedIn(t)
	m = press(t, m, "ctrl+l")
	if m.Screen != ScreenAuth {
		t.Fatalf("expected auth screen after logout, got %q", m.Screen)
	}
	if deps.Sessions.Active() {
		t.Fatal("expected session cleared")
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := setupSignedIn(t)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m, _ := setupSignedIn(t)
	m = press(t, m, "a")
	m = typeText(t, m, "write report")
	m = press(t, m, "enter")

	out := m.View()
	if !strings.Contains(out, "alice") {
		t.Fatalf("expected username in view: %q", out)
	}
	if !strings.Contains(out, "write report") {
		t.Fatalf("expected task title in view: %q", out)
	}
	if !strings.Contains(out, "filter: all") {
		t.Fatalf("expected filter line in view: %q", out)
	}
}

func TestFilterAndSortCycling(t *testing.T) {
	m, _ := setupSignedIn(t)
	m = press(t, m, "f")
	if m.Tasks.Filter != projection.FilterActive {
		t.Fatalf("expected active filter, got %q", m.Tasks.Filter)
	}
	m = press(t, m, "f", "f")
	if m.Tasks.Filter != projection.FilterAll {
		t.Fatalf("expected filter cycled back to all, got %q", m.Tasks.Filter)
	}

	m = press(t, m, "s")
	if m.Tasks.Sort != projection.SortDueDate {
		t.Fatalf("expected dueDate sort, got %q", m.Tasks.Sort)
	}
	m = press(t, m, "s", "s")
	if m.Tasks.Sort != projection.SortNone {
		t.Fatalf("expected sort cycled back to manual, got %q", m.Tasks.Sort)
	}
}
