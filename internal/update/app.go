// Package update holds the bubbletea program state. Each screen keeps its
// own sub-state and key handler; screens render through the views package and
// every mutation goes through the session manager or the task mutator so the
// store is never written from here directly.
package update

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/projection"
	"github.com/tasknest/tasknest/internal/session"
	"github.com/tasknest/tasknest/internal/store"
	"github.com/tasknest/tasknest/internal/tasks"
	"github.com/tasknest/tasknest/internal/views"
)

type Screen string

const (
	ScreenAuth          Screen = "Auth"
	ScreenTasks         Screen = "Tasks"
	ScreenDetail        Screen = "Detail"
	ScreenCollaboration Screen = "Collaboration"
	ScreenProfile       Screen = "Profile"
	ScreenTheme         Screen = "Theme"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks         string
	Collaboration string
	Profile       string
	Theme         string
	Help          string
	Logout        string
	Quit          string
}

type Deps struct {
	Sessions *session.Manager
	Tasks    *tasks.Mutator
	Store    *store.Store
	Logger   *log.Logger
}

type AuthMode string

const (
	AuthModeLogin    AuthMode = "login"
	AuthModeRegister AuthMode = "register"
)

type AuthState struct {
	Mode  AuthMode
	Focus int
	Err   string
}

type TasksState struct {
	Cursor int
	Filter projection.FilterMode
	Sort   projection.SortKey
	Adding bool
}

type DetailInput string

const (
	DetailInputNone    DetailInput = ""
	DetailInputSubtask DetailInput = "subtask"
	DetailInputComment DetailInput = "comment"
)

type DetailState struct {
	TaskID    string
	SubCursor int
	Input     DetailInput
}

type CollaborationState struct {
	Emails []string
	Err    string
}

type ProfileState struct {
	Editing bool
	Focus   int
}

type ThemeState struct {
	Cursor     int
	CustomOpen bool
	CustomIdx  int
}

type PaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	deps Deps
	ctx  context.Context

	Screen      Screen
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error
	HelpVisible bool

	Auth          AuthState
	Tasks         TasksState
	Detail        DetailState
	Collaboration CollaborationState
	Profile       ProfileState
	ThemePicker   ThemeState
	Palette       PaletteState

	Theme  model.Theme
	Custom model.CustomTheme
	styles views.Styles

	authInputs    []textinput.Model
	taskInput     textinput.Model
	detailInput   textinput.Model
	shareInput    textinput.Model
	profileInputs []textinput.Model
	customInput   textinput.Model
	commandInput  textinput.Model
}

type SwitchScreenMsg struct {
	Screen Screen
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(deps Deps) Model {
	m := Model{
		deps:   deps,
		ctx:    context.Background(),
		Screen: ScreenAuth,
		Auth:   AuthState{Mode: AuthModeLogin},
		Tasks:  TasksState{Filter: projection.FilterAll, Sort: projection.SortNone},
		Theme:  model.ThemeLight,
		Custom: model.DefaultCustomTheme(),
		Keys: GlobalKeyMap{
			Tasks:         "1",
			Collaboration: "2",
			Profile:       "3",
			Theme:         "4",
			Help:          "?",
			Logout:        "ctrl+l",
			Quit:          "ctrl+c",
		},
	}
	if deps.Logger == nil {
		m.deps.Logger = log.New(io.Discard)
	}
	m.initInputs()
	m.restyle()

	if deps.Sessions != nil && deps.Sessions.Active() {
		m.Screen = ScreenTasks
	}
	if deps.Store != nil {
		if theme, err := deps.Store.Theme(m.ctx); err == nil {
			m.Theme = theme
		}
		if custom, err := deps.Store.CustomTheme(m.ctx); err == nil {
			m.Custom = custom
		}
		m.restyle()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case SwitchScreenMsg:
		if m.signedIn() && isKnownScreen(typed.Screen) {
			m.Screen = typed.Screen
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.deps.Logger.Error("app error", "err", typed.Err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == m.Keys.Quit {
		m.Quitting = true
		return m, tea.Quit
	}

	if m.Palette.Active {
		return m.handlePaletteKey(msg), nil
	}

	if m.Screen == ScreenAuth {
		return m.handleAuthKey(msg), nil
	}

	// Global keys apply only while no text input is capturing keystrokes.
	if !m.inputActive() {
		switch msg.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Tasks:
			m.Screen = ScreenTasks
			return m, nil
		case m.Keys.Collaboration:
			m.Screen = ScreenCollaboration
			return m.refreshCollaborators(), nil
		case m.Keys.Profile:
			m.Screen = ScreenProfile
			m.Profile = ProfileState{}
			return m, nil
		case m.Keys.Theme:
			m.Screen = ScreenTheme
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case m.Keys.Logout:
			return m.logout(), nil
		case "q":
			m.Quitting = true
			return m, tea.Quit
		}
	}

	switch m.Screen {
	case ScreenTasks:
		return m.handleTasksKey(msg), nil
	case ScreenDetail:
		return m.handleDetailKey(msg), nil
	case ScreenCollaboration:
		return m.handleCollaborationKey(msg), nil
	case ScreenProfile:
		return m.handleProfileKey(msg), nil
	case ScreenTheme:
		return m.handleThemeKey(msg), nil
	}
	return m, nil
}

func (m Model) View() string {
	header := "tasknest"
	if user := m.currentUser(); user != nil {
		header = fmt.Sprintf("tasknest | %s", user.Username)
	}

	body := ""
	side := ""
	switch m.Screen {
	case ScreenAuth:
		body = m.renderAuthView()
	case ScreenTasks:
		body = m.renderTaskListView()
	case ScreenDetail:
		body = m.renderTaskListView()
		side = m.renderDetailView()
	case ScreenCollaboration:
		body = m.renderCollaborationView()
	case ScreenProfile:
		body = m.renderProfileView()
	case ScreenTheme:
		body = m.renderThemeView()
	}
	if m.Palette.Active {
		side = joinPanes(side, views.RenderCommandPalette(true, m.Palette.Input))
	}
	if m.HelpVisible {
		side = joinPanes(side, m.renderHelpView())
	}

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	data := views.AppData{
		Header:     header,
		Body:       body,
		SidePane:   side,
		StatusLine: status,
		IsError:    m.Status.IsError,
		Footer: fmt.Sprintf("keys: %s tasks | %s collaboration | %s profile | %s theme | %s help | %s logout | %s quit",
			m.Keys.Tasks, m.Keys.Collaboration, m.Keys.Profile, m.Keys.Theme, m.Keys.Help, m.Keys.Logout, m.Keys.Quit),
	}
	if m.signedIn() {
		data.Tabs = []string{"Tasks", "Collaboration", "Profile", "Theme"}
		data.ActiveTab = m.activeTab()
	}
	return views.RenderApp(data, m.styles)
}

func (m Model) activeTab() int {
	switch m.Screen {
	case ScreenCollaboration:
		return 1
	case ScreenProfile:
		return 2
	case ScreenTheme:
		return 3
	default:
		return 0
	}
}

func (m Model) signedIn() bool {
	return m.deps.Sessions != nil && m.deps.Sessions.Active()
}

func (m Model) currentUser() *model.User {
	if m.deps.Sessions == nil {
		return nil
	}
	return m.deps.Sessions.Current()
}

// inputActive reports whether a screen-level text input currently owns the
// keyboard, so rune keys must not trigger navigation.
func (m Model) inputActive() bool {
	switch m.Screen {
	case ScreenTasks:
		return m.Tasks.Adding
	case ScreenDetail:
		return m.Detail.Input != DetailInputNone
	case ScreenCollaboration:
		return true
	case ScreenProfile:
		return m.Profile.Editing
	case ScreenTheme:
		return m.ThemePicker.CustomOpen
	default:
		return false
	}
}

func (m Model) logout() Model {
	if !m.signedIn() {
		return m
	}
	if err := m.deps.Sessions.Logout(m.ctx); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Screen = ScreenAuth
	m.Auth = AuthState{Mode: AuthModeLogin}
	m.Tasks = TasksState{Filter: projection.FilterAll, Sort: projection.SortNone}
	m.Detail = DetailState{}
	m.resetAuthInputs()
	m.Status = StatusBar{Text: "logged out"}
	return m
}

func (m *Model) restyle() {
	m.styles = views.NewStyles(views.PaletteFor(m.Theme, m.Custom))
}

// visibleTasks applies the active filter and sort on top of the canonical
// sequence. The result is a projection: positions here never feed reorder.
func (m Model) visibleTasks() []model.Task {
	user := m.currentUser()
	if user == nil {
		return nil
	}
	return projection.Sort(projection.Filter(user.Tasks, m.Tasks.Filter), m.Tasks.Sort)
}

func (m Model) projectionActive() bool {
	return m.Tasks.Filter != projection.FilterAll || m.Tasks.Sort != projection.SortNone
}

func (m *Model) initInputs() {
	labels := []struct {
		placeholder string
		secure      bool
	}{
		{"username", false},
		{"password", true},
		{"full name", false},
		{"email", false},
		{"phone", false},
	}
	m.authInputs = make([]textinput.Model, len(labels))
	for i, l := range labels {
		in := textinput.New()
		in.Placeholder = l.placeholder
		in.CharLimit = 128
		in.Width = 32
		if l.secure {
			in.EchoMode = textinput.EchoPassword
		}
		m.authInputs[i] = in
	}
	m.authInputs[0].Focus()

	m.taskInput = textinput.New()
	m.taskInput.Placeholder = "task title"
	m.taskInput.CharLimit = 256
	m.taskInput.Width = 40

	m.detailInput = textinput.New()
	m.detailInput.CharLimit = 256
	m.detailInput.Width = 40

	m.shareInput = textinput.New()
	m.shareInput.Placeholder = "collaborator email"
	m.shareInput.CharLimit = 128
	m.shareInput.Width = 32
	m.shareInput.Focus()

	m.profileInputs = make([]textinput.Model, 3)
	for i, placeholder := range []string{"full name", "email", "phone"} {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 128
		in.Width = 32
		m.profileInputs[i] = in
	}

	m.customInput = textinput.New()
	m.customInput.Placeholder = "#rrggbb"
	m.customInput.CharLimit = 7
	m.customInput.Width = 10

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48
}

func isKnownScreen(s Screen) bool {
	switch s {
	case ScreenAuth, ScreenTasks, ScreenDetail, ScreenCollaboration, ScreenProfile, ScreenTheme:
		return true
	default:
		return false
	}
}

func joinPanes(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

// typeInto feeds a key into in, handling rune keys directly so synthetic
// KeyMsg values built in tests behave like real terminal input.
func typeInto(in *textinput.Model, msg tea.KeyMsg) {
	if msg.Type == tea.KeyRunes {
		in.SetValue(in.Value() + string(msg.Runes))
		in.CursorEnd()
		return
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	_ = cmd
}
