package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tasknest/tasknest/internal/session"
	"github.com/tasknest/tasknest/internal/views"
)

// Login uses the first two auth inputs, register all five.
func (m Model) authFieldCount() int {
	if m.Auth.Mode == AuthModeRegister {
		return len(m.authInputs)
	}
	return 2
}

func (m Model) handleAuthKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "ctrl+r":
		if m.Auth.Mode == AuthModeLogin {
			m.Auth.Mode = AuthModeRegister
		} else {
			m.Auth.Mode = AuthModeLogin
		}
		m.Auth.Focus = 0
		m.Auth.Err = ""
		m.focusAuthField()
		return m
	case "tab", "down":
		m.Auth.Focus = (m.Auth.Focus + 1) % m.authFieldCount()
		m.focusAuthField()
		return m
	case "shift+tab", "up":
		m.Auth.Focus = (m.Auth.Focus - 1 + m.authFieldCount()) % m.authFieldCount()
		m.focusAuthField()
		return m
	case "enter":
		return m.submitAuth()
	}
	typeInto(&m.authInputs[m.Auth.Focus], msg)
	return m
}

func (m Model) submitAuth() Model {
	username := m.authInputs[0].Value()
	password := m.authInputs[1].Value()

	var err error
	if m.Auth.Mode == AuthModeLogin {
		_, err = m.deps.Sessions.Login(m.ctx, username, password)
	} else {
		_, err = m.deps.Sessions.Register(m.ctx, session.RegisterInput{
			Username: username,
			Password: password,
			FullName: m.authInputs[2].Value(),
			Email:    m.authInputs[3].Value(),
			Phone:    m.authInputs[4].Value(),
		})
	}
	if err != nil {
		m.Auth.Err = err.Error()
		m.deps.Logger.Warn("auth failed", "mode", m.Auth.Mode, "err", err)
		return m
	}

	m.Auth.Err = ""
	m.Screen = ScreenTasks
	m.Tasks.Cursor = 0
	m.resetAuthInputs()
	m.Status = StatusBar{Text: "welcome, " + m.currentUser().Username}
	return m
}

func (m *Model) focusAuthField() {
	for i := range m.authInputs {
		if i == m.Auth.Focus {
			m.authInputs[i].Focus()
		} else {
			m.authInputs[i].Blur()
		}
	}
}

func (m *Model) resetAuthInputs() {
	for i := range m.authInputs {
		m.authInputs[i].SetValue("")
	}
	m.Auth.Focus = 0
	m.focusAuthField()
}

func (m Model) renderAuthView() string {
	labels := []string{"username", "password", "full name", "email", "phone"}
	fields := make([]views.AuthFieldData, 0, m.authFieldCount())
	for i := 0; i < m.authFieldCount(); i++ {
		fields = append(fields, views.AuthFieldData{
			Label: labels[i],
			View:  m.authInputs[i].View(),
		})
	}
	return views.RenderAuthPanel(views.AuthPanelData{
		Mode:      string(m.Auth.Mode),
		Fields:    fields,
		FocusIdx:  m.Auth.Focus,
		ErrorText: m.Auth.Err,
	})
}
