package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tasknest/tasknest/internal/session"
	"github.com/tasknest/tasknest/internal/views"
)

func (m Model) handleProfileKey(msg tea.KeyMsg) Model {
	if !m.Profile.Editing {
		switch msg.String() {
		case "e":
			user := m.currentUser()
			if user == nil {
				return m
			}
			m.Profile.Editing = true
			m.Profile.Focus = 0
			m.profileInputs[0].SetValue(user.FullName)
			m.profileInputs[1].SetValue(user.Email)
			m.profileInputs[2].SetValue(user.Phone)
			m.focusProfileField()
		case "esc":
			m.Screen = ScreenTasks
		}
		return m
	}

	switch msg.String() {
	case "esc":
		m.Profile.Editing = false
	case "tab", "down":
		m.Profile.Focus = (m.Profile.Focus + 1) % len(m.profileInputs)
		m.focusProfileField()
	case "shift+tab", "up":
		m.Profile.Focus = (m.Profile.Focus - 1 + len(m.profileInputs)) % len(m.profileInputs)
		m.focusProfileField()
	case "enter":
		return m.saveProfile()
	default:
		typeInto(&m.profileInputs[m.Profile.Focus], msg)
	}
	return m
}

func (m Model) saveProfile() Model {
	fullName := m.profileInputs[0].Value()
	email := m.profileInputs[1].Value()
	phone := m.profileInputs[2].Value()
	_, err := m.deps.Sessions.UpdateProfile(m.ctx, session.ProfileUpdate{
		FullName: &fullName,
		Email:    &email,
		Phone:    &phone,
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Profile.Editing = false
	m.Status = StatusBar{Text: "profile saved"}
	return m
}

func (m *Model) focusProfileField() {
	for i := range m.profileInputs {
		if i == m.Profile.Focus {
			m.profileInputs[i].Focus()
		} else {
			m.profileInputs[i].Blur()
		}
	}
}

func (m Model) renderProfileView() string {
	user := m.currentUser()
	if user == nil {
		return "(signed out)"
	}
	fields := []views.ProfileFieldData{
		{Label: "full name", Value: user.FullName, View: m.profileInputs[0].View()},
		{Label: "email", Value: user.Email, View: m.profileInputs[1].View()},
		{Label: "phone", Value: user.Phone, View: m.profileInputs[2].View()},
	}
	return views.RenderProfilePanel(views.ProfilePanelData{
		Username: user.Username,
		Fields:   fields,
		FocusIdx: m.Profile.Focus,
		Editing:  m.Profile.Editing,
	})
}
