package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/views"
)

func (m Model) refreshCollaborators() Model {
	emails, err := m.deps.Store.Collaborators(m.ctx)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Collaboration.Emails = emails
	return m
}

func (m Model) handleCollaborationKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Screen = ScreenTasks
		m.shareInput.SetValue("")
		m.Collaboration.Err = ""
	case "enter":
		return m.shareWith(m.shareInput.Value())
	default:
		typeInto(&m.shareInput, msg)
	}
	return m
}

// shareWith validates and records a collaborator email. Duplicates are
// reported rather than silently kept.
func (m Model) shareWith(email string) Model {
	if !model.ValidEmail(email) {
		m.Collaboration.Err = fmt.Sprintf("malformed email %q", email)
		return m
	}
	emails, added, err := m.deps.Store.AddCollaborator(m.ctx, email)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Collaboration.Emails = emails
	m.Collaboration.Err = ""
	m.shareInput.SetValue("")
	if added {
		m.Status = StatusBar{Text: "shared with " + email}
	} else {
		m.Status = StatusBar{Text: email + " already has access"}
	}
	return m
}

func (m Model) renderCollaborationView() string {
	var titles []string
	if user := m.currentUser(); user != nil {
		for _, task := range user.Tasks {
			titles = append(titles, task.Title)
		}
	}
	return views.RenderCollaborationPanel(views.CollaborationPanelData{
		Emails:     m.Collaboration.Emails,
		TaskTitles: titles,
		InputView:  m.shareInput.View(),
		ErrorText:  m.Collaboration.Err,
	})
}
