package update

import (
	"fmt"

	"github.com/tasknest/tasknest/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Tasks, Action: "tasks screen"},
		{Key: m.Keys.Collaboration, Action: "collaboration screen"},
		{Key: m.Keys.Profile, Action: "profile screen"},
		{Key: m.Keys.Theme, Action: "theme screen"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Logout, Action: "log out"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) screenBindings() []KeyBinding {
	switch m.Screen {
	case ScreenAuth:
		return []KeyBinding{
			{Key: "tab", Action: "next field"},
			{Key: "enter", Action: "submit"},
			{Key: "ctrl+r", Action: "switch login/register"},
		}
	case ScreenTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "a", Action: "add task"},
			{Key: "space", Action: "toggle completed"},
			{Key: "enter", Action: "open detail"},
			{Key: "d", Action: "delete task"},
			{Key: "J/K", Action: "reorder (manual order only)"},
			{Key: "f", Action: "cycle filter"},
			{Key: "s", Action: "cycle sort"},
		}
	case ScreenDetail:
		return []KeyBinding{
			{Key: "j/k", Action: "move subtask cursor"},
			{Key: "space", Action: "toggle subtask"},
			{Key: "s", Action: "add subtask"},
			{Key: "c", Action: "add comment"},
			{Key: "t", Action: "toggle task"},
			{Key: "esc", Action: "back to list"},
		}
	case ScreenCollaboration:
		return []KeyBinding{
			{Key: "enter", Action: "share with email"},
			{Key: "esc", Action: "back to tasks"},
		}
	case ScreenProfile:
		return []KeyBinding{
			{Key: "e", Action: "edit profile"},
			{Key: "enter", Action: "save"},
			{Key: "esc", Action: "cancel"},
		}
	case ScreenTheme:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "enter", Action: "apply theme"},
			{Key: "c", Action: "customize colors"},
		}
	default:
		return nil
	}
}

func (m Model) renderHelpView() string {
	bindings := append(m.globalBindings(), m.screenBindings()...)
	plain := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		plain = append(plain, fmt.Sprintf("[%s] %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Screen:   string(m.Screen),
		Bindings: plain,
	})
}
