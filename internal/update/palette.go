package update

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tasknest/tasknest/internal/commands"
	"github.com/tasknest/tasknest/internal/export"
	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/projection"
	"github.com/tasknest/tasknest/internal/tasks"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		typeInto(&m.commandInput, msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	cmd, err := commands.Parse(m.Palette.Input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if _, err := m.deps.Tasks.Add(m.ctx, tasks.TaskInput{Title: a.Title}); err != nil {
				return commands.Result{}, err
			}
			m.Screen = ScreenTasks
			return commands.Result{Message: "task added: " + a.Title}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			m.Tasks.Filter = projection.FilterMode(f.Mode)
			m.Tasks.Cursor = 0
			return commands.Result{Message: "filter: " + f.Mode}, nil
		},
		Sort: func(s commands.SortArgs) (commands.Result, error) {
			// Repeating the active key switches back to manual order, the
			// same toggle the list screen exposes.
			key := projection.SortKey(s.Key)
			if m.Tasks.Sort == key {
				key = projection.SortNone
			}
			m.Tasks.Sort = key
			m.Tasks.Cursor = 0
			return commands.Result{Message: "sort: " + sortName(key)}, nil
		},
		Share: func(s commands.ShareArgs) (commands.Result, error) {
			if !model.ValidEmail(s.Email) {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: fmt.Sprintf("malformed email %q", s.Email),
				}
			}
			emails, added, err := m.deps.Store.AddCollaborator(m.ctx, s.Email)
			if err != nil {
				return commands.Result{}, err
			}
			m.Collaboration.Emails = emails
			if !added {
				return commands.Result{Message: s.Email + " already has access"}, nil
			}
			return commands.Result{Message: "shared with " + s.Email}, nil
		},
		Theme: func(t commands.ThemeArgs) (commands.Result, error) {
			theme := model.Theme(t.Name)
			if !theme.IsValid() {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: "unknown theme: " + t.Name,
				}
			}
			m = m.applyTheme(theme)
			if m.Status.IsError {
				return commands.Result{}, fmt.Errorf("%s", m.Status.Text)
			}
			return commands.Result{Message: "theme: " + t.Name}, nil
		},
		Export: func(f commands.FileArgs) (commands.Result, error) {
			return m.exportSnapshot(f.Path)
		},
		Import: func(f commands.FileArgs) (commands.Result, error) {
			res, next, err := m.importSnapshot(f.Path)
			m = next
			return res, err
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.deps.Logger.Warn("command failed", "input", m.Palette.Input, "err", err)
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	m.closePalette()
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) exportSnapshot(path string) (commands.Result, error) {
	user := m.currentUser()
	if user == nil {
		return commands.Result{}, tasks.ErrNoSession
	}
	collaborators, err := m.deps.Store.Collaborators(m.ctx)
	if err != nil {
		return commands.Result{}, err
	}
	f, err := os.Create(path)
	if err != nil {
		return commands.Result{}, fmt.Errorf("export: %w", err)
	}
	defer f.Close()
	snap := export.Snapshot{
		Theme:         m.Theme,
		Collaborators: collaborators,
		Tasks:         user.Tasks,
	}
	if err := export.Write(f, snap, time.Now()); err != nil {
		return commands.Result{}, err
	}
	return commands.Result{Message: fmt.Sprintf("exported %d task(s) to %s", len(user.Tasks), path)}, nil
}

// importSnapshot replaces the active user's tasks with the validated payload
// and applies any theme and collaborators it carries.
func (m Model) importSnapshot(path string) (commands.Result, Model, error) {
	if !m.signedIn() {
		return commands.Result{}, m, tasks.ErrNoSession
	}
	f, err := os.Open(path)
	if err != nil {
		return commands.Result{}, m, fmt.Errorf("import: %w", err)
	}
	defer f.Close()
	snap, err := export.Read(f)
	if err != nil {
		return commands.Result{}, m, err
	}
	if err := m.deps.Sessions.ReplaceTasks(m.ctx, snap.Tasks); err != nil {
		return commands.Result{}, m, err
	}
	if snap.Theme != "" {
		m = m.applyTheme(snap.Theme)
	}
	for _, email := range snap.Collaborators {
		if _, _, err := m.deps.Store.AddCollaborator(m.ctx, email); err != nil {
			return commands.Result{}, m, err
		}
	}
	m.Tasks.Cursor = 0
	return commands.Result{Message: fmt.Sprintf("imported %d task(s) from %s", len(snap.Tasks), path)}, m, nil
}
