package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/projection"
	"github.com/tasknest/tasknest/internal/tasks"
	"github.com/tasknest/tasknest/internal/views"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	if m.Tasks.Adding {
		switch msg.String() {
		case "esc":
			m.Tasks.Adding = false
			m.taskInput.SetValue("")
			m.taskInput.Blur()
		case "enter":
			return m.submitNewTask()
		default:
			typeInto(&m.taskInput, msg)
		}
		return m
	}

	visible := m.visibleTasks()
	switch msg.String() {
	case "up", "k":
		if m.Tasks.Cursor > 0 {
			m.Tasks.Cursor--
		}
	case "down", "j":
		if m.Tasks.Cursor < len(visible)-1 {
			m.Tasks.Cursor++
		}
	case "a":
		m.Tasks.Adding = true
		m.taskInput.SetValue("")
		m.taskInput.Focus()
	case " ", "space":
		if task, ok := m.selectedTask(); ok {
			if err := m.deps.Tasks.Toggle(m.ctx, task.ID); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			}
		}
	case "enter":
		if task, ok := m.selectedTask(); ok {
			m.Screen = ScreenDetail
			m.Detail = DetailState{TaskID: task.ID}
		}
	case "d":
		if task, ok := m.selectedTask(); ok {
			if err := m.deps.Tasks.Delete(m.ctx, task.ID); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			} else {
				m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", task.Title)}
				m.clampTaskCursor()
			}
		}
	case "K":
		return m.reorderSelected(-1)
	case "J":
		return m.reorderSelected(1)
	case "f":
		m.Tasks.Filter = nextFilter(m.Tasks.Filter)
		m.Tasks.Cursor = 0
		m.Status = StatusBar{Text: fmt.Sprintf("filter: %s", m.Tasks.Filter)}
	case "s":
		m.Tasks.Sort = nextSort(m.Tasks.Sort)
		m.Tasks.Cursor = 0
		m.Status = StatusBar{Text: fmt.Sprintf("sort: %s", sortName(m.Tasks.Sort))}
	}
	return m
}

func (m Model) submitNewTask() Model {
	title := m.taskInput.Value()
	_, err := m.deps.Tasks.Add(m.ctx, tasks.TaskInput{Title: title})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Tasks.Adding = false
	m.taskInput.SetValue("")
	m.taskInput.Blur()
	m.Status = StatusBar{Text: "task added: " + title}
	return m
}

// reorderSelected moves the selected task up or down in the canonical
// sequence. Projected positions never map cleanly onto canonical ones, so the
// move is refused while a filter or sort is active.
func (m Model) reorderSelected(delta int) Model {
	if m.projectionActive() {
		m.Status = StatusBar{Text: "reorder needs filter all and manual sort", IsError: true}
		return m
	}
	task, ok := m.selectedTask()
	if !ok {
		return m
	}
	from := m.canonicalIndex(task.ID)
	to := from + delta
	user := m.currentUser()
	if from < 0 || to < 0 || to >= len(user.Tasks) {
		return m
	}
	if err := m.deps.Tasks.Reorder(m.ctx, from, to); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Tasks.Cursor = to
	return m
}

func (m Model) canonicalIndex(taskID string) int {
	user := m.currentUser()
	if user == nil {
		return -1
	}
	for i, t := range user.Tasks {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

func (m Model) selectedTask() (model.Task, bool) {
	visible := m.visibleTasks()
	if len(visible) == 0 || m.Tasks.Cursor < 0 || m.Tasks.Cursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[m.Tasks.Cursor], true
}

func (m *Model) clampTaskCursor() {
	visible := m.visibleTasks()
	if m.Tasks.Cursor >= len(visible) {
		m.Tasks.Cursor = len(visible) - 1
	}
	if m.Tasks.Cursor < 0 {
		m.Tasks.Cursor = 0
	}
}

func nextFilter(f projection.FilterMode) projection.FilterMode {
	switch f {
	case projection.FilterAll:
		return projection.FilterActive
	case projection.FilterActive:
		return projection.FilterCompleted
	default:
		return projection.FilterAll
	}
}

func nextSort(s projection.SortKey) projection.SortKey {
	switch s {
	case projection.SortNone:
		return projection.SortDueDate
	case projection.SortDueDate:
		return projection.SortPriority
	default:
		return projection.SortNone
	}
}

func sortName(s projection.SortKey) string {
	if s == projection.SortNone {
		return "manual"
	}
	return string(s)
}

func (m Model) renderTaskListView() string {
	user := m.currentUser()
	if user == nil {
		return "(signed out)"
	}
	visible := m.visibleTasks()
	items := make([]views.TaskItemData, 0, len(visible))
	selectedID := ""
	if task, ok := m.selectedTask(); ok {
		selectedID = task.ID
	}
	for _, t := range visible {
		done, total := projection.Progress(t)
		items = append(items, views.TaskItemData{
			ID:           t.ID,
			Title:        t.Title,
			Completed:    t.Completed,
			Priority:     string(t.Priority),
			DueDate:      t.DueDate,
			SubtasksDone: done,
			SubtasksAll:  total,
			Comments:     len(t.Comments),
			Recurrence:   string(t.Recurrence),
			Reminder:     t.Reminder != "",
		})
	}
	return views.RenderTaskListPanel(views.TaskListPanelData{
		Username:   user.Username,
		Filter:     string(m.Tasks.Filter),
		Sort:       string(m.Tasks.Sort),
		Items:      items,
		SelectedID: selectedID,
		InputView:  m.taskInput.View(),
		InputOpen:  m.Tasks.Adding,
	})
}
