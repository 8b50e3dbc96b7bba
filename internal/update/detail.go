package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/views"
)

func (m Model) handleDetailKey(msg tea.KeyMsg) Model {
	if m.Detail.Input != DetailInputNone {
		switch msg.String() {
		case "esc":
			m.Detail.Input = DetailInputNone
			m.detailInput.SetValue("")
			m.detailInput.Blur()
		case "enter":
			return m.submitDetailInput()
		default:
			typeInto(&m.detailInput, msg)
		}
		return m
	}

	task, ok := m.deps.Tasks.Find(m.Detail.TaskID)
	if !ok {
		m.Screen = ScreenTasks
		return m
	}

	switch msg.String() {
	case "esc":
		m.Screen = ScreenTasks
		m.Detail = DetailState{}
	case "up", "k":
		if m.Detail.SubCursor > 0 {
			m.Detail.SubCursor--
		}
	case "down", "j":
		if m.Detail.SubCursor < len(task.Subtasks)-1 {
			m.Detail.SubCursor++
		}
	case " ", "space":
		if m.Detail.SubCursor < len(task.Subtasks) {
			sub := task.Subtasks[m.Detail.SubCursor]
			if err := m.deps.Tasks.ToggleSubtask(m.ctx, task.ID, sub.ID); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			}
		}
	case "s":
		m.Detail.Input = DetailInputSubtask
		m.detailInput.Placeholder = "subtask title"
		m.detailInput.SetValue("")
		m.detailInput.Focus()
	case "c":
		m.Detail.Input = DetailInputComment
		m.detailInput.Placeholder = "comment"
		m.detailInput.SetValue("")
		m.detailInput.Focus()
	case "t":
		if err := m.deps.Tasks.Toggle(m.ctx, task.ID); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		}
	}
	return m
}

func (m Model) submitDetailInput() Model {
	text := m.detailInput.Value()
	var err error
	switch m.Detail.Input {
	case DetailInputSubtask:
		_, err = m.deps.Tasks.AddSubtask(m.ctx, m.Detail.TaskID, text)
	case DetailInputComment:
		author := ""
		if user := m.currentUser(); user != nil {
			author = user.Username
		}
		_, err = m.deps.Tasks.AddComment(m.ctx, m.Detail.TaskID, text, author)
	}
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Detail.Input = DetailInputNone
	m.detailInput.SetValue("")
	m.detailInput.Blur()
	return m
}

func (m Model) renderDetailView() string {
	task, ok := m.deps.Tasks.Find(m.Detail.TaskID)
	if !ok {
		return "(task gone)"
	}

	subs := make([]views.TaskItemData, 0, len(task.Subtasks))
	for _, sub := range task.Subtasks {
		subs = append(subs, views.TaskItemData{ID: sub.ID, Title: sub.Title, Completed: sub.Completed})
	}
	comments := make([]views.CommentData, 0, len(task.Comments))
	for _, c := range task.Comments {
		text := c.Text
		if c.Author != "" {
			text = c.Author + ": " + c.Text
		}
		comments = append(comments, views.CommentData{Text: text, CreatedAt: c.Date})
	}

	data := views.TaskDetailPanelData{
		Title:           task.Title,
		Completed:       task.Completed,
		Priority:        string(task.Priority),
		DueDate:         task.DueDate,
		Reminder:        task.Reminder,
		Recurrence:      string(task.Recurrence),
		NextOccurrences: recurrencePreview(task),
		DescriptionView: views.RenderMarkdown(task.Description),
		Subtasks:        subs,
		SubtaskIdx:      m.Detail.SubCursor,
		Comments:        comments,
	}
	if m.Detail.Input == DetailInputSubtask {
		data.InputLabel = "new subtask"
		data.InputView = m.detailInput.View()
	}
	if m.Detail.Input == DetailInputComment {
		data.InputLabel = "new comment"
		data.InputView = m.detailInput.View()
	}
	return views.RenderTaskDetailPanel(data)
}

func recurrencePreview(task model.Task) []string {
	anchor := task.DueTime()
	if anchor.IsZero() {
		anchor = time.Now().UTC()
	}
	next, err := task.Recurrence.Preview(anchor, 3)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(next))
	for _, n := range next {
		out = append(out, n.Format("2006-01-02"))
	}
	return out
}
