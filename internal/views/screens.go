package views

import (
	"fmt"
	"strings"
)

type AuthFieldData struct {
	Label string
	View  string
}

type AuthPanelData struct {
	Mode      string
	Fields    []AuthFieldData
	FocusIdx  int
	ErrorText string
}

type TaskItemData struct {
	ID           string
	Title        string
	Completed    bool
	Priority     string
	DueDate      string
	SubtasksDone int
	SubtasksAll  int
	Comments     int
	Recurrence   string
	Reminder     bool
}

type TaskListPanelData struct {
	Username   string
	Filter     string
	Sort       string
	Items      []TaskItemData
	SelectedID string
	InputView  string
	InputOpen  bool
}

type TaskDetailPanelData struct {
	Title           string
	Completed       bool
	Priority        string
	DueDate         string
	Reminder        string
	Recurrence      string
	NextOccurrences []string
	DescriptionView string
	Subtasks        []TaskItemData
	SubtaskIdx      int
	Comments        []CommentData
	InputView       string
	InputLabel      string
}

type CommentData struct {
	Text      string
	CreatedAt string
}

type CollaborationPanelData struct {
	Emails     []string
	TaskTitles []string
	InputView  string
	ErrorText  string
}

type ProfileFieldData struct {
	Label string
	Value string
	View  string
}

type ProfilePanelData struct {
	Username string
	Fields   []ProfileFieldData
	FocusIdx int
	Editing  bool
}

type ThemePanelData struct {
	Themes      []string
	Current     string
	Cursor      int
	CustomView  string
	CustomOpen  bool
	CustomIdx   int
	CustomNames []string
}

type HelpPanelData struct {
	Screen   string
	Bindings []string
}

func RenderAuthPanel(data AuthPanelData) string {
	var b strings.Builder
	b.WriteString(data.Mode + ":\n")
	for i, field := range data.Fields {
		cursor := " "
		if i == data.FocusIdx {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s: %s\n", cursor, field.Label, field.View))
	}
	if data.Mode == "login" {
		b.WriteString("actions: [enter]login [tab]next-field [ctrl+r]switch-to-register\n")
	} else {
		b.WriteString("actions: [enter]register [tab]next-field [ctrl+r]switch-to-login\n")
	}
	if data.ErrorText != "" {
		b.WriteString(fmt.Sprintf("error: %s", data.ErrorText))
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskListPanel(data TaskListPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks (%s):\n", data.Username))
	b.WriteString(fmt.Sprintf("filter: %s | sort: %s\n", data.Filter, sortLabel(data.Sort)))
	if data.InputOpen {
		b.WriteString("new task: " + data.InputView + "\n")
	}
	b.WriteString("actions: [a]add [space]toggle [enter]detail [d]delete [J/K]reorder [/]command\n")
	if len(data.Items) == 0 {
		b.WriteString("(no tasks)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if item.ID == data.SelectedID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s%s\n", cursor, checkbox(item.Completed), item.Title, taskBadges(item)))
	}
	return strings.TrimSpace(b.String())
}

func taskBadges(item TaskItemData) string {
	var b strings.Builder
	if item.Priority != "" {
		b.WriteString(fmt.Sprintf(" [%s]", strings.ToUpper(item.Priority)))
	}
	if item.DueDate != "" {
		b.WriteString(fmt.Sprintf(" due:%s", item.DueDate))
	}
	if item.SubtasksAll > 0 {
		b.WriteString(fmt.Sprintf(" (%d/%d)", item.SubtasksDone, item.SubtasksAll))
	}
	if item.Comments > 0 {
		b.WriteString(fmt.Sprintf(" %dc", item.Comments))
	}
	if item.Recurrence != "" && item.Recurrence != "none" {
		b.WriteString(fmt.Sprintf(" @%s", item.Recurrence))
	}
	if item.Reminder {
		b.WriteString(" !")
	}
	return b.String()
}

func RenderTaskDetailPanel(data TaskDetailPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("task: %s %s\n", checkbox(data.Completed), data.Title))
	if data.Priority != "" {
		b.WriteString(fmt.Sprintf("priority: %s\n", data.Priority))
	}
	if data.DueDate != "" {
		b.WriteString(fmt.Sprintf("due: %s\n", data.DueDate))
	}
	if data.Reminder != "" {
		b.WriteString(fmt.Sprintf("reminder: %s\n", data.Reminder))
	}
	if data.Recurrence != "" && data.Recurrence != "none" {
		b.WriteString(fmt.Sprintf("repeats: %s\n", data.Recurrence))
		if len(data.NextOccurrences) > 0 {
			b.WriteString(fmt.Sprintf("next: %s\n", strings.Join(data.NextOccurrences, ", ")))
		}
	}
	if data.DescriptionView != "" {
		b.WriteString("\n" + data.DescriptionView + "\n")
	}

	b.WriteString("\nsubtasks:\n")
	if len(data.Subtasks) == 0 {
		b.WriteString("(none)\n")
	}
	for i, sub := range data.Subtasks {
		cursor := " "
		if i == data.SubtaskIdx {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, checkbox(sub.Completed), sub.Title))
	}

	b.WriteString("\ncomments:\n")
	if len(data.Comments) == 0 {
		b.WriteString("(none)\n")
	}
	for _, comment := range data.Comments {
		b.WriteString(fmt.Sprintf("- %s (%s)\n", comment.Text, comment.CreatedAt))
	}

	if data.InputLabel != "" {
		b.WriteString(fmt.Sprintf("\n%s: %s\n", data.InputLabel, data.InputView))
	}
	b.WriteString("actions: [s]add-subtask [space]toggle-subtask [c]comment [esc]back")
	return strings.TrimSpace(b.String())
}

func RenderCollaborationPanel(data CollaborationPanelData) string {
	var b strings.Builder
	b.WriteString("collaborators:\n")
	b.WriteString("share with: " + data.InputView + "\n")
	b.WriteString("actions: [enter]share [esc]back\n")
	if data.ErrorText != "" {
		b.WriteString(fmt.Sprintf("error: %s\n", data.ErrorText))
	}
	if len(data.Emails) == 0 {
		b.WriteString("(nobody yet)\n")
	}
	for _, email := range data.Emails {
		b.WriteString(fmt.Sprintf("- %s\n", email))
	}
	if len(data.Emails) > 0 && len(data.TaskTitles) > 0 {
		b.WriteString(fmt.Sprintf("\nshared tasks (%d):\n", len(data.TaskTitles)))
		for _, title := range data.TaskTitles {
			b.WriteString(fmt.Sprintf("- %s\n", title))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderProfilePanel(data ProfilePanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("profile (%s):\n", data.Username))
	for i, field := range data.Fields {
		cursor := " "
		if data.Editing && i == data.FocusIdx {
			cursor = ">"
		}
		value := field.Value
		if data.Editing {
			value = field.View
		}
		if value == "" {
			value = "(not set)"
		}
		b.WriteString(fmt.Sprintf("%s %s: %s\n", cursor, field.Label, value))
	}
	if data.Editing {
		b.WriteString("actions: [enter]save [tab]next-field [esc]cancel")
	} else {
		b.WriteString("actions: [e]edit [esc]back")
	}
	return strings.TrimSpace(b.String())
}

func RenderThemePanel(data ThemePanelData) string {
	var b strings.Builder
	b.WriteString("theme:\n")
	for i, name := range data.Themes {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		marker := " "
		if name == data.Current {
			marker = "*"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, marker, name))
	}
	b.WriteString("actions: [j/k]move [enter]apply [c]customize [esc]back\n")
	if data.CustomOpen {
		b.WriteString("\ncustomize:\n")
		for i, name := range data.CustomNames {
			cursor := " "
			if i == data.CustomIdx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %s\n", cursor, name))
		}
		b.WriteString("value: " + data.CustomView + "\n")
		b.WriteString("actions: [tab]next-color [enter]save [esc]close")
	}
	return strings.TrimSpace(b.String())
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("help (%s):\n", data.Screen))
	for _, binding := range data.Bindings {
		b.WriteString(fmt.Sprintf("  %s\n", binding))
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func sortLabel(sort string) string {
	if sort == "" {
		return "manual"
	}
	return sort
}
