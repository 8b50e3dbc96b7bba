package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	Tabs       []string
	ActiveTab  int
	Body       string
	SidePane   string
	StatusLine string
	IsError    bool
	Footer     string
}

func RenderApp(data AppData, styles Styles) string {
	tabs := make([]string, 0, len(data.Tabs))
	for i, tab := range data.Tabs {
		if i == data.ActiveTab {
			tabs = append(tabs, styles.TabActive.Render(tab))
		} else {
			tabs = append(tabs, styles.Tab.Render(tab))
		}
	}

	body := styles.Panel.Width(58).Render(data.Body)
	row := body
	if data.SidePane != "" {
		side := styles.Panel.Width(58).Render(data.SidePane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, body, side)
	}

	status := styles.Status.Render(data.StatusLine)
	if data.IsError {
		status = styles.Error.Render(data.StatusLine)
	}

	lines := []string{
		styles.Header.Render(data.Header),
		strings.Join(tabs, "  "),
		row,
		status,
	}
	if data.Footer != "" {
		lines = append(lines, styles.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
