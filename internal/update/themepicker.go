package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/views"
)

var themeOrder = []model.Theme{
	model.ThemeLight,
	model.ThemeDark,
	model.ThemeBlue,
	model.ThemeGreen,
	model.ThemeSunset,
	model.ThemeMidnight,
	model.ThemeCustom,
}

var customFieldNames = []string{"primary", "secondary", "background", "surface", "text"}

func (m Model) handleThemeKey(msg tea.KeyMsg) Model {
	if m.ThemePicker.CustomOpen {
		return m.handleCustomThemeKey(msg)
	}

	switch msg.String() {
	case "esc":
		m.Screen = ScreenTasks
	case "up", "k":
		if m.ThemePicker.Cursor > 0 {
			m.ThemePicker.Cursor--
		}
	case "down", "j":
		if m.ThemePicker.Cursor < len(themeOrder)-1 {
			m.ThemePicker.Cursor++
		}
	case "enter":
		return m.applyTheme(themeOrder[m.ThemePicker.Cursor])
	case "c":
		m.ThemePicker.CustomOpen = true
		m.ThemePicker.CustomIdx = 0
		m.customInput.SetValue(m.customFieldValue(0))
		m.customInput.Focus()
	}
	return m
}

func (m Model) handleCustomThemeKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.ThemePicker.CustomOpen = false
		m.customInput.Blur()
	case "tab", "down":
		m.Custom = m.customWithField(m.ThemePicker.CustomIdx, m.customInput.Value())
		m.ThemePicker.CustomIdx = (m.ThemePicker.CustomIdx + 1) % len(customFieldNames)
		m.customInput.SetValue(m.customFieldValue(m.ThemePicker.CustomIdx))
	case "enter":
		return m.saveCustomTheme()
	default:
		typeInto(&m.customInput, msg)
	}
	return m
}

// applyTheme persists the choice and rebuilds the styles so the change is
// visible on the next frame.
func (m Model) applyTheme(theme model.Theme) Model {
	if err := m.deps.Store.SetTheme(m.ctx, theme); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Theme = theme
	m.restyle()
	m.Status = StatusBar{Text: "theme: " + string(theme)}
	return m
}

func (m Model) saveCustomTheme() Model {
	custom := m.customWithField(m.ThemePicker.CustomIdx, m.customInput.Value())
	if err := custom.Validate(); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	if err := m.deps.Store.SetCustomTheme(m.ctx, custom); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Custom = custom
	m.ThemePicker.CustomOpen = false
	m.customInput.Blur()
	return m.applyTheme(model.ThemeCustom)
}

func (m Model) customFieldValue(idx int) string {
	switch idx {
	case 0:
		return m.Custom.Primary
	case 1:
		return m.Custom.Secondary
	case 2:
		return m.Custom.Bg
	case 3:
		return m.Custom.Surface
	default:
		return m.Custom.Text
	}
}

func (m Model) customWithField(idx int, value string) model.CustomTheme {
	custom := m.Custom
	switch idx {
	case 0:
		custom.Primary = value
	case 1:
		custom.Secondary = value
	case 2:
		custom.Bg = value
	case 3:
		custom.Surface = value
	default:
		custom.Text = value
	}
	return custom
}

func (m Model) renderThemeView() string {
	names := make([]string, 0, len(themeOrder))
	for _, t := range themeOrder {
		names = append(names, string(t))
	}
	return views.RenderThemePanel(views.ThemePanelData{
		Themes:      names,
		Current:     string(m.Theme),
		Cursor:      m.ThemePicker.Cursor,
		CustomView:  m.customInput.View(),
		CustomOpen:  m.ThemePicker.CustomOpen,
		CustomIdx:   m.ThemePicker.CustomIdx,
		CustomNames: customFieldNames,
	})
}
