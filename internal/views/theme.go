package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tasknest/tasknest/internal/model"
)

// Palette is the resolved color scheme for one theme.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Bg        lipgloss.Color
	Surface   lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
}

var palettes = map[model.Theme]Palette{
	model.ThemeLight: {
		Primary:   lipgloss.Color("#4CAF50"),
		Secondary: lipgloss.Color("#2196F3"),
		Bg:        lipgloss.Color("#f8f9fa"),
		Surface:   lipgloss.Color("#ffffff"),
		Text:      lipgloss.Color("#212121"),
		Muted:     lipgloss.Color("#757575"),
		Error:     lipgloss.Color("#e53935"),
		Success:   lipgloss.Color("#43a047"),
	},
	model.ThemeDark: {
		Primary:   lipgloss.Color("#81c784"),
		Secondary: lipgloss.Color("#64b5f6"),
		Bg:        lipgloss.Color("#121212"),
		Surface:   lipgloss.Color("#1e1e1e"),
		Text:      lipgloss.Color("#e0e0e0"),
		Muted:     lipgloss.Color("#9e9e9e"),
		Error:     lipgloss.Color("#ef5350"),
		Success:   lipgloss.Color("#66bb6a"),
	},
	model.ThemeBlue: {
		Primary:   lipgloss.Color("#1976d2"),
		Secondary: lipgloss.Color("#26c6da"),
		Bg:        lipgloss.Color("#e3f2fd"),
		Surface:   lipgloss.Color("#ffffff"),
		Text:      lipgloss.Color("#0d47a1"),
		Muted:     lipgloss.Color("#5472d3"),
		Error:     lipgloss.Color("#d32f2f"),
		Success:   lipgloss.Color("#2e7d32"),
	},
	model.ThemeGreen: {
		Primary:   lipgloss.Color("#2e7d32"),
		Secondary: lipgloss.Color("#66bb6a"),
		Bg:        lipgloss.Color("#e8f5e9"),
		Surface:   lipgloss.Color("#ffffff"),
		Text:      lipgloss.Color("#1b5e20"),
		Muted:     lipgloss.Color("#558b2f"),
		Error:     lipgloss.Color("#c62828"),
		Success:   lipgloss.Color("#2e7d32"),
	},
	model.ThemeSunset: {
		Primary:   lipgloss.Color("#ff7043"),
		Secondary: lipgloss.Color("#ffca28"),
		Bg:        lipgloss.Color("#fff3e0"),
		Surface:   lipgloss.Color("#ffe0b2"),
		Text:      lipgloss.Color("#4e342e"),
		Muted:     lipgloss.Color("#8d6e63"),
		Error:     lipgloss.Color("#d84315"),
		Success:   lipgloss.Color("#689f38"),
	},
	model.ThemeMidnight: {
		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#bb9af7"),
		Bg:        lipgloss.Color("#1a1b26"),
		Surface:   lipgloss.Color("#24283b"),
		Text:      lipgloss.Color("#c0caf5"),
		Muted:     lipgloss.Color("#565f89"),
		Error:     lipgloss.Color("#f7768e"),
		Success:   lipgloss.Color("#9ece6a"),
	},
}

// PaletteFor resolves a theme name to concrete colors. ThemeCustom maps the
// persisted custom record onto the palette; unknown values fall back to
// light.
func PaletteFor(theme model.Theme, custom model.CustomTheme) Palette {
	if theme == model.ThemeCustom {
		base := palettes[model.ThemeLight]
		return Palette{
			Primary:   lipgloss.Color(custom.Primary),
			Secondary: lipgloss.Color(custom.Secondary),
			Bg:        lipgloss.Color(custom.Bg),
			Surface:   lipgloss.Color(custom.Surface),
			Text:      lipgloss.Color(custom.Text),
			Muted:     base.Muted,
			Error:     base.Error,
			Success:   base.Success,
		}
	}
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[model.ThemeLight]
}

// Styles holds the lipgloss styles derived from one palette.
type Styles struct {
	Header    lipgloss.Style
	Panel     lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Footer    lipgloss.Style
	Selected  lipgloss.Style
	Done      lipgloss.Style
	Muted     lipgloss.Style
	TabActive lipgloss.Style
	Tab       lipgloss.Style
}

func NewStyles(p Palette) Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Muted).Padding(0, 1),
		Status:    lipgloss.NewStyle().Foreground(p.Success),
		Error:     lipgloss.NewStyle().Foreground(p.Error),
		Footer:    lipgloss.NewStyle().Foreground(p.Muted),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(p.Secondary),
		Done:      lipgloss.NewStyle().Strikethrough(true).Foreground(p.Muted),
		Muted:     lipgloss.NewStyle().Foreground(p.Muted),
		TabActive: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(p.Primary),
		Tab:       lipgloss.NewStyle().Foreground(p.Muted),
	}
}
