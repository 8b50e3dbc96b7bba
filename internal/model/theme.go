package model

import (
	"errors"
	"fmt"
	"regexp"
)

type Theme string

const (
	ThemeLight    Theme = "light"
	ThemeDark     Theme = "dark"
	ThemeBlue     Theme = "blue"
	ThemeGreen    Theme = "green"
	ThemeSunset   Theme = "sunset"
	ThemeMidnight Theme = "midnight"
	ThemeCustom   Theme = "custom"
)

var ErrInvalidTheme = errors.New("model: invalid theme")

func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeBlue, ThemeGreen, ThemeSunset, ThemeMidnight, ThemeCustom:
		return true
	default:
		return false
	}
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// CustomTheme is the fixed-shape color record persisted under the
// customTheme key.
type CustomTheme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Bg        string `json:"bg"`
	Surface   string `json:"surface"`
	Text      string `json:"text"`
}

func (c CustomTheme) Validate() error {
	fields := map[string]string{
		"primary":   c.Primary,
		"secondary": c.Secondary,
		"bg":        c.Bg,
		"surface":   c.Surface,
		"text":      c.Text,
	}
	for name, value := range fields {
		if !hexColor.MatchString(value) {
			return fmt.Errorf("model: custom theme %s must be a hex color, got %q", name, value)
		}
	}
	return nil
}

// DefaultCustomTheme mirrors the color-picker defaults of the original theme
// customizer.
func DefaultCustomTheme() CustomTheme {
	return CustomTheme{
		Primary:   "#4CAF50",
		Secondary: "#2196F3",
		Bg:        "#f8f9fa",
		Surface:   "#ffffff",
		Text:      "#212121",
	}
}
