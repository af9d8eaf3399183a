package models

import "fmt"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("invalid theme %q: must be %q or %q", s, ThemeLight, ThemeDark)
}

// Class returns the CSS class applied to the page body for the theme.
func (t Theme) Class() string {
	if t == ThemeDark {
		return "dark-mode"
	}
	return ""
}
