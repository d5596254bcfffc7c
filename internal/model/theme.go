package model

import "strings"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func ParseTheme(raw string) (Theme, bool) {
	t := Theme(strings.ToLower(strings.TrimSpace(raw)))
	return t, t.IsValid()
}
