package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/focusd/internal/model"
)

// PaneWidth is the inner width of each of the two panels.
const PaneWidth = 58

type AppData struct {
	Theme        model.Theme
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
	Palette      string
}

// Palette is the colour set for one theme.
type Palette struct {
	Theme  model.Theme
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Ok     lipgloss.Color
	Warn   lipgloss.Color
	Danger lipgloss.Color
	Border lipgloss.Color
	modes  map[string]lipgloss.Color
}

var (
	lightPalette = Palette{
		Theme:  model.ThemeLight,
		Text:   lipgloss.Color("#1f2937"),
		Muted:  lipgloss.Color("#6b7280"),
		Accent: lipgloss.Color("#059669"),
		Ok:     lipgloss.Color("#16a34a"),
		Warn:   lipgloss.Color("#d97706"),
		Danger: lipgloss.Color("#dc2626"),
		Border: lipgloss.Color("#d1d5db"),
		modes: map[string]lipgloss.Color{
			"emerald": "#059669",
			"blue":    "#2563eb",
			"purple":  "#7c3aed",
			"amber":   "#d97706",
		},
	}
	darkPalette = Palette{
		Theme:  model.ThemeDark,
		Text:   lipgloss.Color("#f3f4f6"),
		Muted:  lipgloss.Color("#9ca3af"),
		Accent: lipgloss.Color("#34d399"),
		Ok:     lipgloss.Color("#4ade80"),
		Warn:   lipgloss.Color("#fbbf24"),
		Danger: lipgloss.Color("#f87171"),
		Border: lipgloss.Color("#4b5563"),
		modes: map[string]lipgloss.Color{
			"emerald": "#34d399",
			"blue":    "#60a5fa",
			"purple":  "#a78bfa",
			"amber":   "#fbbf24",
		},
	}
)

func PaletteFor(theme model.Theme) Palette {
	if theme == model.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// ModeColor resolves a mode colour name; unknown names use the accent.
func (p Palette) ModeColor(name string) lipgloss.Color {
	if c, ok := p.modes[name]; ok {
		return c
	}
	return p.Accent
}

func (p Palette) CategoryColor(c model.Category) lipgloss.Color {
	switch c {
	case model.CategoryUrgent:
		return p.Danger
	case model.CategoryImportant:
		return p.Warn
	default:
		return p.Muted
	}
}

func (p Palette) header() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
}

func (p Palette) panel() lipgloss.Style {
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Foreground(p.Text).Padding(0, 1)
}

func RenderApp(data AppData) string {
	p := PaletteFor(data.Theme)
	panel := p.panel()
	left := panel.Width(PaneWidth).Render(data.LeftPane)
	row := left
	if strings.TrimSpace(data.RightPane) != "" {
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, panel.Width(PaneWidth).Render(data.RightPane))
	}

	statusStyle := lipgloss.NewStyle().Foreground(p.Ok)
	if data.StatusError {
		statusStyle = lipgloss.NewStyle().Foreground(p.Danger)
	}

	lines := []string{
		p.header().Render(data.Header),
		row,
	}
	if data.Palette != "" {
		lines = append(lines, panel.Render(data.Palette))
	}
	if data.StatusLine != "" {
		lines = append(lines, statusStyle.Render(data.StatusLine))
	}
	if data.Notification != "" {
		lines = append(lines, panel.BorderForeground(p.Accent).Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(p.Muted).Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders md with the glamour style matching theme. On error
// the source is returned unchanged.
func RenderMarkdown(md string, theme model.Theme, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if theme == model.ThemeDark {
		style = "dark"
	}
	if width <= 0 {
		width = PaneWidth
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
