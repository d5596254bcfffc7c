package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/sandeepkv93/focusd/internal/model"
)

// TaskTextWidth bounds the task text in a row so the pane never wraps.
const TaskTextWidth = 36

type ModeTab struct {
	Key    string
	Label  string
	Active bool
}

type TimerPanelData struct {
	Theme        model.Theme
	Title        string
	ModeLabel    string
	ModeIcon     string
	ModeColor    string
	Clock        string
	StateLabel   string
	ProgressView string
	ProgressPct  int
	Sessions     string
	Tabs         []ModeTab
	Spinner      string
}

type TaskItemData struct {
	Text          string
	Category      model.Category
	CategoryLabel string
	Completed     bool
}

type TaskPanelData struct {
	Theme        model.Theme
	Title        string
	Items        []TaskItemData
	Cursor       int
	ListView     string
	Adding       bool
	InputView    string
	NewCategory  string
	Empty        string
	ProgressText string
}

type StatsPanelData struct {
	Title     string
	TableView string
}

type HelpPanelData struct {
	Title    string
	Markdown string
	Theme    model.Theme
	KeysView string
}

func RenderTimerPanel(data TimerPanelData) string {
	p := PaletteFor(data.Theme)
	modeStyle := lipgloss.NewStyle().Bold(true).Foreground(p.ModeColor(data.ModeColor))

	var b strings.Builder
	b.WriteString(data.Title + ":\n")
	tabs := make([]string, 0, len(data.Tabs))
	for _, tab := range data.Tabs {
		label := fmt.Sprintf("[%s] %s", tab.Key, tab.Label)
		if tab.Active {
			label = modeStyle.Render(label)
		}
		tabs = append(tabs, label)
	}
	if len(tabs) > 0 {
		b.WriteString(strings.Join(tabs, "  ") + "\n\n")
	}
	b.WriteString(modeStyle.Render(fmt.Sprintf("%s %s", data.ModeIcon, data.ModeLabel)) + "\n")
	clock := lipgloss.NewStyle().Bold(true).Render(data.Clock)
	b.WriteString(fmt.Sprintf("%s  %s %s\n", clock, data.StateLabel, data.Spinner))
	b.WriteString(fmt.Sprintf("%s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(data.Sessions + "\n")
	b.WriteString("actions: [space]start/pause [r]reset [c]complete [f/s/l]mode")
	return strings.TrimSpace(b.String())
}

func RenderTaskPanel(data TaskPanelData) string {
	p := PaletteFor(data.Theme)
	var b strings.Builder
	b.WriteString(data.Title + ":\n")
	if data.Adding {
		b.WriteString(fmt.Sprintf("%s  [%s]\n", data.InputView, data.NewCategory))
		b.WriteString("keys: [enter]save [tab]category [esc]cancel\n")
	} else {
		b.WriteString("actions: [a]add [space]toggle [d]delete [J/K]reorder [C]clear\n")
	}
	b.WriteString(data.ProgressText + "\n\n")
	if len(data.Items) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(p.Muted).Render(data.Empty))
		return strings.TrimSpace(b.String())
	}
	if data.ListView != "" {
		b.WriteString(data.ListView)
		return strings.TrimSpace(b.String())
	}
	for i, item := range data.Items {
		b.WriteString(RenderTaskLine(p, item, i+1, i == data.Cursor) + "\n")
	}
	return strings.TrimSpace(b.String())
}

// RenderTaskLine formats one numbered task row.
func RenderTaskLine(p Palette, item TaskItemData, n int, selected bool) string {
	cursor := " "
	if selected {
		cursor = ">"
	}
	check := "[ ]"
	text := truncate.StringWithTail(item.Text, TaskTextWidth, "…")
	if item.Completed {
		check = "[x]"
		text = lipgloss.NewStyle().Strikethrough(true).Foreground(p.Muted).Render(text)
	}
	badge := lipgloss.NewStyle().Foreground(p.CategoryColor(item.Category)).Render(strings.ToUpper(item.CategoryLabel))
	return fmt.Sprintf("%s %2d. %s %s %s", cursor, n, check, badge, text)
}

func RenderStatsPanel(data StatsPanelData) string {
	return strings.TrimSpace(data.Title + ":\n" + data.TableView)
}

func RenderHelpPanel(data HelpPanelData) string {
	return strings.TrimSpace(fmt.Sprintf("%s:\n%s\n\n%s",
		data.Title,
		RenderMarkdown(data.Markdown, data.Theme, PaneWidth-2),
		data.KeysView,
	))
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

// FormatClock renders seconds as MM:SS, clamping negatives to zero.
func FormatClock(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSec/60, totalSec%60)
}

// FormatMinutes renders seconds as a compact hours/minutes string.
func FormatMinutes(totalSec int) string {
	mins := totalSec / 60
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}
