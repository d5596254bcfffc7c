package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/views"
)

const (
	listWidth     = 56
	listHeight    = 14
	progressWidth = 40
)

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), listWidth, listHeight)
	m.taskList.SetShowTitle(false)
	m.taskList.SetShowHelp(false)
	m.taskList.SetShowStatusBar(false)
	m.taskList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Metric", Width: 20},
		{Title: "Value", Width: 16},
	}
	m.statsTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithHeight(10))

	m.addInput = textinput.New()
	m.addInput.Prompt = "add> "
	m.addInput.CharLimit = 256
	m.addInput.Width = 36

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.timerProgress = progress.New(progress.WithSolidFill("#059669"), progress.WithoutPercentage(), progress.WithWidth(progressWidth))

	m.runSpinner = spinner.New()
	m.runSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.helpModel.ShowAll = true
}

func (m *Model) syncBubbleData() {
	items := make([]list.Item, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		check := "[ ]"
		if task.Completed {
			check = "[x]"
		}
		desc := m.categoryLabel(task.Category)
		if created, err := task.Created(); err == nil {
			desc = fmt.Sprintf("%s · %s", desc, created.Local().Format("Jan 02 15:04"))
		}
		items = append(items, listItem{title: fmt.Sprintf("%s %s", check, task.Text), description: desc})
	}
	m.taskList.SetItems(items)
	if len(items) > 0 {
		m.taskList.Select(m.Cursor)
	}

	m.statsTable.SetRows(m.statsRows())

	m.addInput.Placeholder = m.t("tasks.placeholder")
	m.commandInput.Placeholder = m.t("palette.placeholder")

	p := views.PaletteFor(m.Theme)
	m.timerProgress.FullColor = string(p.ModeColor(m.modeConfig().Color))
	m.timerProgress.EmptyColor = string(p.Border)
}

func (m Model) statsRows() []table.Row {
	summary := model.Summarize(m.Timer.Stats(), m.app.Config.DailyGoalMinutes)
	stats := model.ComputeTaskStats(m.Tasks)
	return []table.Row{
		{m.t("stats.sessions"), fmt.Sprintf("%d", summary.CompletedSessions)},
		{m.t("stats.focusTime"), views.FormatMinutes(summary.TotalFocusTime)},
		{m.t("stats.breakTime"), views.FormatMinutes(summary.TotalBreakTime)},
		{m.t("stats.today"), views.FormatMinutes(summary.TodayFocus)},
		{m.t("stats.best"), fmt.Sprintf("%.0fm", summary.BestSession)},
		{m.t("stats.streak"), m.t("stats.days", summary.CurrentStreak)},
		{m.t("stats.score"), fmt.Sprintf("%d%%", summary.ProductivityScore)},
		{m.t("view.tasks"), m.t("tasks.progress", stats.Completed, stats.Total)},
	}
}

func (m Model) modeConfig() model.ModeConfig {
	if cfg, ok := m.app.Timer.Modes()[m.Timer.Mode]; ok {
		return cfg
	}
	return model.ModeConfig{Name: "Custom", Duration: m.Timer.TotalTime, Icon: "⏱", Color: "amber"}
}

func (m Model) modeLabel(mode model.TimerMode) string {
	return m.t("mode." + string(mode))
}

func (m Model) categoryLabel(c model.Category) string {
	return m.t("category." + string(c))
}

func (m Model) stateLabel() string {
	if m.Timer.IsRunning {
		return m.t("timer.running")
	}
	return strings.ToLower(m.t("timer.paused"))
}
