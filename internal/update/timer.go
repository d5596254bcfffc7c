package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/views"
)

var modeKeys = []struct {
	key  string
	mode model.TimerMode
}{
	{"f", model.ModeFocus},
	{"s", model.ModeShortBreak},
	{"l", model.ModeLongBreak},
}

func (m Model) handleTimerKey(msg tea.KeyMsg) Model {
	timer := m.app.Timer
	switch msg.String() {
	case " ":
		switch {
		case m.Timer.IsRunning:
			timer.Pause()
			m.userPaused = true
			m.Status = StatusBar{Text: m.t("timer.stopped")}
		case m.userPaused && m.Timer.TimeLeft > 0:
			timer.Resume()
			m.userPaused = false
			m.Status = StatusBar{Text: m.t("timer.started")}
		default:
			timer.Start()
			m.Status = StatusBar{Text: m.t("timer.started")}
		}
	case "r":
		timer.Reset()
		m.userPaused = false
		m.Status = StatusBar{Text: m.t("timer.reset")}
	case "c":
		timer.Complete()
		m.userPaused = false
	default:
		for _, mk := range modeKeys {
			if msg.String() != mk.key {
				continue
			}
			if err := timer.SetMode(mk.mode); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
				return m
			}
			m.Status = StatusBar{Text: m.t("timer.mode", m.modeLabel(mk.mode))}
		}
	}
	m.refresh()
	return m
}

func (m Model) renderTimerView() string {
	cfg := m.modeConfig()
	tabs := make([]views.ModeTab, 0, len(modeKeys))
	for _, mk := range modeKeys {
		tabs = append(tabs, views.ModeTab{Key: mk.key, Label: m.modeLabel(mk.mode), Active: m.Timer.Mode == mk.mode})
	}
	spin := ""
	if m.Timer.IsRunning {
		spin = m.runSpinner.View()
	}
	progress := m.Timer.Progress()
	return views.RenderTimerPanel(views.TimerPanelData{
		Theme:        m.Theme,
		Title:        m.t("view.timer"),
		ModeLabel:    m.modeLabel(m.Timer.Mode),
		ModeIcon:     cfg.Icon,
		ModeColor:    cfg.Color,
		Clock:        views.FormatClock(m.Timer.TimeLeft),
		StateLabel:   m.stateLabel(),
		ProgressView: m.timerProgress.ViewAs(progress),
		ProgressPct:  int(progress * 100),
		Sessions:     fmt.Sprintf("%s: %d", m.t("stats.sessions"), m.Timer.CompletedSessions),
		Tabs:         tabs,
		Spinner:      spin,
	})
}
