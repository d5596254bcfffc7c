package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/views"
)

func (m Model) Init() tea.Cmd {
	return waitForStoreCmd(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			next := m.handlePaletteKey(typed)
			cmd := next.spinnerCmd()
			return next, cmd
		}
		if m.Editor.Active {
			return m.handleEditorKey(typed), nil
		}

		switch typed.String() {
		case m.Keys.Palette:
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			return m, nil
		case m.Keys.Timer:
			m.CurrentView = ViewTimer
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Theme:
			theme := m.app.Theme.Toggle()
			m.refresh()
			m.Status = StatusBar{Text: m.t("status.theme", theme)}
			return m, nil
		case m.Keys.Locale:
			m.cycleLocale()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			m.Close()
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewTimer:
			next := m.handleTimerKey(typed)
			cmd := next.spinnerCmd()
			return next, cmd
		case ViewTasks:
			return m.handleTaskKey(typed), nil
		}
	case StoreChangedMsg:
		m.refresh()
		return m, waitForStoreCmd(m.events)
	case spinner.TickMsg:
		if m.spinnerActive {
			var cmd tea.Cmd
			m.runSpinner, cmd = m.runSpinner.Update(typed)
			return m, cmd
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	m.syncBubbleData()
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	switch m.CurrentView {
	case ViewTimer:
		leftPane = m.renderTimerView()
	case ViewTasks:
		leftPane = m.renderTaskView()
	}
	rightPane := m.renderStatsView()
	if m.HelpVisible {
		rightPane = m.renderHelpView()
	}

	return views.RenderApp(views.AppData{
		Theme:        m.Theme,
		Header:       fmt.Sprintf("%s | %s | %s | %s", m.t("app.title"), m.viewTitle(), m.Theme, strings.ToUpper(m.Locale)),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Palette:      m.renderCommandPalette(),
		Footer: fmt.Sprintf("keys: %s timer | %s tasks | %s theme | %s lang | %s cmd | %s help | %s quit",
			m.Keys.Timer, m.Keys.Tasks, m.Keys.Theme, m.Keys.Locale, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) viewTitle() string {
	if m.CurrentView == ViewTasks {
		return m.t("view.tasks")
	}
	return m.t("view.timer")
}

// spinnerCmd starts the spinner tick loop the first time the timer is seen
// running.
func (m *Model) spinnerCmd() tea.Cmd {
	if m.Timer.IsRunning && !m.spinnerActive {
		m.spinnerActive = true
		return m.runSpinner.Tick
	}
	return nil
}

func waitForStoreCmd(ch <-chan StoreChangedMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ev
	}
}

func isKnownView(v View) bool {
	switch v {
	case ViewTimer, ViewTasks:
		return true
	default:
		return false
	}
}
