package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/focusd/internal/app"
	"github.com/sandeepkv93/focusd/internal/model"
)

type View string

const (
	ViewTimer View = "Timer"
	ViewTasks View = "Tasks"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Timer   string
	Tasks   string
	Theme   string
	Locale  string
	Palette string
	Help    string
	Quit    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type TaskEditorState struct {
	Active   bool
	Input    string
	Category model.Category
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	CurrentView   View
	Timer         model.TimerState
	Tasks         []model.Task
	Theme         model.Theme
	Locale        string
	Cursor        int
	Editor        TaskEditorState
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	app    *app.App
	events chan StoreChangedMsg
	unsubs []func()
	now    func() time.Time

	taskList      list.Model
	statsTable    table.Model
	addInput      textinput.Model
	commandInput  textinput.Model
	timerProgress progress.Model
	runSpinner    spinner.Model
	helpModel     help.Model
	spinnerActive bool
	// userPaused is set when space paused the running session, so the next
	// space resumes instead of restarting.
	userPaused bool
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

// StoreChangedMsg reports that one of the app stores changed. The model
// re-reads every store when it arrives.
type StoreChangedMsg struct {
	Store string
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

const eventBuffer = 64

func NewModel(a *app.App) Model {
	m := Model{
		CurrentView: ViewTimer,
		Editor:      TaskEditorState{Category: model.CategoryNormal},
		Keys: GlobalKeyMap{
			Timer:   "1",
			Tasks:   "2",
			Theme:   "t",
			Locale:  "L",
			Palette: "/",
			Help:    "?",
			Quit:    "q",
		},
		app:    a,
		events: make(chan StoreChangedMsg, eventBuffer),
		now:    time.Now,
	}
	m.initBubbleComponents()
	m.subscribe()
	m.refresh()
	m.syncBubbleData()
	return m
}

// subscribe wires every store listener to the event channel. Sends never
// block; a dropped event is covered by the next refresh.
func (m *Model) subscribe() {
	events := m.events
	push := func(name string) {
		select {
		case events <- StoreChangedMsg{Store: name}:
		default:
		}
	}
	m.unsubs = append(m.unsubs,
		m.app.Timer.Subscribe(func(model.TimerState) { push("timer") }),
		m.app.Tasks.Subscribe(func([]model.Task) { push("tasks") }),
		m.app.Theme.Subscribe(func(model.Theme) { push("theme") }),
		m.app.Locale.Subscribe(func(string) { push("locale") }),
	)
}

// Close removes the store listeners.
func (m Model) Close() {
	for _, unsubscribe := range m.unsubs {
		unsubscribe()
	}
}

func (m *Model) refresh() {
	prevSessions := m.Timer.CompletedSessions
	prevMode := m.Timer.Mode
	prevTotal := m.Timer.TotalTime
	m.Timer = m.app.Timer.State()
	m.Tasks = m.app.Tasks.Tasks()
	m.Theme = m.app.Theme.Theme()
	m.Locale = m.app.Locale.Locale()
	if m.Cursor >= len(m.Tasks) {
		m.Cursor = len(m.Tasks) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if prevMode != "" && m.Timer.CompletedSessions > prevSessions {
		body := "timer.complete.break"
		if prevMode == model.ModeFocus {
			body = "timer.complete.focus"
		}
		m.notify(m.t("timer.complete.title"), m.t(body), "info")
	}
	if m.Timer.CompletedSessions != prevSessions || m.Timer.Mode != prevMode || m.Timer.TotalTime != prevTotal {
		m.userPaused = false
	}
	if !m.Timer.IsRunning {
		m.spinnerActive = false
	}
}

func (m Model) t(key string, args ...any) string {
	return m.app.Translator.T(key, args...)
}
