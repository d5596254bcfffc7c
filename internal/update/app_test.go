package update

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/app"
	"github.com/sandeepkv93/focusd/internal/config"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/notify"
	"github.com/sandeepkv93/focusd/internal/scheduler"
	"github.com/sandeepkv93/focusd/internal/storage"
)

func newTestModel(t *testing.T) (Model, *scheduler.Manual, *app.App) {
	t.Helper()
	sched := scheduler.NewManual()
	a, err := app.New(context.Background(), config.DefaultRuntimeConfig(), app.Options{
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		KV:          storage.NewMemoryKV(),
		Scheduler:   sched,
		Notifier:    notify.Noop{},
		PrefersDark: func() bool { return false },
		Getenv:      func(string) string { return "" },
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return NewModel(a), sched, a
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.CurrentView != ViewTimer {
		t.Fatalf("expected default view %q, got %q", ViewTimer, m.CurrentView)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if m.Timer.TimeLeft != 1500 || m.Timer.Mode != model.ModeFocus || m.Theme != model.ThemeLight {
		t.Fatalf("unexpected initial snapshot: timer=%+v theme=%s", m.Timer, m.Theme)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(keyRunes("2"))
	next := updated.(Model)
	if next.CurrentView != ViewTasks {
		t.Fatalf("expected tasks view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(keyRunes("1"))
	next = updated.(Model)
	if next.CurrentView != ViewTimer {
		t.Fatalf("expected timer view, got %q", next.CurrentView)
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(SwitchViewMsg{View: ViewTasks})
	next := updated.(Model)
	if next.CurrentView != ViewTasks {
		t.Fatalf("expected tasks view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(SwitchViewMsg{View: View("Unknown")})
	next = updated.(Model)
	if next.CurrentView != ViewTasks {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestTimerKeysDriveStore(t *testing.T) {
	m, sched, a := newTestModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)
	if !m.Timer.IsRunning || cmd == nil {
		t.Fatalf("expected running timer with spinner cmd, running=%v", m.Timer.IsRunning)
	}

	sched.Advance(3 * time.Second)
	m = press(t, m, StoreChangedMsg{Store: "timer"})
	if m.Timer.TimeLeft != 1497 {
		t.Fatalf("expected refreshed countdown 1497, got %d", m.Timer.TimeLeft)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Timer.IsRunning || a.Timer.State().IsRunning {
		t.Fatal("expected paused timer")
	}

	m = press(t, m, keyRunes("l"))
	if m.Timer.Mode != model.ModeLongBreak || m.Timer.TimeLeft != 900 {
		t.Fatalf("expected long break, got %+v", m.Timer)
	}

	m = press(t, m, keyRunes("c"))
	if m.Timer.CompletedSessions != 1 || m.Timer.TotalBreakTime != 900 {
		t.Fatalf("expected completed break session, got %+v", m.Timer)
	}
	if len(m.Notifications) == 0 || !strings.Contains(m.Notifications[len(m.Notifications)-1].Body, "Back to focus") {
		t.Fatalf("expected completion notification, got %+v", m.Notifications)
	}

	sched.Advance(2 * time.Second)
	m = press(t, m, StoreChangedMsg{Store: "timer"})
	if m.Timer.Mode != model.ModeFocus {
		t.Fatalf("expected auto switch to focus, got %s", m.Timer.Mode)
	}

	m = press(t, m, keyRunes("r"))
	if m.Timer.TimeLeft != m.Timer.TotalTime {
		t.Fatalf("expected reset, got %+v", m.Timer)
	}
}

func TestSpaceResumesAfterPauseAndRestartsAfterComplete(t *testing.T) {
	m, sched, _ := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	sched.Advance(3 * time.Second)
	m = press(t, m, StoreChangedMsg{Store: "timer"})

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeySpace})
	if !m.Timer.IsRunning || m.Timer.TimeLeft != 1497 {
		t.Fatalf("expected resume at 1497, got %+v", m.Timer)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace}, keyRunes("c"))
	if m.Timer.IsRunning || m.Timer.TimeLeft != 1497 || m.Timer.CompletedSessions != 1 {
		t.Fatalf("expected completed session with remaining time kept, got %+v", m.Timer)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.Timer.IsRunning || m.Timer.TimeLeft != m.Timer.TotalTime {
		t.Fatalf("expected fresh start after complete, got %+v", m.Timer)
	}
}

func TestTaskEditorAddsTask(t *testing.T) {
	m, _, a := newTestModel(t)
	m = press(t, m, keyRunes("2"), keyRunes("a"))
	if !m.Editor.Active {
		t.Fatal("expected editor active")
	}
	m = press(t, m, keyRunes("write docs"), tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})

	tasks := a.Tasks.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "write docs" || tasks[0].Category != model.CategoryUrgent {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if len(m.Tasks) != 1 || m.Cursor != 0 {
		t.Fatalf("model not refreshed: %+v cursor=%d", m.Tasks, m.Cursor)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(a.Tasks.Tasks()) != 1 {
		t.Fatal("empty input must not add a task")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Editor.Active {
		t.Fatal("expected editor closed")
	}
}

func TestTaskListKeys(t *testing.T) {
	m, _, a := newTestModel(t)
	a.Tasks.Add("one", model.CategoryNormal)
	a.Tasks.Add("two", model.CategoryNormal)
	a.Tasks.Add("three", model.CategoryNormal)
	m = press(t, m, StoreChangedMsg{Store: "tasks"}, keyRunes("2"))

	m = press(t, m, keyRunes("j"), tea.KeyMsg{Type: tea.KeySpace})
	if !a.Tasks.Tasks()[1].Completed {
		t.Fatal("expected second task completed")
	}

	m = press(t, m, keyRunes("K"))
	if got := a.Tasks.Tasks()[0].Text; got != "two" || m.Cursor != 0 {
		t.Fatalf("expected two moved to top, got %q cursor=%d", got, m.Cursor)
	}

	m = press(t, m, keyRunes("C"))
	if len(a.Tasks.Tasks()) != 2 {
		t.Fatalf("expected completed task cleared, got %+v", a.Tasks.Tasks())
	}

	m = press(t, m, keyRunes("j"), keyRunes("j"), keyRunes("j"), keyRunes("d"))
	tasks := a.Tasks.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "one" || m.Cursor != 0 {
		t.Fatalf("unexpected tasks after delete: %+v cursor=%d", tasks, m.Cursor)
	}
}

func TestPaletteCommands(t *testing.T) {
	m, _, a := newTestModel(t)
	m = press(t, m, keyRunes("/"))
	if !m.Palette.Active {
		t.Fatal("expected palette active")
	}
	m = press(t, m, keyRunes("add !important buy milk"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.Palette.Active || m.CurrentView != ViewTasks {
		t.Fatalf("expected palette closed on tasks view, active=%v view=%s", m.Palette.Active, m.CurrentView)
	}
	tasks := a.Tasks.Tasks()
	if len(tasks) != 1 || tasks[0].Category != model.CategoryImportant || tasks[0].Text != "buy milk" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}

	m = press(t, m, keyRunes("/"), keyRunes("done 5"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "out of range") {
		t.Fatalf("expected range error, got %+v", m.Status)
	}

	m = press(t, m, keyRunes("/"), keyRunes("done 1"), tea.KeyMsg{Type: tea.KeyEnter})
	if !a.Tasks.Tasks()[0].Completed {
		t.Fatal("expected task toggled")
	}

	m = press(t, m, keyRunes("/"), keyRunes("custom 10"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.Timer.Mode != model.ModeCustom || m.Timer.TotalTime != 600 || m.CurrentView != ViewTimer {
		t.Fatalf("unexpected custom timer: %+v view=%s", m.Timer, m.CurrentView)
	}

	m = press(t, m, keyRunes("/"), keyRunes("lang id"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.Locale != "id" || m.Status.Text != "Bahasa: id" {
		t.Fatalf("unexpected locale state: %s %+v", m.Locale, m.Status)
	}

	m = press(t, m, keyRunes("/"), keyRunes("nope"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Status.IsError {
		t.Fatalf("expected unknown command error, got %+v", m.Status)
	}

	m = press(t, m, keyRunes("/"), keyRunes("rm 1"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.Palette.Active || len(a.Tasks.Tasks()) != 1 {
		t.Fatal("esc must close the palette without running the command")
	}
}

func TestThemeAndLocaleKeys(t *testing.T) {
	m, _, a := newTestModel(t)
	m = press(t, m, keyRunes("t"))
	if m.Theme != model.ThemeDark {
		t.Fatalf("expected dark theme, got %s", m.Theme)
	}
	raw, err := a.KV.GetItem(context.Background(), storage.KeyTheme)
	if err != nil || raw != "dark" {
		t.Fatalf("expected persisted theme, got %q (%v)", raw, err)
	}

	m = press(t, m, keyRunes("L"))
	if m.Locale != "id" || a.Translator.Locale() != "id" {
		t.Fatalf("expected id locale, got %s", m.Locale)
	}
	m = press(t, m, keyRunes("L"))
	if m.Locale != "en" {
		t.Fatalf("expected locale to wrap to en, got %s", m.Locale)
	}
}

func TestStoreChangedMsgRearmsListener(t *testing.T) {
	m, _, a := newTestModel(t)
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected store listener cmd")
	}
	a.Tasks.Add("from elsewhere", model.CategoryNormal)

	msg := cmd()
	if _, ok := msg.(StoreChangedMsg); !ok {
		t.Fatalf("expected StoreChangedMsg, got %T", msg)
	}
	updated, next := m.Update(msg)
	m = updated.(Model)
	if next == nil {
		t.Fatal("listener must be re-armed")
	}
	if len(m.Tasks) != 1 {
		t.Fatalf("expected refreshed tasks, got %+v", m.Tasks)
	}
}

func TestViewRendersPanels(t *testing.T) {
	m, _, _ := newTestModel(t)
	out := m.View()
	for _, want := range []string{"Timer:", "25:00", "Stats:", "Sessions"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}

	m = press(t, m, keyRunes("?"))
	if !m.HelpVisible || !strings.Contains(m.View(), "Help:") {
		t.Fatal("expected help panel")
	}

	m = press(t, m, keyRunes("2"))
	if out := m.View(); !strings.Contains(out, "No tasks yet") {
		t.Fatalf("expected empty task text in view:\n%s", out)
	}
}

func TestQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, cmd := m.Update(keyRunes("q"))
	next := updated.(Model)
	if !next.Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if next.View() != "" {
		t.Fatal("quitting model should render nothing")
	}
}
