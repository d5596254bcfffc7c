package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/sandeepkv93/focusd/internal/config"
	"github.com/sandeepkv93/focusd/internal/i18n"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/notify"
	"github.com/sandeepkv93/focusd/internal/scheduler"
	"github.com/sandeepkv93/focusd/internal/storage"
	"github.com/sandeepkv93/focusd/internal/store"
)

var ErrTaskNotFound = errors.New("app: no task at that position")

const notifyTimeout = 5 * time.Second

// App owns every long-lived dependency of a focusd process. Callers build one
// with New and release it with Close.
type App struct {
	Config     config.RuntimeConfig
	KV         storage.KV
	Scheduler  scheduler.Scheduler
	Notifier   notify.Notifier
	Catalogs   i18n.Catalogs
	Translator *i18n.Translator
	Tasks      *store.TaskStore
	Timer      *store.TimerStore
	Theme      *store.ThemeStore
	Locale     *store.LocaleStore
	Log        *slog.Logger

	engine      *scheduler.Engine
	unsubscribe func()
	closeOnce   sync.Once
	closeErr    error
}

type Options struct {
	Logger *slog.Logger
	// KV replaces the configured storage backend.
	KV storage.KV
	// Scheduler replaces the real-time engine.
	Scheduler scheduler.Scheduler
	// Notifier replaces the notifiers derived from config.
	Notifier    notify.Notifier
	PrefersDark func() bool
	Getenv      func(string) string
	Now         func() time.Time
	BellWriter  io.Writer
}

func New(ctx context.Context, cfg config.RuntimeConfig, opts Options) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	catalogs, err := i18n.LoadCatalogs()
	if err != nil {
		return nil, err
	}

	kv := opts.KV
	if kv == nil {
		kv, err = storage.Open(cfg.StorageOptions())
		if err != nil {
			return nil, fmt.Errorf("app: open storage: %w", err)
		}
	}

	a := &App{
		Config:   cfg,
		KV:       kv,
		Catalogs: catalogs,
		Log:      log,
	}

	a.Scheduler = opts.Scheduler
	if a.Scheduler == nil {
		a.engine = scheduler.NewEngine()
		a.engine.Start()
		a.Scheduler = a.engine
	}

	a.Notifier = opts.Notifier
	if a.Notifier == nil {
		a.Notifier = notifierFor(cfg, opts.BellWriter)
	}

	a.Locale = store.NewLocaleStore(ctx, kv, catalogs.Detect(opts.Getenv), i18n.Fallback, catalogs.Supported, log)
	a.Translator = i18n.NewTranslator(catalogs, a.Locale.Locale())
	a.unsubscribe = a.Locale.Subscribe(func(code string) { a.Translator.SetLocale(code) })

	a.Theme = store.NewThemeStore(ctx, kv, opts.PrefersDark, log)

	a.Tasks = store.NewTaskStore(kv, store.WithTaskLogger(log), store.WithTaskClock(now))
	a.Tasks.Load(ctx)

	a.Timer = store.NewTimerStore(kv, a.Scheduler, TimerConfig(cfg),
		store.WithTimerLogger(log),
		store.WithTimerClock(now),
		store.WithCompletionHook(a.notifyCompletion),
	)
	a.Timer.Load(ctx)

	log.Info("focusd ready", "storage", cfg.Storage, "locale", a.Locale.Locale(), "theme", a.Theme.Theme())
	return a, nil
}

// TimerConfig maps the configured minutes onto timer modes.
func TimerConfig(cfg config.RuntimeConfig) store.TimerConfig {
	tc := store.DefaultTimerConfig()
	setDuration := func(mode model.TimerMode, minutes int) {
		if minutes <= 0 {
			return
		}
		m := tc.Modes[mode]
		m.Duration = minutes * 60
		tc.Modes[mode] = m
	}
	setDuration(model.ModeFocus, cfg.FocusMinutes)
	setDuration(model.ModeShortBreak, cfg.ShortBreakMinutes)
	setDuration(model.ModeLongBreak, cfg.LongBreakMinutes)
	if cfg.AutoSwitchSeconds >= 0 {
		tc.AutoSwitchDelay = cfg.AutoSwitchDelay()
	}
	return tc
}

func notifierFor(cfg config.RuntimeConfig, bell io.Writer) notify.Notifier {
	var out notify.Multi
	if cfg.Bell {
		if bell == nil {
			bell = os.Stderr
		}
		out = append(out, notify.NewBell(bell))
	}
	if cfg.DesktopNotifications {
		out = append(out, notify.NewDesktop())
	}
	if len(out) == 0 {
		return notify.Noop{}
	}
	return out
}

func (a *App) notifyCompletion(c store.Completion) {
	body := "timer.complete.break"
	if c.Mode == model.ModeFocus {
		body = "timer.complete.focus"
	}
	n := notify.Notification{
		Title: a.Translator.T("timer.complete.title"),
		Body:  a.Translator.T(body),
	}
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := a.Notifier.Notify(ctx, n); err != nil {
		a.Log.Warn("completion notification failed", "mode", c.Mode, "err", err)
	}
}

// TaskAt returns the task at 1-based position n.
func (a *App) TaskAt(n int) (model.Task, error) {
	tasks := a.Tasks.Tasks()
	if n < 1 || n > len(tasks) {
		return model.Task{}, fmt.Errorf("%w: %d of %d", ErrTaskNotFound, n, len(tasks))
	}
	return tasks[n-1], nil
}

// MoveAt moves the task at position from onto position to.
func (a *App) MoveAt(from, to int) error {
	src, err := a.TaskAt(from)
	if err != nil {
		return err
	}
	dst, err := a.TaskAt(to)
	if err != nil {
		return err
	}
	a.Tasks.MoveTask(src.ID, dst.ID)
	return nil
}

func (a *App) Summary() model.Summary {
	return model.Summarize(a.Timer.State().Stats(), a.Config.DailyGoalMinutes)
}

// Close stops the timer and scheduler and closes storage. It is safe to call
// more than once.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		if a.unsubscribe != nil {
			a.unsubscribe()
		}
		a.Timer.Close()
		if a.engine != nil {
			a.engine.Stop()
		}
		a.closeErr = a.KV.Close()
	})
	return a.closeErr
}
