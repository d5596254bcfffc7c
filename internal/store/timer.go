package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/scheduler"
	"github.com/sandeepkv93/focusd/internal/storage"
)

var (
	ErrInvalidDuration = errors.New("store: duration must be positive")
	ErrUnknownMode     = errors.New("store: unknown timer mode")
)

const (
	DefaultTickInterval    = time.Second
	DefaultAutoSwitchDelay = 2 * time.Second
)

// Completion describes a finished session. It is handed to the completion
// hook off the store's goroutine.
type Completion struct {
	Mode     model.TimerMode
	Duration int
	At       time.Time
}

type TimerConfig struct {
	Modes           map[model.TimerMode]model.ModeConfig
	TickInterval    time.Duration
	AutoSwitchDelay time.Duration
}

func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Modes:           model.DefaultModes(),
		TickInterval:    DefaultTickInterval,
		AutoSwitchDelay: DefaultAutoSwitchDelay,
	}
}

type TimerOption func(*TimerStore)

func WithTimerClock(now func() time.Time) TimerOption {
	return func(s *TimerStore) { s.now = now }
}

func WithTimerLogger(l *slog.Logger) TimerOption {
	return func(s *TimerStore) { s.log = l }
}

// WithCompletionHook registers fn to run after every completed session.
// fn runs on its own goroutine and a panic inside it is swallowed.
func WithCompletionHook(fn func(Completion)) TimerOption {
	return func(s *TimerStore) { s.onComplete = fn }
}

// TimerStore owns the single countdown. At most one repeating tick handle
// exists at a time; it is released on every path that stops the countdown.
type TimerStore struct {
	mu         sync.Mutex
	state      model.TimerState
	cfg        TimerConfig
	kv         storage.KV
	sched      scheduler.Scheduler
	log        *slog.Logger
	now        func() time.Time
	onComplete func(Completion)

	tick       scheduler.Handle
	autoSwitch scheduler.Handle
	switchGen  uint64
	closed     bool

	obs observable[model.TimerState]
}

func NewTimerStore(kv storage.KV, sched scheduler.Scheduler, cfg TimerConfig, opts ...TimerOption) *TimerStore {
	if cfg.Modes == nil {
		cfg.Modes = model.DefaultModes()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.AutoSwitchDelay < 0 {
		cfg.AutoSwitchDelay = DefaultAutoSwitchDelay
	}
	s := &TimerStore{
		state: model.DefaultTimerState(),
		cfg:   cfg,
		kv:    kv,
		sched: sched,
		log:   slog.Default(),
		now:   time.Now,
	}
	if focus, ok := cfg.Modes[model.ModeFocus]; ok && focus.Duration > 0 {
		s.state.TotalTime = focus.Duration
		s.state.TimeLeft = focus.Duration
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe delivers the current state immediately and then every change.
func (s *TimerStore) Subscribe(fn func(model.TimerState)) func() {
	unsubscribe := s.obs.add(fn)
	fn(s.State())
	return unsubscribe
}

func (s *TimerStore) State() model.TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *TimerStore) Modes() map[model.TimerMode]model.ModeConfig {
	out := make(map[model.TimerMode]model.ModeConfig, len(s.cfg.Modes))
	for k, v := range s.cfg.Modes {
		out[k] = v
	}
	return out
}

// Start restarts the countdown from the full session length. It is a no-op
// while running.
func (s *TimerStore) Start() {
	s.mu.Lock()
	if s.closed || s.state.IsRunning {
		s.mu.Unlock()
		return
	}
	s.state.TimeLeft = s.state.TotalTime
	s.runLocked()
	s.emitLocked()
}

// Resume continues a paused countdown from where it stopped, or starts a
// fresh one when nothing is left.
func (s *TimerStore) Resume() {
	s.mu.Lock()
	if s.closed || s.state.IsRunning {
		s.mu.Unlock()
		return
	}
	if s.state.TimeLeft <= 0 {
		s.state.TimeLeft = s.state.TotalTime
	}
	s.runLocked()
	s.emitLocked()
}

func (s *TimerStore) Pause() {
	s.mu.Lock()
	s.pauseLocked()
	s.emitLocked()
}

func (s *TimerStore) Reset() {
	s.mu.Lock()
	s.pauseLocked()
	s.state.TimeLeft = s.state.TotalTime
	s.emitLocked()
}

func (s *TimerStore) SetMode(mode model.TimerMode) error {
	cfg, ok := s.cfg.Modes[mode]
	if !ok || mode == model.ModeCustom {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	s.mu.Lock()
	s.cancelAutoSwitchLocked()
	s.setModeLocked(mode, cfg.Duration)
	s.emitLocked()
	return nil
}

func (s *TimerStore) SetCustomTime(seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, seconds)
	}
	s.mu.Lock()
	s.cancelAutoSwitchLocked()
	s.setModeLocked(model.ModeCustom, seconds)
	s.emitLocked()
	return nil
}

// Complete finishes the current session: stats are updated and persisted, the
// completion hook fires, and the next mode is selected after the auto-switch
// delay.
func (s *TimerStore) Complete() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pauseLocked()
	s.cancelAutoSwitchLocked()

	now := s.now()
	st := &s.state
	st.CompletedSessions++
	if st.Mode == model.ModeFocus {
		st.TotalFocusTime += st.TotalTime
		st.TodayFocus += st.TotalTime
		st.BestSession = math.Max(st.BestSession, float64(st.TotalTime)/60)
		updateStreak(st, now)
	} else {
		st.TotalBreakTime += st.TotalTime
	}
	done := Completion{Mode: st.Mode, Duration: st.TotalTime, At: now}

	gen := s.switchGen
	s.autoSwitch = s.sched.After(s.cfg.AutoSwitchDelay, func() { s.fireAutoSwitch(gen) })

	snap := s.state.Clone()
	s.mu.Unlock()

	s.obs.notify(snap)
	if err := s.Save(context.Background()); err != nil {
		s.log.Warn("save timer stats failed", "err", err)
	}
	if s.onComplete != nil {
		go func() {
			defer func() { _ = recover() }()
			s.onComplete(done)
		}()
	}
}

// Load restores the cumulative statistics. The countdown itself is never
// persisted. Unreadable data leaves the defaults in place.
func (s *TimerStore) Load(ctx context.Context) {
	var stats model.TimerStats
	found, err := storage.LoadJSON(ctx, s.kv, storage.KeyTimer, &stats)
	if err != nil || !found {
		return
	}
	today := model.DateKey(s.now())
	s.mu.Lock()
	s.state.ApplyStats(stats)
	if s.state.LastSessionDate == nil || *s.state.LastSessionDate != today {
		s.state.TodayFocus = 0
	}
	s.emitLocked()
}

func (s *TimerStore) Save(ctx context.Context) error {
	s.mu.Lock()
	stats := s.state.Stats()
	s.mu.Unlock()
	return storage.SaveJSON(ctx, s.kv, storage.KeyTimer, stats)
}

// Close releases every scheduler handle. Later calls to Start are ignored.
func (s *TimerStore) Close() {
	s.mu.Lock()
	s.closed = true
	s.cancelAutoSwitchLocked()
	s.pauseLocked()
	s.emitLocked()
}

func (s *TimerStore) onTick() {
	s.mu.Lock()
	if s.closed || !s.state.IsRunning {
		s.mu.Unlock()
		return
	}
	if s.state.TimeLeft > 0 {
		s.state.TimeLeft--
		s.emitLocked()
		return
	}
	s.mu.Unlock()
	s.Complete()
}

func (s *TimerStore) fireAutoSwitch(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.switchGen {
		s.mu.Unlock()
		return
	}
	s.autoSwitch = nil
	next := model.ModeFocus
	if s.state.Mode == model.ModeFocus {
		next = model.ModeShortBreak
	}
	if cfg, ok := s.cfg.Modes[next]; ok {
		s.setModeLocked(next, cfg.Duration)
	}
	s.emitLocked()
}

func (s *TimerStore) runLocked() {
	s.state.IsRunning = true
	if s.tick == nil {
		s.tick = s.sched.Every(s.cfg.TickInterval, s.onTick)
	}
}

func (s *TimerStore) pauseLocked() {
	s.state.IsRunning = false
	if s.tick != nil {
		s.tick.Cancel()
		s.tick = nil
	}
}

func (s *TimerStore) setModeLocked(mode model.TimerMode, seconds int) {
	s.pauseLocked()
	s.state.Mode = mode
	s.state.TotalTime = seconds
	s.state.TimeLeft = seconds
}

func (s *TimerStore) cancelAutoSwitchLocked() {
	s.switchGen++
	if s.autoSwitch != nil {
		s.autoSwitch.Cancel()
		s.autoSwitch = nil
	}
}

// emitLocked releases the lock and notifies listeners with a snapshot.
func (s *TimerStore) emitLocked() {
	snap := s.state.Clone()
	s.mu.Unlock()
	s.obs.notify(snap)
}

// updateStreak counts consecutive calendar days with a completed focus
// session. Repeat sessions on the same day leave the streak alone.
func updateStreak(st *model.TimerState, now time.Time) {
	today := model.DateKey(now)
	if st.LastSessionDate != nil && *st.LastSessionDate == today {
		return
	}
	yesterday := model.DateKey(now.AddDate(0, 0, -1))
	if st.LastSessionDate != nil && *st.LastSessionDate == yesterday {
		st.CurrentStreak++
	} else {
		st.CurrentStreak = 1
	}
	st.LastSessionDate = &today
}
