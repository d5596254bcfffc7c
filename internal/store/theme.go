package store

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/storage"
)

// ThemeStore holds the light/dark preference. Every value it takes, including
// the initial one, is written back to storage.KeyTheme.
type ThemeStore struct {
	mu    sync.Mutex
	theme model.Theme
	kv    storage.KV
	log   *slog.Logger
	obs   observable[model.Theme]
}

// NewThemeStore resolves the initial theme from the persisted value, then
// prefersDark, then light. An unrecognised persisted value is ignored.
// prefersDark may be nil.
func NewThemeStore(ctx context.Context, kv storage.KV, prefersDark func() bool, log *slog.Logger) *ThemeStore {
	if log == nil {
		log = slog.Default()
	}
	s := &ThemeStore{theme: model.ThemeLight, kv: kv, log: log}
	saved, ok := loadPreference(ctx, kv, storage.KeyTheme, log)
	t, valid := model.ParseTheme(saved)
	switch {
	case ok && valid:
		s.theme = t
	case prefersDark != nil && prefersDark():
		s.theme = model.ThemeDark
	}
	s.persist(ctx, s.theme)
	return s
}

func (s *ThemeStore) Subscribe(fn func(model.Theme)) func() {
	unsubscribe := s.obs.add(fn)
	fn(s.Theme())
	return unsubscribe
}

func (s *ThemeStore) Theme() model.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *ThemeStore) Set(t model.Theme) {
	if !t.IsValid() {
		return
	}
	s.mu.Lock()
	s.theme = t
	s.mu.Unlock()
	s.obs.notify(t)
	s.persist(context.Background(), t)
}

func (s *ThemeStore) Toggle() model.Theme {
	s.mu.Lock()
	next := s.theme.Toggle()
	s.theme = next
	s.mu.Unlock()
	s.obs.notify(next)
	s.persist(context.Background(), next)
	return next
}

func (s *ThemeStore) persist(ctx context.Context, t model.Theme) {
	if err := s.kv.SetItem(ctx, storage.KeyTheme, string(t)); err != nil {
		s.log.Warn("save theme failed", "err", err)
	}
}

// loadPreference reads a plain string preference; ok is false when the key is
// missing, empty or unreadable.
func loadPreference(ctx context.Context, kv storage.KV, key string, log *slog.Logger) (string, bool) {
	raw, err := kv.GetItem(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warn("load preference failed", "key", key, "err", err)
		}
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}
