package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sandeepkv93/focusd/internal/storage"
)

// LocaleStore holds the active UI locale code. The stores themselves never
// produce localized text; this value only selects a catalog.
type LocaleStore struct {
	mu        sync.Mutex
	locale    string
	supported func(string) (string, bool)
	kv        storage.KV
	log       *slog.Logger
	obs       observable[string]
}

// NewLocaleStore resolves the locale from the persisted value, then detected,
// then fallback. supported normalizes a code and reports whether a catalog
// exists for it.
func NewLocaleStore(ctx context.Context, kv storage.KV, detected, fallback string, supported func(string) (string, bool), log *slog.Logger) *LocaleStore {
	if log == nil {
		log = slog.Default()
	}
	s := &LocaleStore{locale: fallback, supported: supported, kv: kv, log: log}
	if saved, ok := loadPreference(ctx, kv, storage.KeyLocale, log); ok {
		if code, valid := supported(saved); valid {
			s.locale = code
			return s
		}
	}
	if code, valid := supported(detected); valid {
		s.locale = code
	}
	return s
}

func (s *LocaleStore) Subscribe(fn func(string)) func() {
	unsubscribe := s.obs.add(fn)
	fn(s.Locale())
	return unsubscribe
}

func (s *LocaleStore) Locale() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}

// Set switches to code if a catalog exists for it.
func (s *LocaleStore) Set(code string) bool {
	normalized, ok := s.supported(code)
	if !ok {
		return false
	}
	s.mu.Lock()
	s.locale = normalized
	s.mu.Unlock()
	s.obs.notify(normalized)
	if err := s.kv.SetItem(context.Background(), storage.KeyLocale, normalized); err != nil {
		s.log.Warn("save locale failed", "err", err)
	}
	return true
}
