package storage

import (
	"context"
	"sync"
	"time"
)

type MemoryKV struct {
	mu      sync.RWMutex
	values  map[string]string
	updated map[string]time.Time
	writes  int
	now     func() time.Time
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		values:  make(map[string]string),
		updated: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *MemoryKV) GetItem(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryKV) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.updated[key] = m.now()
	m.writes++
	return nil
}

func (m *MemoryKV) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	delete(m.updated, key)
	return nil
}

func (m *MemoryKV) Close() error { return nil }

func (m *MemoryKV) UpdatedAt(_ context.Context, key string) (time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	at, ok := m.updated[key]
	if !ok {
		return time.Time{}, ErrNotFound
	}
	return at, nil
}

// Writes counts successful SetItem calls.
func (m *MemoryKV) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
