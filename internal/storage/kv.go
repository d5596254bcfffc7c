package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound = errors.New("storage: not found")
	ErrCorrupt  = errors.New("storage: corrupt value")
)

const (
	KeyTasks  = "pomodoroTasks"
	KeyTimer  = "pomodoroData"
	KeyTheme  = "theme"
	KeyLocale = "locale"
)

// KV is a string key-value store with local-storage semantics.
type KV interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Close() error
}

// Timestamped is implemented by backends that record when each key was last
// written.
type Timestamped interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
}

// LoadJSON decodes the value under key into dst. A missing key reports
// found=false without error; undecodable data is wrapped with ErrCorrupt.
func LoadJSON(ctx context.Context, kv KV, key string, dst any) (bool, error) {
	raw, err := kv.GetItem(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

func SaveJSON(ctx context.Context, kv KV, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.SetItem(ctx, key, string(payload))
}
