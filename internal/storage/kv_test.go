package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()
	sqliteKV, err := Open(Options{Driver: DriverSQLite, Path: filepath.Join(dir, "nested", "focusd.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	diskKV, err := Open(Options{Driver: DriverDiskv, Path: filepath.Join(dir, "disk")})
	if err != nil {
		t.Fatalf("open diskv: %v", err)
	}
	memKV, err := Open(Options{Driver: DriverMemory})
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	out := map[string]KV{"sqlite": sqliteKV, "diskv": diskKV, "memory": memKV}
	t.Cleanup(func() {
		for _, kv := range out {
			_ = kv.Close()
		}
	})
	return out
}

func TestKVGetSetRemove(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := kv.GetItem(ctx, KeyTasks); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound on empty store, got %v", err)
			}
			if err := kv.SetItem(ctx, KeyTasks, `[]`); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := kv.SetItem(ctx, KeyTasks, `[{"id":"1"}]`); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err := kv.GetItem(ctx, KeyTasks)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got != `[{"id":"1"}]` {
				t.Fatalf("unexpected value: %q", got)
			}
			if err := kv.RemoveItem(ctx, KeyTasks); err != nil {
				t.Fatalf("remove: %v", err)
			}
			if err := kv.RemoveItem(ctx, KeyTasks); err != nil {
				t.Fatalf("remove of missing key should be a no-op: %v", err)
			}
			if _, err := kv.GetItem(ctx, KeyTasks); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after remove, got %v", err)
			}
		})
	}
}

func TestLoadJSONMissingAndCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	var dst map[string]int
	found, err := LoadJSON(ctx, kv, KeyTimer, &dst)
	if err != nil || found {
		t.Fatalf("expected missing key to be found=false without error, got %v %v", found, err)
	}

	if err := kv.SetItem(ctx, KeyTimer, "{not json"); err != nil {
		t.Fatalf("set: %v", err)
	}
	found, err = LoadJSON(ctx, kv, KeyTimer, &dst)
	if !found || !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got found=%v err=%v", found, err)
	}
}

func TestSaveJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	in := map[string]int{"completedSessions": 4}
	if err := SaveJSON(ctx, kv, KeyTimer, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	var out map[string]int
	if _, err := LoadJSON(ctx, kv, KeyTimer, &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if out["completedSessions"] != 4 {
		t.Fatalf("unexpected roundtrip: %+v", out)
	}
	if kv.Writes() != 1 {
		t.Fatalf("expected 1 write, got %d", kv.Writes())
	}
}

func TestSQLiteUpdatedAt(t *testing.T) {
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "stamp.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer kv.Close()
	fixed := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return fixed }

	if _, err := kv.UpdatedAt(t.Context(), KeyTheme); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := kv.SetItem(t.Context(), KeyTheme, "light"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := kv.UpdatedAt(t.Context(), KeyTheme)
	if err != nil {
		t.Fatalf("updated at: %v", err)
	}
	if !got.Equal(fixed) {
		t.Fatalf("expected %v, got %v", fixed, got)
	}
}

func TestMemoryUpdatedAt(t *testing.T) {
	kv := NewMemoryKV()
	fixed := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return fixed }

	var stamped Timestamped = kv
	if err := kv.SetItem(t.Context(), KeyTimer, "{}"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := stamped.UpdatedAt(t.Context(), KeyTimer)
	if err != nil || !got.Equal(fixed) {
		t.Fatalf("expected %v, got %v (%v)", fixed, got, err)
	}
	if err := kv.RemoveItem(t.Context(), KeyTimer); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := stamped.UpdatedAt(t.Context(), KeyTimer); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(Options{Driver: "redis"}); err == nil {
		t.Fatal("expected unknown driver error")
	}
}
