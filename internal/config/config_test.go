package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/focusd/internal/storage"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.FocusMinutes != 25 || cfg.ShortBreakMinutes != 5 || cfg.LongBreakMinutes != 15 {
		t.Fatalf("unexpected timer defaults: %+v", cfg)
	}
	if cfg.AutoSwitchSeconds != 2 || cfg.DailyGoalMinutes != 120 || !cfg.Bell || cfg.DesktopNotifications {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if cfg.Storage != storage.DriverSQLite || filepath.Base(cfg.DataDir) != ".focusd" {
		t.Fatalf("unexpected storage defaults: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("FOCUSD_FOCUS_MINUTES", "30")
	t.Setenv("FOCUSD_SHORT_BREAK_MINUTES", "7")
	t.Setenv("FOCUSD_LONG_BREAK_MINUTES", "20")
	t.Setenv("FOCUSD_AUTO_SWITCH_SECONDS", "0")
	t.Setenv("FOCUSD_DAILY_GOAL_MINUTES", "90")
	t.Setenv("FOCUSD_STORAGE", "DISKV")
	t.Setenv("FOCUSD_DATA_DIR", "/tmp/focusd-data")
	t.Setenv("FOCUSD_DESKTOP_NOTIFICATIONS", "yes")
	t.Setenv("FOCUSD_BELL", "off")
	t.Setenv("FOCUSD_LOG_FILE", "/tmp/focusd.log")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.FocusMinutes != 30 || cfg.ShortBreakMinutes != 7 || cfg.LongBreakMinutes != 20 {
		t.Fatalf("unexpected durations: %+v", cfg)
	}
	if cfg.AutoSwitchSeconds != 0 || cfg.DailyGoalMinutes != 90 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if !cfg.DesktopNotifications || cfg.Bell {
		t.Fatalf("unexpected notification flags: %+v", cfg)
	}
	if cfg.Storage != storage.DriverDiskv || cfg.DataDir != "/tmp/focusd-data" || cfg.LogFile != "/tmp/focusd.log" {
		t.Fatalf("unexpected paths: %+v", cfg)
	}
	if got := cfg.StorageOptions(); got.Driver != storage.DriverDiskv || got.Path != "/tmp/focusd-data/kv" {
		t.Fatalf("unexpected storage options: %+v", got)
	}
}

func TestRuntimeConfigInvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv("FOCUSD_FOCUS_MINUTES", "soon")
	t.Setenv("FOCUSD_SHORT_BREAK_MINUTES", "-3")
	t.Setenv("FOCUSD_STORAGE", "postgres")
	t.Setenv("FOCUSD_BELL", "maybe")

	base := DefaultRuntimeConfig()
	cfg := RuntimeConfigFromEnv(base)
	if cfg != base {
		t.Fatalf("invalid values must keep defaults:\n got %+v\nwant %+v", cfg, base)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".focusd.yaml")
	body := "focus_minutes: 50\nstorage: memory\ndesktop_notifications: true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FOCUSD_FOCUS_MINUTES", "45")

	cfg, err := Load(DefaultRuntimeConfig(), LoadOptions{Paths: []string{dir}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FocusMinutes != 45 {
		t.Fatalf("env should override file, got %d", cfg.FocusMinutes)
	}
	if cfg.Storage != storage.DriverMemory || !cfg.DesktopNotifications {
		t.Fatalf("file values not applied: %+v", cfg)
	}
}

func TestLoadWithoutConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(DefaultRuntimeConfig(), LoadOptions{Paths: []string{t.TempDir()}})
	if err != nil {
		t.Fatalf("missing config file should not fail: %v", err)
	}
	if cfg.FocusMinutes != 25 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("focus_minutes: [\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(DefaultRuntimeConfig(), LoadOptions{File: path}); err == nil {
		t.Fatal("expected parse error")
	}
}
