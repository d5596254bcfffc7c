package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/sandeepkv93/focusd/internal/storage"
)

const EnvPrefix = "FOCUSD"

type RuntimeConfig struct {
	FocusMinutes         int
	ShortBreakMinutes    int
	LongBreakMinutes     int
	AutoSwitchSeconds    int
	DailyGoalMinutes     int
	Storage              string
	DataDir              string
	DesktopNotifications bool
	Bell                 bool
	LogFile              string
}

func DefaultRuntimeConfig() RuntimeConfig {
	dataDir := ".focusd"
	if home, err := homedir.Dir(); err == nil {
		dataDir = filepath.Join(home, ".focusd")
	}
	return RuntimeConfig{
		FocusMinutes:         25,
		ShortBreakMinutes:    5,
		LongBreakMinutes:     15,
		AutoSwitchSeconds:    2,
		DailyGoalMinutes:     120,
		Storage:              storage.DriverSQLite,
		DataDir:              dataDir,
		DesktopNotifications: false,
		Bell:                 true,
	}
}

// LoadOptions controls where Load looks for a .focusd.yaml file. File, when
// set, names the config file directly.
type LoadOptions struct {
	File  string
	Paths []string
}

// Load layers an optional .focusd.yaml and FOCUSD_* environment variables over
// base. Values that fail to parse keep the value from base.
func Load(base RuntimeConfig, opts LoadOptions) (RuntimeConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(".focusd")
		v.SetConfigType("yaml")
		if override := os.Getenv(EnvPrefix + "_CONFIG_PATH"); override != "" {
			v.AddConfigPath(override)
		}
		for _, p := range opts.Paths {
			v.AddConfigPath(p)
		}
		v.AddConfigPath("./")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return base, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}
	return fromViper(v, base), nil
}

// RuntimeConfigFromEnv applies only the FOCUSD_* environment overrides.
func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return fromViper(v, base)
}

func fromViper(v *viper.Viper, base RuntimeConfig) RuntimeConfig {
	cfg := base
	if n, ok := getInt(v, "focus_minutes"); ok && n > 0 {
		cfg.FocusMinutes = n
	}
	if n, ok := getInt(v, "short_break_minutes"); ok && n > 0 {
		cfg.ShortBreakMinutes = n
	}
	if n, ok := getInt(v, "long_break_minutes"); ok && n > 0 {
		cfg.LongBreakMinutes = n
	}
	if n, ok := getInt(v, "auto_switch_seconds"); ok && n >= 0 {
		cfg.AutoSwitchSeconds = n
	}
	if n, ok := getInt(v, "daily_goal_minutes"); ok && n > 0 {
		cfg.DailyGoalMinutes = n
	}
	if s := strings.ToLower(getString(v, "storage")); s != "" {
		switch s {
		case storage.DriverSQLite, storage.DriverDiskv, storage.DriverMemory:
			cfg.Storage = s
		}
	}
	if s := getString(v, "data_dir"); s != "" {
		if expanded, err := homedir.Expand(s); err == nil {
			cfg.DataDir = expanded
		}
	}
	if b, ok := getBool(v, "desktop_notifications"); ok {
		cfg.DesktopNotifications = b
	}
	if b, ok := getBool(v, "bell"); ok {
		cfg.Bell = b
	}
	if s := getString(v, "log_file"); s != "" {
		if expanded, err := homedir.Expand(s); err == nil {
			cfg.LogFile = expanded
		}
	}
	return cfg
}

func (c RuntimeConfig) AutoSwitchDelay() time.Duration {
	return time.Duration(c.AutoSwitchSeconds) * time.Second
}

// StorageOptions maps the configured driver to a path under DataDir.
func (c RuntimeConfig) StorageOptions() storage.Options {
	switch c.Storage {
	case storage.DriverDiskv:
		return storage.Options{Driver: storage.DriverDiskv, Path: filepath.Join(c.DataDir, "kv")}
	case storage.DriverMemory:
		return storage.Options{Driver: storage.DriverMemory}
	default:
		return storage.Options{Driver: storage.DriverSQLite, Path: filepath.Join(c.DataDir, "focusd.db")}
	}
}

func getString(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}

func getInt(v *viper.Viper, key string) (int, bool) {
	raw := getString(v, key)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func getBool(v *viper.Viper, key string) (bool, bool) {
	switch strings.ToLower(getString(v, key)) {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
