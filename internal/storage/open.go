package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DriverSQLite = "sqlite"
	DriverDiskv  = "diskv"
	DriverMemory = "memory"
)

type Options struct {
	Driver string
	// Path is the sqlite database file or the diskv base directory.
	Path string
}

func Open(opts Options) (KV, error) {
	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	switch driver {
	case "", DriverSQLite:
		if dir := filepath.Dir(opts.Path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
		}
		return OpenSQLite(opts.Path)
	case DriverDiskv:
		return OpenDisk(opts.Path)
	case DriverMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", opts.Driver)
	}
}
