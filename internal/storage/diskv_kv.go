package storage

import (
	"context"
	"errors"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// DiskKV keeps one file per key under a base directory.
type DiskKV struct {
	d *diskv.Diskv
}

func OpenDisk(basePath string) (*DiskKV, error) {
	if basePath == "" {
		return nil, errors.New("storage: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, err
	}
	return &DiskKV{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024,
	})}, nil
}

func (k *DiskKV) GetItem(_ context.Context, key string) (string, error) {
	val, err := k.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(val), nil
}

func (k *DiskKV) SetItem(_ context.Context, key, value string) error {
	return k.d.Write(key, []byte(value))
}

func (k *DiskKV) RemoveItem(_ context.Context, key string) error {
	if !k.d.Has(key) {
		return nil
	}
	return k.d.Erase(key)
}

func (k *DiskKV) Close() error {
	return nil
}
