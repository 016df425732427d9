package store

import (
	"fmt"
	"os"
)

const (
	dirMode    os.FileMode = 0o700
	secretMode os.FileMode = 0o600
	publicMode os.FileMode = 0o644
)

// EnsureDir creates dir (and parents) with owner-only permissions.
func EnsureDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("store: empty directory")
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("store: create %s: %w", dir, err)
	}
	return nil
}
