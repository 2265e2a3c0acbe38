// Package filelock serializes writers of the planner's store file across
// processes, so a CLI edit and a running TUI never interleave a write.
package filelock

import (
	"fmt"
	"os"
)

const lockFileMode = 0o600

// Lock is a held advisory lock on a sidecar lock file.
type Lock struct {
	f *os.File
}

// Acquire blocks until it holds the exclusive lock on path, creating the
// lock file if needed. Callers must Release the lock.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock path derived from store path
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	return &Lock{f: f}, nil
}

// Release unlocks and closes the lock file. Releasing twice is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	unlockErr := unlockFile(l.f)
	closeErr := l.f.Close()
	l.f = nil
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}

// With runs fn while holding the lock on path.
func With(path string, fn func() error) error {
	l, err := Acquire(path)
	if err != nil {
		return err
	}
	defer l.Release() //nolint:errcheck // best-effort unlock
	return fn()
}
