// Package kv provides the string key-value stores the planner persists its
// task list into.
package kv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/twiced-technology-gmbh/chikita/internal/logx"
)

// Driver names accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// Store is a string key-value store. Get reports ok=false for a missing key.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Close() error
}

// Drivers lists the driver names Open accepts.
func Drivers() []string {
	return []string{DriverFile, DriverSQLite, DriverMemory}
}

// Open opens the store for driver at path. The memory driver ignores path.
func Open(driver, path string, log logx.Logger) (Store, error) {
	log = log.With(logx.String("driver", driver))
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverFile, "":
		s, err := OpenFile(path, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverSQLite:
		s, err := OpenSQLite(path, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q (want one of %s)",
			driver, strings.Join(Drivers(), ", "))
	}
}
