package kv

import "sync"

// Memory is an in-process Store. SetErr, when non-nil, makes every Set fail
// with it, which lets callers exercise write-failure paths.
type Memory struct {
	mu     sync.Mutex
	data   map[string]string
	closed bool
	SetErr error
	Writes int
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get implements Store.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements Store.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.SetErr != nil {
		return m.SetErr
	}
	m.data[key] = value
	m.Writes++
	return nil
}

// Close implements Store.
func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
