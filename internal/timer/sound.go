package timer

import (
	"io"
	"sync"
)

// Sounder plays one alarm beep. Errors are reported but never retried.
type Sounder interface {
	Sound() error
}

// SounderFunc adapts a function to Sounder.
type SounderFunc func() error

// Sound implements Sounder.
func (f SounderFunc) Sound() error { return f() }

// Silent discards alarm signals.
type Silent struct{}

// Sound implements Sounder.
func (Silent) Sound() error { return nil }

// Bell rings the terminal bell by writing BEL to W.
type Bell struct {
	mu sync.Mutex
	W  io.Writer
}

// NewBell returns a Bell writing to w.
func NewBell(w io.Writer) *Bell { return &Bell{W: w} }

// Sound implements Sounder.
func (b *Bell) Sound() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.W == nil {
		return nil
	}
	_, err := io.WriteString(b.W, "\a")
	return err
}
