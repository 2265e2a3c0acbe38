// Package watcher notices when another process rewrites the task store and
// reports it once per burst of file events.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/twiced-technology-gmbh/chikita/internal/logx"
)

// DefaultDebounce is how long the directory must stay quiet before the
// callback fires. A save is a temp write, a rename and a lock touch.
const DefaultDebounce = 100 * time.Millisecond

const relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher watches directories and invokes a callback after changes settle.
type Watcher struct {
	fsw      *fsnotify.Watcher
	log      logx.Logger
	delay    time.Duration
	match    func(path string) bool
	onChange func()

	mu      sync.Mutex
	pending *time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithFilter restricts notifications to events whose path satisfies match.
func WithFilter(match func(path string) bool) Option {
	return func(w *Watcher) { w.match = match }
}

// WithLogger sets where watch errors are reported.
func WithLogger(l logx.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

// Files matches events on the given base names in any watched directory.
func Files(names ...string) func(path string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[filepath.Base(n)] = true
	}
	return func(path string) bool { return set[filepath.Base(path)] }
}

// New creates a Watcher on dirs. onChange runs on its own goroutine.
func New(dirs []string, onChange func(), opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, d := range dirs {
		if err := fsw.Add(d); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fsw:      fsw,
		log:      logx.Nop(),
		delay:    DefaultDebounce,
		onChange: onChange,
	}
	for _, o := range opts {
		o(w)
	}
	return w, nil
}

// ForStore watches the directory holding the store file at path. Saves
// replace the file by rename, so the file itself cannot be watched. Only
// the store file and its SQLite write-ahead log count as changes.
func ForStore(path string, onChange func(), opts ...Option) (*Watcher, error) {
	name := filepath.Base(path)
	opts = append([]Option{WithFilter(Files(name, name+"-wal"))}, opts...)
	return New([]string{filepath.Dir(path)}, onChange, opts...)
}

// Run handles events until ctx is canceled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	defer w.cancelPending()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				w.schedule()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Debug("watch error", logx.Err(err))
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&relevantOps == 0 {
		return false
	}
	return w.match == nil || w.match(ev.Name)
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.delay, w.onChange)
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
	}
}
