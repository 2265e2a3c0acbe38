// Package schedule owns the day's task list: mutations, persistence into a
// key-value store, and the derived views the planner and overview render.
package schedule

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/chikita/internal/kv"
	"github.com/twiced-technology-gmbh/chikita/internal/logx"
	"github.com/twiced-technology-gmbh/chikita/internal/task"
)

// DefaultKey is the store key holding the serialized task array.
const DefaultKey = "minTasks"

// Store is the single owner of the task collection.
//
// Every successful mutation updates memory first and then writes the whole
// collection to the key-value store. A failed write is logged and kept in
// Err; it never undoes the mutation. Store is not safe for concurrent use:
// callers drive it from one goroutine (the CLI command or the TUI loop).
type Store struct {
	kv     kv.Store
	key    string
	now    func() time.Time
	log    logx.Logger
	tasks  []task.Task
	lastID int64
	err    error
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the store key (default DefaultKey).
func WithKey(key string) Option {
	return func(s *Store) {
		if strings.TrimSpace(key) != "" {
			s.key = key
		}
	}
}

// WithClock sets the clock used for ID assignment.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger for persistence warnings.
func WithLogger(l logx.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New loads the task list from store. It never fails: an absent key, an
// unreadable store or an unparsable value all start an empty list.
func New(store kv.Store, opts ...Option) *Store {
	s := &Store{kv: store, key: DefaultKey, now: time.Now, log: logx.Nop()}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With(logx.String("component", "schedule"), logx.String("key", s.key))

	tasks, err := s.load()
	if err != nil {
		s.log.Warn("starting with an empty task list", logx.Err(err))
	}
	s.replace(tasks)
	return s
}

// Reload re-reads the store after an external write. A read error keeps the
// current list and is returned; an absent or unparsable value empties it,
// exactly as on construction.
func (s *Store) Reload() error {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		return fmt.Errorf("reloading tasks: %w", err)
	}
	tasks, err := s.decode(raw, ok)
	if err != nil {
		s.log.Warn("stored task list unreadable, clearing", logx.Err(err))
	}
	s.replace(tasks)
	return nil
}

// Err returns the most recent persistence error, or nil after a good write.
func (s *Store) Err() error { return s.err }

// Add appends a new task. Text is trimmed.
func (s *Store) Add(text string, start, end int, p task.Priority) (task.Task, error) {
	text = strings.TrimSpace(text)
	if err := task.ValidateFields(text, start, end, p); err != nil {
		return task.Task{}, err
	}
	t := task.Task{
		ID:       s.nextID(),
		Text:     text,
		Start:    start,
		End:      end,
		Priority: p,
	}
	s.tasks = append(s.tasks, t)
	s.lastID = t.ID
	s.persist("add", t.ID)
	return t, nil
}

// Edit replaces a task's text, range and priority, keeping ID and completion.
func (s *Store) Edit(id int64, text string, start, end int, p task.Priority) (task.Task, error) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, task.NotFound(id)
	}
	text = strings.TrimSpace(text)
	if err := task.ValidateFields(text, start, end, p); err != nil {
		return task.Task{}, err
	}
	t := &s.tasks[i]
	t.Text, t.Start, t.End, t.Priority = text, start, end, p
	s.persist("edit", id)
	return *t, nil
}

// Delete removes a task permanently.
func (s *Store) Delete(id int64) error {
	i := s.index(id)
	if i < 0 {
		return task.NotFound(id)
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.persist("delete", id)
	return nil
}

// Toggle flips a task's completed flag.
func (s *Store) Toggle(id int64) (task.Task, error) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, task.NotFound(id)
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.persist("toggle", id)
	return s.tasks[i], nil
}

// Get returns the task with the given ID.
func (s *Store) Get(id int64) (task.Task, error) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, task.NotFound(id)
	}
	return s.tasks[i], nil
}

// List returns a copy of all tasks in insertion order.
func (s *Store) List() []task.Task {
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// nextID returns a creation-time ID that is strictly greater than any ID
// already handed out, even when the clock stalls or goes backwards.
func (s *Store) nextID() int64 {
	return max(s.now().UnixMilli(), s.lastID+1)
}

func (s *Store) index(id int64) int {
	return slices.IndexFunc(s.tasks, func(t task.Task) bool { return t.ID == id })
}

func (s *Store) replace(tasks []task.Task) {
	s.tasks = tasks
	if s.tasks == nil {
		s.tasks = []task.Task{}
	}
	for _, t := range s.tasks {
		s.lastID = max(s.lastID, t.ID)
	}
}

func (s *Store) load() ([]task.Task, error) {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("reading tasks: %w", err)
	}
	return s.decode(raw, ok)
}

func (s *Store) decode(raw string, ok bool) ([]task.Task, error) {
	if !ok || strings.TrimSpace(raw) == "" || strings.TrimSpace(raw) == "null" {
		return nil, nil
	}
	tasks, skipped, err := task.Decode(raw)
	if err != nil {
		return nil, err
	}
	kept, problems := task.Sanitize(tasks)
	for _, p := range append(skipped, problems...) {
		s.log.Warn("dropping invalid stored task", logx.Err(p))
	}
	return kept, nil
}

func (s *Store) persist(op string, id int64) {
	raw, err := task.Encode(s.tasks)
	if err == nil {
		err = s.kv.Set(s.key, raw)
	}
	s.err = err
	if err != nil {
		s.log.Error("persisting tasks failed", logx.String("op", op), logx.Int64("id", id), logx.Err(err))
		return
	}
	s.log.Debug("tasks persisted", logx.String("op", op), logx.Int64("id", id), logx.Int("count", len(s.tasks)))
}
