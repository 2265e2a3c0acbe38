package schedule

import (
	"slices"
	"strings"

	"github.com/twiced-technology-gmbh/chikita/internal/task"
)

// SortedByStart returns tasks ordered by start minute. Equal starts keep
// insertion order.
func (s *Store) SortedByStart() []task.Task {
	return SortByStart(s.List())
}

// ByPriority returns the tasks with priority p in chronological order.
func (s *Store) ByPriority(p task.Priority) []task.Task {
	return filterPriority(s.SortedByStart(), p)
}

// SortByStart stable-sorts tasks in place by start minute and returns them.
func SortByStart(tasks []task.Task) []task.Task {
	slices.SortStableFunc(tasks, func(a, b task.Task) int {
		return a.Start - b.Start
	})
	return tasks
}

func filterPriority(tasks []task.Task, p task.Priority) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Priority == p {
			out = append(out, t)
		}
	}
	return out
}

// Group is one priority's slice of the chronological timeline.
type Group struct {
	Priority task.Priority `json:"priority"`
	Tasks    []task.Task   `json:"tasks"`
}

// Groups returns the priority breakdown: high, medium and low always, in that
// order, then tasks without a priority when there are any.
func (s *Store) Groups() []Group {
	return GroupByPriority(s.SortedByStart())
}

// GroupByPriority splits tasks into the priority breakdown, keeping their
// order within each group.
func GroupByPriority(sorted []task.Task) []Group {
	groups := make([]Group, 0, len(task.Priorities)+1)
	for _, p := range task.Priorities {
		groups = append(groups, Group{Priority: p, Tasks: filterPriority(sorted, p)})
	}
	if none := filterPriority(sorted, task.None); len(none) > 0 {
		groups = append(groups, Group{Priority: task.None, Tasks: none})
	}
	return groups
}

// HourMarker returns the priority of the first task, in insertion order,
// starting within hour h. ok is false when no task starts in that hour.
func (s *Store) HourMarker(h int) (p task.Priority, ok bool) {
	for _, t := range s.tasks {
		if t.StartHour() == h {
			return t.Priority, true
		}
	}
	return task.None, false
}

// FilterOptions selects tasks; zero fields match everything.
type FilterOptions struct {
	Priorities []task.Priority
	Completed  *bool  // nil = any, true = done only, false = pending only
	Search     string // case-insensitive substring of the text
	From, To   int    // keep tasks overlapping [From, To) when To > From
}

// Filter returns tasks matching all criteria (AND), in insertion order.
func Filter(tasks []task.Task, opts FilterOptions) []task.Task {
	search := strings.ToLower(strings.TrimSpace(opts.Search))
	var out []task.Task
	for _, t := range tasks {
		if len(opts.Priorities) > 0 && !slices.Contains(opts.Priorities, t.Priority) {
			continue
		}
		if opts.Completed != nil && t.Completed != *opts.Completed {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Text), search) {
			continue
		}
		if opts.To > opts.From && (t.End <= opts.From || t.Start >= opts.To) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortBy orders tasks by field: "start" (default), "end", "id", "priority"
// (highest first, then start) or "text". The sort is stable.
func SortBy(tasks []task.Task, field string, reverse bool) {
	cmp := func(a, b task.Task) int {
		switch field {
		case "id":
			return compareInt64(a.ID, b.ID)
		case "end":
			return a.End - b.End
		case "priority":
			if d := b.Priority.Rank() - a.Priority.Rank(); d != 0 {
				return d
			}
			return a.Start - b.Start
		case "text":
			return strings.Compare(strings.ToLower(a.Text), strings.ToLower(b.Text))
		default:
			return a.Start - b.Start
		}
	}
	slices.SortStableFunc(tasks, func(a, b task.Task) int {
		if reverse {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
}

// SortFields lists the fields SortBy understands.
func SortFields() []string {
	return []string{"start", "end", "id", "priority", "text"}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
