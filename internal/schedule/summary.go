package schedule

import (
	"github.com/twiced-technology-gmbh/chikita/internal/task"
)

// PriorityCount holds counts for one priority level.
type PriorityCount struct {
	Priority  task.Priority `json:"priority"`
	Count     int           `json:"count"`
	Completed int           `json:"completed"`
}

// Overview is the aggregate view shown above the schedule timeline.
type Overview struct {
	Total          int             `json:"total"`
	Completed      int             `json:"completed"`
	Pending        int             `json:"pending"`
	PlannedMinutes int             `json:"planned_minutes"`
	FirstStart     int             `json:"first_start,omitempty"`
	LastEnd        int             `json:"last_end,omitempty"`
	Priorities     []PriorityCount `json:"priorities"`
}

// Summary computes the overview. Planned minutes sum task lengths, so
// overlapping tasks count twice.
func (s *Store) Summary() Overview {
	return Summarize(s.tasks)
}

// Summarize computes an Overview for any task slice.
func Summarize(tasks []task.Task) Overview {
	ov := Overview{Total: len(tasks)}
	counts := make(map[task.Priority]*PriorityCount, len(task.Priorities)+1)
	order := append(append([]task.Priority{}, task.Priorities...), task.None)
	for _, p := range order {
		counts[p] = &PriorityCount{Priority: p}
	}

	for i, t := range tasks {
		if t.Completed {
			ov.Completed++
		}
		ov.PlannedMinutes += t.Duration()
		if i == 0 || t.Start < ov.FirstStart {
			ov.FirstStart = t.Start
		}
		ov.LastEnd = max(ov.LastEnd, t.End)
		if pc, ok := counts[t.Priority]; ok {
			pc.Count++
			if t.Completed {
				pc.Completed++
			}
		}
	}
	ov.Pending = ov.Total - ov.Completed

	ov.Priorities = make([]PriorityCount, 0, len(order))
	for _, p := range order {
		ov.Priorities = append(ov.Priorities, *counts[p])
	}
	return ov
}
