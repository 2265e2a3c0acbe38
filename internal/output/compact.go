package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/chikita/internal/clock"
	"github.com/twiced-technology-gmbh/chikita/internal/schedule"
	"github.com/twiced-technology-gmbh/chikita/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}
	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task in compact format.
func TaskDetailCompact(w io.Writer, t task.Task) {
	fmt.Fprintln(w, formatTaskLine(t)+" len:"+strings.ReplaceAll(clock.Span(t.Duration()), " ", ""))
}

// ScheduleCompact renders the schedule overview in compact format.
func ScheduleCompact(w io.Writer, s Schedule) {
	ov := s.Summary
	fmt.Fprintf(w, "schedule (%d tasks, %d done, %s planned)\n",
		ov.Total, ov.Completed, clock.Span(ov.PlannedMinutes))
	for _, t := range s.Timeline {
		fmt.Fprintln(w, "  "+formatTaskLine(t))
	}

	parts := make([]string, 0, len(ov.Priorities))
	for _, pc := range ov.Priorities {
		if pc.Priority == task.None && pc.Count == 0 {
			continue
		}
		parts = append(parts, pc.Priority.String()+"="+strconv.Itoa(pc.Count))
	}
	fmt.Fprintln(w, "Priority: "+strings.Join(parts, " "))
}

// ActivityCompact renders activity entries one per line.
func ActivityCompact(w io.Writer, entries []schedule.Activity) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}
	for _, e := range entries {
		line := e.Timestamp.Local().Format("2006-01-02T15:04:05") + " " + e.Action
		if e.TaskID != 0 {
			line += " #" + strconv.FormatInt(e.TaskID, 10)
		}
		if e.Detail != "" {
			line += " " + e.Detail
		}
		fmt.Fprintln(w, line)
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t task.Task) string {
	mark := "[ ]"
	if t.Completed {
		mark = "[x]"
	}
	return "#" + strconv.FormatInt(t.ID, 10) + " " + mark +
		" " + clock.Format24(t.Start) + "-" + clock.Format24(t.End) +
		" [" + t.Priority.String() + "] " + t.Text
}
