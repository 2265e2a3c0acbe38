package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/twiced-technology-gmbh/chikita/internal/clock"
	"github.com/twiced-technology-gmbh/chikita/internal/schedule"
	"github.com/twiced-technology-gmbh/chikita/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	titleStyle  = lipgloss.NewStyle().Bold(true)

	// Priority colors matching the planner's dots: easy green, med yellow, hard red.
	priorityStyles = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		"none":   lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	actionStyles = map[string]lipgloss.Style{
		"add":    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		"edit":   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		"toggle": lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		"delete": lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// DisableColor strips all styling from table output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	titleStyle = lipgloss.NewStyle()
	priorityStyles = map[string]lipgloss.Style{}
	actionStyles = map[string]lipgloss.Style{}
}

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	idW, timeW, lenW, prioW := 4, 6, 8, 10
	for _, t := range tasks {
		idW = max(idW, len(strconv.FormatInt(t.ID, 10))+pad)
		timeW = max(timeW, len(timeRange(t))+pad)
		lenW = max(lenW, len(clock.Span(t.Duration()))+pad)
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-4s %s",
		idW, "ID", timeW, "TIME", lenW, "LENGTH", prioW, "PRIORITY", "DONE", "TEXT")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, t := range tasks {
		row := fmt.Sprintf("%-*d %-*s %-*s %s %s %s",
			idW, t.ID,
			timeW, timeRange(t),
			lenW, clock.Span(t.Duration()),
			padRight(priorityValue(t.Priority), prioW),
			padRight(doneMark(t.Completed), 4), //nolint:mnd // DONE column width
			truncate(t.Text, 60))               //nolint:mnd // max text column width
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, t task.Task) {
	titleLine := fmt.Sprintf("Task #%d: %s", t.ID, t.Text)
	fmt.Fprintln(w, titleStyle.Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(titleLine)))

	printField(w, "Start", clock.Format(t.Start))
	printField(w, "End", clock.Format(t.End))
	printField(w, "Length", clock.Span(t.Duration()))
	printField(w, "Priority", priorityValue(t.Priority)+dimStyle.Render(" ("+t.Priority.Label()+")"))
	status := "pending"
	if t.Completed {
		status = doneStyle.Render("completed")
	}
	printField(w, "Status", status)
}

// ScheduleTable renders the schedule overview: summary, chronological
// timeline and the priority breakdown.
func ScheduleTable(w io.Writer, s Schedule) {
	ov := s.Summary
	fmt.Fprintln(w, titleStyle.Render("Schedule"))
	if ov.Total == 0 {
		fmt.Fprintln(w, dimStyle.Render("Nothing planned yet."))
		return
	}
	fmt.Fprintf(w, "%d tasks, %d done, %s planned (%s to %s)\n\n",
		ov.Total, ov.Completed, clock.Span(ov.PlannedMinutes),
		clock.Format(ov.FirstStart), clock.Format(ov.LastEnd))

	fmt.Fprintln(w, headerStyle.Render("TIMELINE"))
	for _, t := range s.Timeline {
		fmt.Fprintf(w, "  %s %s %s %s\n",
			padRight(timeRange(t), 22), //nolint:mnd // widest 12h range
			doneMark(t.Completed),
			padRight(priorityValue(t.Priority), 8), //nolint:mnd // priority column width
			t.Text)
	}

	fmt.Fprintln(w)
	GroupedTable(w, s.Groups)
}

// GroupedTable renders tasks grouped by priority.
func GroupedTable(w io.Writer, groups []schedule.Group) {
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := fmt.Sprintf("%s (%d)", strings.ToUpper(g.Priority.String()), len(g.Tasks))
		fmt.Fprintln(w, styledValue(g.Priority.String(), priorityStyles, title))
		if len(g.Tasks) == 0 {
			fmt.Fprintln(w, dimStyle.Render("  --"))
			continue
		}
		for _, t := range g.Tasks {
			fmt.Fprintf(w, "  %s %s %s\n", doneMark(t.Completed), padRight(timeRange(t), 22), t.Text) //nolint:mnd // widest 12h range
		}
	}
}

// ActivityTable renders activity log entries.
func ActivityTable(w io.Writer, entries []schedule.Activity) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}
	header := fmt.Sprintf("%-19s %-8s %-15s %s", "TIME", "ACTION", "TASK", "DETAIL")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, e := range entries {
		id := dimStyle.Render("--")
		if e.TaskID != 0 {
			id = "#" + strconv.FormatInt(e.TaskID, 10)
		}
		row := fmt.Sprintf("%s %s %s %s",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			padRight(styledValue(e.Action, actionStyles, e.Action), 8), //nolint:mnd // action column width
			padRight(id, 15), //nolint:mnd // id column width
			e.Detail)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-10s %s\n", label+":", value)
}

func timeRange(t task.Task) string {
	return clock.Format(t.Start) + " - " + clock.Format(t.End)
}

func doneMark(done bool) string {
	if done {
		return doneStyle.Render("[x]")
	}
	return "[ ]"
}

func priorityValue(p task.Priority) string {
	return styledValue(p.String(), priorityStyles, p.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// styledValue renders text with the style registered for key, or returns text unchanged.
func styledValue(key string, styles map[string]lipgloss.Style, text string) string {
	if st, ok := styles[key]; ok {
		return st.Render(text)
	}
	return text
}
