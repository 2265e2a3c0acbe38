package task

import (
	"strings"

	"github.com/twiced-technology-gmbh/chikita/internal/clierr"
	"github.com/twiced-technology-gmbh/chikita/internal/clock"
)

// ValidateText checks that a task label is not blank.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return clierr.New(clierr.EmptyText, "task text must not be empty")
	}
	return nil
}

// ValidateRange checks 0 <= start < end <= 24:00.
func ValidateRange(start, end int) error {
	if start < 0 || end > clock.EndOfDay {
		return clierr.Newf(clierr.InvalidRange,
			"time range %d-%d is outside the day (0-%d)", start, end, clock.EndOfDay).
			WithDetails(map[string]any{"start": start, "end": end})
	}
	if end <= start {
		return clierr.Newf(clierr.InvalidRange,
			"end %s must be after start %s", clock.Format24(end), clock.Format24(start)).
			WithDetails(map[string]any{"start": start, "end": end})
	}
	return nil
}

// ValidatePriority checks that p is a known level.
func ValidatePriority(p Priority) error {
	if !p.Valid() {
		return clierr.Newf(clierr.InvalidPriority, "invalid priority %q", string(p)).
			WithDetails(map[string]any{"priority": string(p)})
	}
	return nil
}

// ValidateFields runs every field check in the order users see them fail:
// text, then range, then priority.
func ValidateFields(text string, start, end int, p Priority) error {
	if err := ValidateText(text); err != nil {
		return err
	}
	if err := ValidateRange(start, end); err != nil {
		return err
	}
	return ValidatePriority(p)
}

// Validate checks a whole task.
func Validate(t Task) error {
	return ValidateFields(t.Text, t.Start, t.End, t.Priority)
}

// ValidateTaskID returns an error for unparsable task ID input.
func ValidateTaskID(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", input).
		WithDetails(map[string]any{"input": input})
}

// NotFound returns the error for an unknown task ID.
func NotFound(id int64) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task not found: #%d", id).
		WithDetails(map[string]any{"id": id})
}
