// Package task defines planner tasks, their priorities and validation.
package task

// Task is a timed block on the day planner.
// Start and End are minutes since midnight, End exclusive.
type Task struct {
	ID        int64    `json:"id"`
	Text      string   `json:"text"`
	Start     int      `json:"start"`
	End       int      `json:"end"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
}

// Duration returns the task length in minutes.
func (t Task) Duration() int {
	return t.End - t.Start
}

// StartHour returns the hour of the day the task starts in.
func (t Task) StartHour() int {
	return t.Start / 60 //nolint:mnd // minutes per hour
}

// paletteSize is the number of block colours the planner cycles through.
const paletteSize = 13

// PaletteIndex maps a task ID onto the planner's fixed colour palette.
func PaletteIndex(id int64) int {
	i := int(id % paletteSize)
	if i < 0 {
		i += paletteSize
	}
	return i
}

// PaletteSize returns the number of entries PaletteIndex can return.
func PaletteSize() int { return paletteSize }
