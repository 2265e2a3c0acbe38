package task

import (
	"encoding/json"
	"strings"

	"github.com/twiced-technology-gmbh/chikita/internal/clierr"
)

// Priority is a task's difficulty level. The zero value means no priority.
type Priority string

// Priority levels.
const (
	None   Priority = ""
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
)

// Priorities lists the assignable levels in breakdown order (hardest first).
var Priorities = []Priority{High, Medium, Low}

// priorityAliases maps accepted spellings to levels. The planner form labels
// the levels Easy, Med and Hard.
var priorityAliases = map[string]Priority{
	"":       None,
	"none":   None,
	"null":   None,
	"-":      None,
	"low":    Low,
	"easy":   Low,
	"medium": Medium,
	"med":    Medium,
	"high":   High,
	"hard":   High,
}

// ParsePriority parses a priority name or alias, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	p, ok := priorityAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return None, clierr.Newf(clierr.InvalidPriority, "invalid priority %q", s).
			WithDetails(map[string]any{
				"priority": s,
				"allowed":  []string{"low", "medium", "high", "none"},
			})
	}
	return p, nil
}

// Valid reports whether p is one of the known levels.
func (p Priority) Valid() bool {
	switch p {
	case None, Low, Medium, High:
		return true
	}
	return false
}

// String returns the level name, "none" for the zero value.
func (p Priority) String() string {
	if p == None {
		return "none"
	}
	return string(p)
}

// Label returns the planner form label for the level.
func (p Priority) Label() string {
	switch p {
	case Low:
		return "Easy"
	case Medium:
		return "Med"
	case High:
		return "Hard"
	}
	return "None"
}

// Rank orders levels for sorting: high=3 … none=0.
func (p Priority) Rank() int {
	switch p {
	case High:
		return 3 //nolint:mnd // rank of the highest level
	case Medium:
		return 2 //nolint:mnd // rank of the middle level
	case Low:
		return 1
	}
	return 0
}

// MarshalJSON writes None as null so existing minTasks lists round-trip.
func (p Priority) MarshalJSON() ([]byte, error) {
	if p == None {
		return []byte("null"), nil
	}
	return json.Marshal(string(p))
}

// UnmarshalJSON accepts null, "" or any name ParsePriority accepts.
func (p *Priority) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = None
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePriority(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
