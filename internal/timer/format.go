package timer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format renders seconds the way the timer face shows them: "25m 0s", or
// "1h 2m 3s" once an hour or more remains.
func Format(seconds int) string {
	seconds = max(seconds, 0)
	h := seconds / 3600      //nolint:mnd // seconds per hour
	m := seconds % 3600 / 60 //nolint:mnd // seconds per minute
	s := seconds % 60        //nolint:mnd // seconds per minute
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}

// FormatDuration renders a preset label: "25 Min", "1 Hour", "1h 30m".
func FormatDuration(d time.Duration) string {
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	switch {
	case h == 0:
		return fmt.Sprintf("%d Min", m)
	case m == 0 && h == 1:
		return "1 Hour"
	case m == 0:
		return fmt.Sprintf("%d Hours", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// ParseDuration accepts Go durations ("25m", "1h30m") and bare minute counts ("45").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Minute, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}
