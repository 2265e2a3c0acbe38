// Package clock converts between minutes since midnight and the clock
// strings used on the command line and in the planner.
package clock

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinutesPerHour is the number of minutes in an hour.
	MinutesPerHour = 60
	// EndOfDay is the last valid minute boundary (24:00).
	EndOfDay = 24 * MinutesPerHour
)

// ToMinutes converts an hour and minute into minutes since midnight.
func ToMinutes(h, m int) int {
	return h*MinutesPerHour + m
}

// FromMinutes splits minutes since midnight into hour and minute.
func FromMinutes(total int) (h, m int) {
	return total / MinutesPerHour, total % MinutesPerHour
}

// Parse parses a clock string into minutes since midnight.
//
// Accepted forms: "9", "9:30", "09:30", "21:30", "24:00", "9pm", "9:30pm",
// "9:30 PM", "12am". 24:00 is the only value past 23:59.
func Parse(s string) (int, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return 0, fmt.Errorf("invalid time %q: empty", s)
	}

	suffix := ""
	for _, sfx := range []string{"am", "pm"} {
		if strings.HasSuffix(in, sfx) {
			suffix = sfx
			in = strings.TrimSpace(strings.TrimSuffix(in, sfx))
			break
		}
	}

	hourPart, minPart, hasMin := strings.Cut(in, ":")
	h, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected H:MM", s)
	}
	m := 0
	if hasMin {
		if len(minPart) != 2 { //nolint:mnd // two-digit minutes
			return 0, fmt.Errorf("invalid time %q: minutes must be two digits", s)
		}
		m, err = strconv.Atoi(minPart)
		if err != nil {
			return 0, fmt.Errorf("invalid time %q: expected H:MM", s)
		}
	}
	if m < 0 || m >= MinutesPerHour {
		return 0, fmt.Errorf("invalid time %q: minutes out of range", s)
	}

	switch suffix {
	case "am", "pm":
		if h < 1 || h > 12 {
			return 0, fmt.Errorf("invalid time %q: hour must be 1-12 with am/pm", s)
		}
		h %= 12
		if suffix == "pm" {
			h += 12
		}
	default:
		if h < 0 || h > 24 || (h == 24 && m != 0) {
			return 0, fmt.Errorf("invalid time %q: out of range", s)
		}
	}

	return ToMinutes(h, m), nil
}

// Format renders minutes since midnight as a 12-hour clock, e.g. "9:05 AM".
// 1440 renders as "12:00 AM".
func Format(total int) string {
	h, m := FromMinutes(total)
	ampm := "AM"
	if h%24 >= 12 {
		ampm = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, m, ampm)
}

// Format24 renders minutes since midnight as "HH:MM".
func Format24(total int) string {
	h, m := FromMinutes(total)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// HourLabel renders an hour of the day as the planner's gutter label.
func HourLabel(h int) string {
	switch {
	case h == 0:
		return "12 AM"
	case h < 12:
		return strconv.Itoa(h) + " AM"
	case h == 12:
		return "12 PM"
	default:
		return strconv.Itoa(h-12) + " PM"
	}
}

// Step moves total by delta minutes, clamped to [0, EndOfDay].
func Step(total, delta int) int {
	return min(max(total+delta, 0), EndOfDay)
}

// Span renders a duration in minutes as "1h 30m", "45m" or "2h".
func Span(minutes int) string {
	h, m := FromMinutes(minutes)
	switch {
	case h == 0:
		return strconv.Itoa(m) + "m"
	case m == 0:
		return strconv.Itoa(h) + "h"
	default:
		return strconv.Itoa(h) + "h " + strconv.Itoa(m) + "m"
	}
}
