// Package timer implements the focus timer: a countdown that rings an alarm
// when it expires. Step is a pure transition function; Engine wraps it with
// tick-stream bookkeeping for an event loop.
package timer

import (
	"fmt"
	"math"
	"time"

	"github.com/twiced-technology-gmbh/chikita/internal/clierr"
)

// State is the coarse timer state derived from a Session.
type State int

const (
	Idle State = iota
	Running
	Alarming
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Alarming:
		return "alarming"
	default:
		return "idle"
	}
}

// Config holds the timer parameters.
type Config struct {
	Default         time.Duration   // duration restored by Reset
	TickInterval    time.Duration   // countdown resolution
	AlarmInterval   time.Duration   // delay between alarm repeats
	MaxAlarmRepeats int             // repeats before the alarm stops itself
	Presets         []time.Duration // quick-pick durations
}

// DefaultConfig returns the stock settings: 25 minutes, 1 s ticks, an alarm
// repeating every 1.5 s up to 20 times, presets of 25 minutes and 1 hour.
func DefaultConfig() Config {
	return Config{
		Default:         25 * time.Minute, //nolint:mnd // pomodoro length
		TickInterval:    time.Second,
		AlarmInterval:   1500 * time.Millisecond, //nolint:mnd // alarm repeat cadence
		MaxAlarmRepeats: 20,                      //nolint:mnd // alarm repeat limit
		Presets:         []time.Duration{25 * time.Minute, time.Hour},
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Default < time.Second:
		return fmt.Errorf("timer default must be at least 1s, got %s", c.Default)
	case c.TickInterval <= 0:
		return fmt.Errorf("timer tick interval must be positive, got %s", c.TickInterval)
	case c.AlarmInterval <= 0:
		return fmt.Errorf("alarm interval must be positive, got %s", c.AlarmInterval)
	case c.MaxAlarmRepeats < 1:
		return fmt.Errorf("alarm repeats must be at least 1, got %d", c.MaxAlarmRepeats)
	}
	for _, p := range c.Presets {
		if p < time.Minute {
			return fmt.Errorf("timer preset %s is shorter than a minute", p)
		}
	}
	return nil
}

// DefaultSeconds is Default in whole seconds.
func (c Config) DefaultSeconds() int {
	return int(c.Default / time.Second)
}

// Session is the timer's mutable state. It is never persisted.
type Session struct {
	Remaining        int  `json:"remaining_seconds"`
	Running          bool `json:"running"`
	AlarmRinging     bool `json:"alarm_ringing"`
	AlarmRepeatCount int  `json:"alarm_repeat_count"`
}

// NewSession returns an idle session loaded with the default duration.
func NewSession(cfg Config) Session {
	return Session{Remaining: cfg.DefaultSeconds()}
}

// State derives the coarse state.
func (s Session) State() State {
	switch {
	case s.AlarmRinging:
		return Alarming
	case s.Running:
		return Running
	default:
		return Idle
	}
}

// Kind identifies an event.
type Kind int

const (
	KindStart Kind = iota + 1
	KindPause
	KindToggle
	KindTick
	KindAlarmTick
	KindStopAlarm
	KindReset
	KindQuit
	KindSetDuration
)

var kindNames = map[Kind]string{
	KindStart:       "start",
	KindPause:       "pause",
	KindToggle:      "toggle",
	KindTick:        "tick",
	KindAlarmTick:   "alarm-tick",
	KindStopAlarm:   "stop-alarm",
	KindReset:       "reset",
	KindQuit:        "quit",
	KindSetDuration: "set-duration",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is a user intent or a scheduled tick. Gen tags ticks with the
// generation they were scheduled under; Step ignores it.
type Event struct {
	Kind    Kind
	Hours   int
	Minutes int
	Gen     uint64
}

func Start() Event     { return Event{Kind: KindStart} }
func Pause() Event     { return Event{Kind: KindPause} }
func Toggle() Event    { return Event{Kind: KindToggle} }
func StopAlarm() Event { return Event{Kind: KindStopAlarm} }
func Reset() Event     { return Event{Kind: KindReset} }
func Quit() Event      { return Event{Kind: KindQuit} }

// Tick is one countdown tick scheduled under gen.
func Tick(gen uint64) Event { return Event{Kind: KindTick, Gen: gen} }

// AlarmTick is one alarm repeat scheduled under gen.
func AlarmTick(gen uint64) Event { return Event{Kind: KindAlarmTick, Gen: gen} }

// SetDuration loads hours and minutes into the timer.
func SetDuration(hours, minutes int) Event {
	return Event{Kind: KindSetDuration, Hours: hours, Minutes: minutes}
}

// Preset converts a duration into a SetDuration event, dropping seconds.
func Preset(d time.Duration) Event {
	return SetDuration(int(d/time.Hour), int(d%time.Hour/time.Minute))
}

// Signal is a side effect requested by a transition.
type Signal int

const (
	SignalNone Signal = iota
	SignalSound
)

// Step applies ev to s. It never performs side effects; SignalSound asks the
// caller to play the alarm. On error s is returned unchanged.
func Step(cfg Config, s Session, ev Event) (Session, Signal, error) {
	switch ev.Kind {
	case KindStart:
		return start(s)

	case KindPause:
		s.Running = false
		return s, SignalNone, nil

	case KindToggle:
		if s.Running {
			s.Running = false
			return s, SignalNone, nil
		}
		return start(s)

	case KindTick:
		if !s.Running {
			return s, SignalNone, nil
		}
		s.Remaining = max(s.Remaining-1, 0)
		if s.Remaining > 0 {
			return s, SignalNone, nil
		}
		s.Running = false
		s.AlarmRinging = true
		s.AlarmRepeatCount = 0
		return s, SignalSound, nil

	case KindAlarmTick:
		if !s.AlarmRinging {
			return s, SignalNone, nil
		}
		s.AlarmRepeatCount++
		if s.AlarmRepeatCount >= cfg.MaxAlarmRepeats {
			s.AlarmRinging = false
			s.AlarmRepeatCount = 0
		}
		return s, SignalSound, nil

	case KindStopAlarm:
		s.AlarmRinging = false
		s.AlarmRepeatCount = 0
		return s, SignalNone, nil

	case KindReset:
		return Session{Remaining: cfg.DefaultSeconds()}, SignalNone, nil

	case KindQuit:
		return Session{}, SignalNone, nil

	case KindSetDuration:
		details := map[string]any{"hours": ev.Hours, "minutes": ev.Minutes}
		if ev.Hours < 0 || ev.Minutes < 0 || (ev.Hours == 0 && ev.Minutes == 0) {
			return s, SignalNone, clierr.Newf(clierr.NonPositiveDuration,
				"duration must be positive: %dh %dm", ev.Hours, ev.Minutes).WithDetails(details)
		}
		total, ok := durationSeconds(ev.Hours, ev.Minutes)
		if !ok {
			return s, SignalNone, clierr.Newf(clierr.InvalidInput,
				"duration too large: %dh %dm", ev.Hours, ev.Minutes).WithDetails(details)
		}
		return Session{Remaining: total}, SignalNone, nil
	}
	return s, SignalNone, clierr.Newf(clierr.InvalidInput, "unknown timer event %s", ev.Kind)
}

// durationSeconds converts non-negative hours and minutes to seconds,
// reporting false when the total does not fit in an int.
func durationSeconds(hours, minutes int) (int, bool) {
	const secsPerHour, secsPerMinute = 3600, 60
	if hours > math.MaxInt/secsPerHour || minutes > math.MaxInt/secsPerMinute {
		return 0, false
	}
	h, m := hours*secsPerHour, minutes*secsPerMinute
	if h > math.MaxInt-m {
		return 0, false
	}
	return h + m, true
}

func start(s Session) (Session, Signal, error) {
	if s.Running {
		return s, SignalNone, nil
	}
	if s.Remaining <= 0 {
		return s, SignalNone, clierr.New(clierr.NoTimeRemaining, "no time remaining; set a duration first")
	}
	s.Running = true
	s.AlarmRinging = false
	s.AlarmRepeatCount = 0
	return s, SignalNone, nil
}
