package timer

import (
	"time"

	"github.com/twiced-technology-gmbh/chikita/internal/logx"
)

// Schedule asks the event loop to deliver a tick event after a delay. The
// zero Schedule means nothing needs scheduling.
type Schedule struct {
	Event Event
	After time.Duration
}

// Pending reports whether s carries a tick to schedule.
func (s Schedule) Pending() bool { return s.Event.Kind != 0 }

// Engine owns one Session and the tick stream that drives it.
//
// Every transition that starts, stops or switches a tick stream bumps the
// generation. Ticks carry the generation they were scheduled under and
// stale ones are dropped, so at most one countdown or alarm stream is live.
// Engine is not safe for concurrent use.
type Engine struct {
	cfg     Config
	session Session
	gen     uint64
	sounder Sounder
	log     logx.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSounder sets the audio channel for alarm signals.
func WithSounder(s Sounder) EngineOption {
	return func(e *Engine) {
		if s != nil {
			e.sounder = s
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l logx.Logger) EngineOption {
	return func(e *Engine) { e.log = l }
}

// NewEngine returns an idle engine loaded with cfg.Default.
func NewEngine(cfg Config, opts ...EngineOption) *Engine {
	e := &Engine{cfg: cfg, session: NewSession(cfg), sounder: Silent{}, log: logx.Nop()}
	for _, o := range opts {
		o(e)
	}
	e.log = e.log.With(logx.String("component", "timer"))
	return e
}

// Session returns a snapshot of the current session.
func (e *Engine) Session() Session { return e.session }

// State returns the coarse state.
func (e *Engine) State() State { return e.session.State() }

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Generation returns the current tick-stream generation.
func (e *Engine) Generation() uint64 { return e.gen }

// Dispatch applies ev and returns the next tick to schedule, if any.
// Stale ticks are ignored without error.
func (e *Engine) Dispatch(ev Event) (Schedule, error) {
	isTick := ev.Kind == KindTick || ev.Kind == KindAlarmTick
	if isTick && ev.Gen != e.gen {
		e.log.Debug("dropping stale tick", logx.String("event", ev.Kind.String()),
			logx.Any("gen", ev.Gen), logx.Any("current", e.gen))
		return Schedule{}, nil
	}

	before := e.session
	next, sig, err := Step(e.cfg, before, ev)
	if err != nil {
		return Schedule{}, err
	}
	e.session = next

	if sig == SignalSound {
		e.sound()
	}

	restarted := before.State() != next.State()
	switch ev.Kind {
	case KindReset, KindQuit, KindSetDuration:
		restarted = true
	}
	if restarted {
		e.gen++
		e.log.Debug("timer transition", logx.String("event", ev.Kind.String()),
			logx.String("from", before.State().String()), logx.String("to", next.State().String()),
			logx.Int("remaining", next.Remaining))
	} else if !isTick {
		// Intents that change nothing (start while running) must not fork a
		// second stream.
		return Schedule{}, nil
	}
	return e.next(), nil
}

// next returns the tick that keeps the current state's stream alive.
func (e *Engine) next() Schedule {
	switch e.session.State() {
	case Running:
		return Schedule{Event: Tick(e.gen), After: e.cfg.TickInterval}
	case Alarming:
		return Schedule{Event: AlarmTick(e.gen), After: e.cfg.AlarmInterval}
	}
	return Schedule{}
}

func (e *Engine) sound() {
	if err := e.sounder.Sound(); err != nil {
		e.log.Debug("alarm sound failed", logx.Err(err))
	}
}
