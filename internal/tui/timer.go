package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/chikita/internal/logx"
	"github.com/twiced-technology-gmbh/chikita/internal/timer"
)

// dispatch feeds ev to the engine and schedules the follow-up tick.
func (a *App) dispatch(ev timer.Event) tea.Cmd {
	sched, err := a.engine.Dispatch(ev)
	if err != nil {
		a.err = err
		a.log.Debug("timer event rejected", logx.String("event", ev.Kind.String()), logx.Err(err))
		return nil
	}
	if ev.Kind != timer.KindTick && ev.Kind != timer.KindAlarmTick {
		a.err = nil
	}
	return tickCmd(sched)
}

func (a *App) handleTimerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.StartStop):
		if a.engine.State() == timer.Alarming {
			return a.dispatch(timer.StopAlarm())
		}
		return a.dispatch(timer.Toggle())
	case key.Matches(msg, a.keys.Reset):
		return a.dispatch(timer.Reset())
	case key.Matches(msg, a.keys.Stop):
		return a.dispatch(timer.Quit())
	case key.Matches(msg, a.keys.Preset):
		presets := a.engine.Config().Presets
		i, _ := strconv.Atoi(msg.String())
		if i < 1 || i > len(presets) {
			return nil
		}
		return a.dispatch(timer.Preset(presets[i-1]))
	case key.Matches(msg, a.keys.Custom):
		a.custom = newCustomTimer()
		a.overlay = overlayCustomTimer
		return textinput.Blink
	}
	return nil
}

func (a *App) viewTimer() string {
	sess := a.engine.Session()
	state := sess.State()

	face := clockFaceStyle
	if state == timer.Alarming {
		face = alarmFaceStyle
	}
	face = face.BorderForeground(pageAccent[pageTimer])

	var status string
	switch state {
	case timer.Running:
		status = "Running"
	case timer.Alarming:
		status = fmt.Sprintf("Time's up! (%d/%d)", sess.AlarmRepeatCount, a.engine.Config().MaxAlarmRepeats)
	default:
		if sess.Remaining == 0 {
			status = "Set a duration to begin"
		} else {
			status = "Paused"
		}
	}

	var presets []string
	for i, d := range a.engine.Config().Presets {
		if i >= 9 { //nolint:mnd // digit keys 1-9
			break
		}
		presets = append(presets, fmt.Sprintf("[%d] %s", i+1, timer.FormatDuration(d)))
	}
	presets = append(presets, "[c] Custom")

	hint := "space start   r reset   x stop"
	if state == timer.Alarming {
		hint = "space stop alarm   r reset   x stop"
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		face.Render(timer.Format(sess.Remaining)),
		status,
		"",
		strings.Join(presets, "   "),
		"",
		dimStyle.Render(hint),
	)
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, content)
}

// --- Custom duration dialog ---

// customTimer is the hours/minutes entry dialog.
type customTimer struct {
	inputs [2]textinput.Model
	focus  int
}

func newCustomTimer() *customTimer {
	c := &customTimer{}
	for i, label := range []string{"Hours", "Minutes"} {
		in := textinput.New()
		in.Placeholder = "0"
		in.Prompt = fmt.Sprintf("%-8s ", label+":")
		in.CharLimit = 3
		in.Width = 4
		c.inputs[i] = in
	}
	c.inputs[0].Focus()
	return c
}

func (c *customTimer) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.inputs[c.focus], cmd = c.inputs[c.focus].Update(msg)
	return cmd
}

func (c *customTimer) cycle() {
	c.inputs[c.focus].Blur()
	c.focus = (c.focus + 1) % len(c.inputs)
	c.inputs[c.focus].Focus()
}

// values parses the fields; blanks count as zero.
func (c *customTimer) values() (hours, minutes int, err error) {
	parse := func(in textinput.Model, name string) (int, error) {
		v := strings.TrimSpace(in.Value())
		if v == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%s must be a number", name)
		}
		return n, nil
	}
	if hours, err = parse(c.inputs[0], "hours"); err != nil {
		return 0, 0, err
	}
	if minutes, err = parse(c.inputs[1], "minutes"); err != nil {
		return 0, 0, err
	}
	return hours, minutes, nil
}

func (c *customTimer) view() string {
	lines := []string{focusedFieldStyle.Render("Custom duration"), ""}
	for _, in := range c.inputs {
		lines = append(lines, in.View())
	}
	lines = append(lines, "", dimStyle.Render("tab switch field   enter set   esc cancel"))
	return dialogStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) handleCustomKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.overlay = overlayNone
		a.custom = nil
		return nil
	case "tab", "shift+tab", "up", "down":
		a.custom.cycle()
		return nil
	case "enter":
		h, m, err := a.custom.values()
		if err != nil {
			a.err = err
			return nil
		}
		cmd := a.dispatch(timer.SetDuration(h, m))
		if a.err != nil {
			return cmd
		}
		a.overlay = overlayNone
		a.custom = nil
		return cmd
	}
	return a.custom.update(msg)
}
