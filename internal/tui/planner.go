package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/chikita/internal/clock"
	"github.com/twiced-technology-gmbh/chikita/internal/schedule"
	"github.com/twiced-technology-gmbh/chikita/internal/task"
)

const hoursPerDay = 24

// plannerState tracks the selected task on the planner page. The cursor
// indexes the chronological task list.
type plannerState struct {
	cursor int
}

func (p *plannerState) clamp(s *schedule.Store) {
	n := s.Len()
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// selected returns the task under the cursor.
func (a *App) selected() (task.Task, bool) {
	tasks := a.store.SortedByStart()
	if len(tasks) == 0 || a.planner.cursor >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[a.planner.cursor], true
}

// selectID moves the cursor onto the task with id.
func (a *App) selectID(id int64) {
	for i, t := range a.store.SortedByStart() {
		if t.ID == id {
			a.planner.cursor = i
			return
		}
	}
	a.planner.clamp(a.store)
}

func (a *App) handlePlannerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Up):
		if a.planner.cursor > 0 {
			a.planner.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.planner.cursor < a.store.Len()-1 {
			a.planner.cursor++
		}
	case key.Matches(msg, a.keys.Add):
		start, end := a.cfg.DefaultRange()
		a.form = newTaskForm(task.Task{Start: start, End: end}, false, a.cfg.MinuteStep())
		a.overlay = overlayForm
		return a.form.init()
	case key.Matches(msg, a.keys.Edit):
		t, ok := a.selected()
		if !ok {
			return nil
		}
		a.form = newTaskForm(t, true, a.cfg.MinuteStep())
		a.overlay = overlayForm
		return a.form.init()
	case key.Matches(msg, a.keys.Done):
		t, ok := a.selected()
		if !ok {
			return nil
		}
		var updated task.Task
		err := a.mutate(func() error {
			var err error
			updated, err = a.store.Toggle(t.ID)
			return err
		})
		if err != nil {
			a.err = err
			return nil
		}
		action := "reopen"
		if updated.Completed {
			action = "complete"
		}
		a.recordMutation(action, updated.ID, updated.Text)
	case key.Matches(msg, a.keys.Delete):
		t, ok := a.selected()
		if !ok {
			return nil
		}
		a.deleteID = t.ID
		a.deleteText = t.Text
		a.overlay = overlayConfirmDelete
	}
	return nil
}

func (a *App) handleDeleteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		if err := a.mutate(func() error { return a.store.Delete(a.deleteID) }); err != nil {
			a.err = err
		} else {
			a.recordMutation("delete", a.deleteID, a.deleteText)
		}
		a.planner.clamp(a.store)
		a.overlay = overlayNone
	case "n", "N", "esc":
		a.overlay = overlayNone
	}
	return nil
}

func (a *App) viewDeleteConfirm() string {
	body := fmt.Sprintf("Delete %q?\n\n%s", truncate(a.deleteText, 40), dimStyle.Render("y confirm   n cancel")) //nolint:mnd // dialog width
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, dialogStyle.Render(body))
}

func (a *App) viewPlanner() string {
	tasks := a.store.SortedByStart()
	sel, hasSel := a.selected()

	byHour := make([][]task.Task, hoursPerDay)
	for _, t := range tasks {
		h := t.StartHour()
		if h >= 0 && h < hoursPerDay {
			byHour[h] = append(byHour[h], t)
		}
	}

	focusHour := a.now().Hour()
	if hasSel {
		focusHour = sel.StartHour()
	}

	rows := make([]string, 0, hoursPerDay)
	for h := range hoursPerDay {
		label := hourLabelStyle.Render(clock.HourLabel(h))
		if h == focusHour {
			label = activeHourStyle.Render(clock.HourLabel(h))
		}
		dots := priorityDots(a.store.HourMarker(h))

		var blocks []string
		for _, t := range byHour[h] {
			blocks = append(blocks, a.renderBlock(t, hasSel && t.ID == sel.ID))
		}
		rows = append(rows, label+" "+dots+" "+strings.Join(blocks, " "))
	}

	visible := max(a.height-appChrome-2, 1) //nolint:mnd // blank line and error line
	first := 0
	if visible < hoursPerDay {
		first = min(max(focusHour-visible/2, 0), hoursPerDay-visible) //nolint:mnd // center the focus hour
		rows = rows[first : first+visible]
	}

	if len(tasks) == 0 {
		rows = append(rows, "", dimStyle.Render("No tasks yet. Press a to add one."))
	}
	return strings.Join(rows, "\n")
}

func (a *App) renderBlock(t task.Task, selected bool) string {
	text := fmt.Sprintf("%s-%s %s", clock.Format24(t.Start), clock.Format24(t.End), t.Text)
	text = truncate(text, max(a.width/2, 20)) //nolint:mnd // block width
	style := taskStyle(t)
	if t.Completed {
		style = style.Inherit(completedStyle)
	}
	out := style.Render(text)
	if selected {
		out = selectedTaskStyle.Render(out)
	}
	return out
}

// nextTask returns the first pending task starting at or after now.
func (a *App) nextTask(now time.Time) (task.Task, bool) {
	minute := clock.ToMinutes(now.Hour(), now.Minute())
	for _, t := range a.store.SortedByStart() {
		if !t.Completed && t.Start >= minute {
			return t, true
		}
	}
	return task.Task{}, false
}

func formatMinutes(m int) string {
	return clock.Format(m)
}
