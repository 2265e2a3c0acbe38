package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/chikita/internal/clock"
	"github.com/twiced-technology-gmbh/chikita/internal/task"
)

type formField int

const (
	fieldText formField = iota
	fieldStart
	fieldEnd
	fieldPriority
	fieldCount
)

// formPriorities is the cycle order of the priority picker.
var formPriorities = []task.Priority{task.None, task.Low, task.Medium, task.High}

// taskForm adds or edits one task.
type taskForm struct {
	id       int64
	editing  bool
	text     textinput.Model
	start    int
	end      int
	priority task.Priority
	step     int
	focus    formField
	err      error
}

func newTaskForm(t task.Task, editing bool, step int) *taskForm {
	in := textinput.New()
	in.Placeholder = "What are you working on?"
	in.CharLimit = 200
	in.Width = 40
	in.Prompt = ""
	in.SetValue(t.Text)
	in.Focus()
	if step <= 0 {
		step = 15
	}
	return &taskForm{
		id:       t.ID,
		editing:  editing,
		text:     in,
		start:    t.Start,
		end:      t.End,
		priority: t.Priority,
		step:     step,
	}
}

func (f *taskForm) init() tea.Cmd { return textinput.Blink }

func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	if f.focus != fieldText {
		return nil
	}
	var cmd tea.Cmd
	f.text, cmd = f.text.Update(msg)
	return cmd
}

func (f *taskForm) move(delta int) {
	f.focus = (f.focus + formField(delta) + fieldCount) % fieldCount
	if f.focus == fieldText {
		f.text.Focus()
	} else {
		f.text.Blur()
	}
}

// adjust steps the focused picker. dir is -1 or +1.
func (f *taskForm) adjust(dir int) {
	switch f.focus {
	case fieldStart:
		f.start = clock.Step(f.start, dir*f.step)
		if f.end <= f.start {
			f.end = clock.Step(f.start, f.step)
		}
	case fieldEnd:
		f.end = clock.Step(f.end, dir*f.step)
	case fieldPriority:
		i := 0
		for j, p := range formPriorities {
			if p == f.priority {
				i = j
			}
		}
		i = (i + dir + len(formPriorities)) % len(formPriorities)
		f.priority = formPriorities[i]
	}
}

func (f *taskForm) setPriority(k string) bool {
	switch k {
	case "0":
		f.priority = task.None
	case "1":
		f.priority = task.Low
	case "2":
		f.priority = task.Medium
	case "3":
		f.priority = task.High
	default:
		return false
	}
	return true
}

func (f *taskForm) view() string {
	title := "New task"
	if f.editing {
		title = "Edit task"
	}
	label := func(field formField, name string) string {
		if f.focus == field {
			return focusedFieldStyle.Render("> " + name)
		}
		return dimStyle.Render("  " + name)
	}

	lines := []string{
		focusedFieldStyle.Render(title),
		"",
		label(fieldText, "Task     ") + " " + f.text.View(),
		label(fieldStart, "Start    ") + " " + clock.Format(f.start),
		label(fieldEnd, "End      ") + " " + clock.Format(f.end) + dimStyle.Render("  ("+clock.Span(max(f.end-f.start, 0))+")"),
		label(fieldPriority, "Priority ") + " " + f.priorityPicker(),
	}
	if f.err != nil {
		lines = append(lines, "", errorStyle.Render(f.err.Error()))
	}
	lines = append(lines, "", dimStyle.Render("tab next   ←/→ adjust   0-3 priority   enter save   esc cancel"))
	return dialogStyle.Render(strings.Join(lines, "\n"))
}

func (f *taskForm) priorityPicker() string {
	parts := make([]string, 0, len(formPriorities))
	for _, p := range formPriorities {
		if p == f.priority {
			parts = append(parts, "["+priorityBadge(p)+"]")
		} else {
			parts = append(parts, " "+dimStyle.Render(p.Label())+" ")
		}
	}
	return strings.Join(parts, " ")
}

func (a *App) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	f := a.form
	switch msg.String() {
	case "esc":
		a.form = nil
		a.overlay = overlayNone
		return nil
	case "tab", "down":
		f.move(1)
		return nil
	case "shift+tab", "up":
		f.move(-1)
		return nil
	case "enter":
		a.submitForm()
		return nil
	}

	if f.focus == fieldText {
		return f.update(msg)
	}
	switch msg.String() {
	case "left", "h", "-":
		f.adjust(-1)
	case "right", "l", "+", "=":
		f.adjust(1)
	default:
		f.setPriority(msg.String())
	}
	return nil
}

// submitForm saves the form. Validation errors keep the form open.
func (a *App) submitForm() {
	f := a.form
	var (
		t   task.Task
		err error
	)
	err = a.mutate(func() error {
		if f.editing {
			t, err = a.store.Edit(f.id, f.text.Value(), f.start, f.end, f.priority)
		} else {
			t, err = a.store.Add(f.text.Value(), f.start, f.end, f.priority)
		}
		return err
	})
	if err != nil {
		f.err = err
		return
	}

	action := "add"
	if f.editing {
		action = "edit"
	}
	a.recordMutation(action, t.ID, t.Text)
	a.selectID(t.ID)
	a.form = nil
	a.overlay = overlayNone
}
