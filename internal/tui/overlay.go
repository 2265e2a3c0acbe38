package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/twiced-technology-gmbh/chikita/internal/output"
)

func (a *App) viewSchedule() string {
	var b strings.Builder
	output.ScheduleTable(&b, output.Schedule{
		Summary:  a.store.Summary(),
		Timeline: a.store.SortedByStart(),
		Groups:   a.store.Groups(),
	})
	b.WriteString("\n" + dimStyle.Render("esc close"))
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.TrimRight(b.String(), "\n"))
}

const aboutMarkdown = `# chikita

Plan your day and keep focus.

## Focus timer

- **space** starts or pauses the countdown, or silences the alarm
- **1-9** load a preset, **c** sets a custom duration
- **r** resets to the default, **x** stops and clears the timer

When the countdown ends the alarm repeats until you stop it or it
gives up on its own.

## Day planner

- **a** adds a task, **e** edits the selected one
- **space** marks it done, **d** deletes it
- The dots beside each hour show the priority of the first task
  starting in that hour: easy, med or hard.

## Everywhere

- **H**, **T**, **P** switch pages
- **s** shows the schedule overview, **q** quits
`

// aboutPanel renders the help text, caching the result per width.
type aboutPanel struct {
	width    int
	rendered string
}

func (p *aboutPanel) view(width int) string {
	if p.rendered != "" && p.width == width {
		return p.rendered
	}
	p.width = width
	p.rendered = renderMarkdown(aboutMarkdown, width)
	return p.rendered
}

func renderMarkdown(md string, width int) string {
	style := "dark"
	if lipgloss.ColorProfile() == termenv.Ascii {
		style = "notty"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(min(max(width-4, 20), 80)), //nolint:mnd // readable column
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
