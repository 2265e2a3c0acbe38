package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/chikita/internal/task"
)

// --- Styles ---

var (
	brandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("244"))

	taglineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	pageTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	// Per-page accent: home yellow, timer orange, planner blue.
	pageAccent = map[page]lipgloss.Color{
		pageHome:    "178",
		pageTimer:   "208",
		pagePlanner: "75",
	}

	navStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	activeNavStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	clockFaceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("236")).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	alarmFaceStyle = clockFaceStyle.
			Foreground(lipgloss.Color("196")).
			BorderForeground(lipgloss.Color("196")).
			Blink(true)

	hourLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Width(6).
			Align(lipgloss.Right)

	activeHourStyle = hourLabelStyle.Foreground(lipgloss.Color("75")).Bold(true)

	selectedTaskStyle = lipgloss.NewStyle().
				Bold(true).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("226"))

	completedStyle = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("242"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	focusedFieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)

	// Priority dot colors: easy green, med yellow, hard red.
	priorityColors = map[task.Priority]lipgloss.Color{
		task.Low:    "34",
		task.Medium: "220",
		task.High:   "196",
	}

	// taskPalette is the 13-color pastel palette tasks are painted with,
	// selected by task.PaletteIndex.
	taskPalette = []lipgloss.Color{
		"217", // red
		"223", // orange
		"222", // amber
		"229", // yellow
		"157", // green
		"158", // emerald
		"152", // teal
		"153", // sky
		"111", // blue
		"147", // indigo
		"183", // purple
		"218", // pink
		"211", // rose
	}
)

// taskStyle returns the block style for a task, colored by its ID.
func taskStyle(t task.Task) lipgloss.Style {
	c := taskPalette[task.PaletteIndex(t.ID)%len(taskPalette)]
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("235")).
		Background(c).
		Padding(0, 1)
}

// priorityDots renders the easy/med/hard indicator with the matching dot lit.
func priorityDots(p task.Priority, ok bool) string {
	var out string
	for _, level := range []task.Priority{task.Low, task.Medium, task.High} {
		if ok && p == level {
			out += lipgloss.NewStyle().Foreground(priorityColors[level]).Render("●")
		} else {
			out += dimStyle.Render("·")
		}
	}
	return out
}

// priorityBadge renders a priority label in its color.
func priorityBadge(p task.Priority) string {
	if c, ok := priorityColors[p]; ok {
		return lipgloss.NewStyle().Foreground(c).Render(p.Label())
	}
	return dimStyle.Render(p.Label())
}
