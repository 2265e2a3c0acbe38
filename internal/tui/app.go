// Package tui implements the chikita terminal UI: a home page, the focus
// timer, the day planner and the schedule overview.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/chikita/internal/config"
	"github.com/twiced-technology-gmbh/chikita/internal/filelock"
	"github.com/twiced-technology-gmbh/chikita/internal/logx"
	"github.com/twiced-technology-gmbh/chikita/internal/schedule"
	"github.com/twiced-technology-gmbh/chikita/internal/timer"
)

// page identifies the main screen.
type page int

const (
	pageHome page = iota
	pageTimer
	pagePlanner
)

func (p page) String() string {
	switch p {
	case pageTimer:
		return "Focus Timer"
	case pagePlanner:
		return "Day Planner"
	}
	return "Home"
}

// overlay is drawn instead of the page when set.
type overlay int

const (
	overlayNone overlay = iota
	overlaySchedule
	overlayAbout
	overlayForm
	overlayConfirmDelete
	overlayCustomTimer
)

const (
	clockInterval = 30 * time.Second // how often the home clock refreshes
	appChrome     = 4                // header, nav and status lines
)

// Page names accepted by Options.StartPage.
const (
	PageHome    = "home"
	PageTimer   = "timer"
	PagePlanner = "planner"
)

// Options configures an App.
type Options struct {
	StartPage string
	Logger    logx.Logger
	Now       func() time.Time
}

// App is the top-level bubbletea model.
type App struct {
	cfg    *config.Config
	store  *schedule.Store
	engine *timer.Engine
	log    logx.Logger
	now    func() time.Time

	page    page
	overlay overlay
	width   int
	height  int
	err     error

	keys keyMap
	help help.Model

	planner plannerState
	form    *taskForm
	custom  *customTimer
	about   aboutPanel

	// Delete confirmation.
	deleteID   int64
	deleteText string
}

// NewApp creates the model. store and engine are owned by the caller.
func NewApp(cfg *config.Config, store *schedule.Store, engine *timer.Engine, opts Options) *App {
	a := &App{
		cfg:    cfg,
		store:  store,
		engine: engine,
		log:    opts.Logger.With(logx.String("component", "tui")),
		now:    opts.Now,
		keys:   newKeyMap(),
		help:   help.New(),
	}
	if a.now == nil {
		a.now = time.Now
	}
	switch opts.StartPage {
	case PageTimer:
		a.page = pageTimer
	case PagePlanner:
		a.page = pagePlanner
	}
	a.keys.page = a.page
	a.planner.clamp(a.store)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return clockCmd()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil
	case ReloadMsg:
		a.reload()
		return a, nil
	case TimerMsg:
		return a, a.dispatch(msg.Event)
	case ClockMsg:
		return a, clockCmd()
	}

	// Let focused inputs consume cursor blinks and similar messages.
	switch a.overlay {
	case overlayForm:
		return a, a.form.update(msg)
	case overlayCustomTimer:
		return a, a.custom.update(msg)
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	var body string
	switch a.overlay {
	case overlaySchedule:
		body = a.viewSchedule()
	case overlayAbout:
		body = a.about.view(a.width)
	case overlayForm:
		body = a.form.view()
	case overlayConfirmDelete:
		body = a.viewDeleteConfirm()
	case overlayCustomTimer:
		body = a.viewTimer() + "\n\n" + a.custom.view()
	default:
		body = a.viewPage()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.viewHeader(),
		body,
		"",
		a.renderStatusBar(),
	)
}

func (a *App) viewPage() string {
	switch a.page {
	case pageTimer:
		return a.viewTimer()
	case pagePlanner:
		return a.viewPlanner()
	}
	return a.viewHome()
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.overlay {
	case overlayForm:
		return a, a.handleFormKey(msg)
	case overlayCustomTimer:
		return a, a.handleCustomKey(msg)
	case overlayConfirmDelete:
		return a, a.handleDeleteKey(msg)
	case overlaySchedule, overlayAbout:
		if key.Matches(msg, a.keys.Back, a.keys.Schedule, a.keys.About) || msg.String() == "q" {
			a.overlay = overlayNone
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Home):
		a.setPage(pageHome)
		return a, nil
	case key.Matches(msg, a.keys.Timer):
		a.setPage(pageTimer)
		return a, nil
	case key.Matches(msg, a.keys.Planner):
		a.setPage(pagePlanner)
		return a, nil
	case key.Matches(msg, a.keys.Schedule):
		a.overlay = overlaySchedule
		return a, nil
	case key.Matches(msg, a.keys.About):
		a.overlay = overlayAbout
		return a, nil
	case key.Matches(msg, a.keys.Back):
		a.setPage(pageHome)
		return a, nil
	}

	switch a.page {
	case pageTimer:
		return a, a.handleTimerKey(msg)
	case pagePlanner:
		return a, a.handlePlannerKey(msg)
	}
	return a, nil
}

func (a *App) setPage(p page) {
	a.page = p
	a.keys.page = p
	a.err = nil
}

// reload re-reads the store after an external write.
func (a *App) reload() {
	if err := a.store.Reload(); err != nil {
		a.err = err
		return
	}
	a.err = a.store.Err()
	a.planner.clamp(a.store)
}

// recordMutation logs a successful store mutation and surfaces persistence
// failures in the status bar.
// mutate runs fn holding the data directory lock, after reloading the store
// so writes other processes made since the last watcher event are kept.
func (a *App) mutate(fn func() error) error {
	err := filelock.With(a.cfg.LockPath(), func() error {
		if err := a.store.Reload(); err != nil {
			return err
		}
		return fn()
	})
	a.planner.clamp(a.store)
	return err
}

func (a *App) recordMutation(action string, id int64, detail string) {
	schedule.RecordActivity(a.cfg.Dir(), action, id, detail)
	a.err = a.store.Err()
	a.log.Debug("task mutated", logx.String("action", action), logx.Int64("id", id))
}

func (a *App) viewHeader() string {
	accent := pageAccent[a.page]
	title := pageTitleStyle.Foreground(accent).Render(strings.ToUpper(a.page.String()))

	var nav []string
	for _, p := range []page{pageHome, pageTimer, pagePlanner} {
		label := p.String()
		if p == a.page {
			nav = append(nav, activeNavStyle.Background(pageAccent[p]).Render(label))
		} else {
			nav = append(nav, navStyle.Render(label))
		}
	}
	left := brandStyle.Render("CHIKITA") + " " + title
	right := strings.Join(nav, " ")
	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (a *App) viewHome() string {
	now := a.now()
	ov := a.store.Summary()
	sess := a.engine.Session()

	lines := []string{
		"",
		brandStyle.Render("chikita"),
		taglineStyle.Render("Plan, focus, and thrive"),
		"",
		now.Format("Monday, January 2") + "  " + now.Format("3:04 PM"),
		"",
		fmt.Sprintf("%d tasks planned, %d done", ov.Total, ov.Completed),
		fmt.Sprintf("Timer: %s (%s)", timer.Format(sess.Remaining), sess.State()),
	}
	if next, ok := a.nextTask(now); ok {
		lines = append(lines, "Next: "+taskStyle(next).Render(next.Text)+dimStyle.Render(" at "+formatMinutes(next.Start)))
	}
	lines = append(lines, "", dimStyle.Render("T timer   P planner   s schedule   ? about"))

	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (a *App) renderStatusBar() string {
	status := a.help.View(a.keys)
	if a.err != nil {
		errStr := errorStyle.Render(truncate("Error: "+a.err.Error(), a.width))
		return errStr + "\n" + statusBarStyle.Render(status)
	}
	return statusBarStyle.Render(status)
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to trigger a store reload.
type ReloadMsg struct{}

// TimerMsg delivers a scheduled timer tick to the engine.
type TimerMsg struct{ Event timer.Event }

// ClockMsg refreshes the home page clock.
type ClockMsg struct{}

func clockCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(time.Time) tea.Msg { return ClockMsg{} })
}

// tickCmd turns an engine schedule into a delayed TimerMsg.
func tickCmd(s timer.Schedule) tea.Cmd {
	if !s.Pending() {
		return nil
	}
	ev := s.Event
	return tea.Tick(s.After, func(time.Time) tea.Msg { return TimerMsg{Event: ev} })
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	target := min(maxLen-3, len(runes)) //nolint:mnd // room for "..."
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
