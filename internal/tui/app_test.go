package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/chikita/internal/config"
	"github.com/twiced-technology-gmbh/chikita/internal/kv"
	"github.com/twiced-technology-gmbh/chikita/internal/schedule"
	"github.com/twiced-technology-gmbh/chikita/internal/task"
	"github.com/twiced-technology-gmbh/chikita/internal/timer"
)

func testConfig() timer.Config {
	return timer.Config{
		Default:         3 * time.Second,
		TickInterval:    time.Second,
		AlarmInterval:   time.Second,
		MaxAlarmRepeats: 2,
		Presets:         []time.Duration{25 * time.Minute, time.Hour},
	}
}

func newTestApp(t *testing.T, start string) (*App, *kv.Memory) {
	t.Helper()
	cfg := config.NewDefault()
	cfg.SetDir(t.TempDir())
	mem := kv.NewMemory()
	store := schedule.New(mem)
	engine := timer.NewEngine(testConfig())
	a := NewApp(cfg, store, engine, Options{
		StartPage: start,
		Now:       func() time.Time { return time.Date(2026, 3, 2, 8, 30, 0, 0, time.Local) },
	})
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return a, mem
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(a *App, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = a.Update(m)
	}
	return cmd
}

func typeText(a *App, s string) {
	for _, r := range s {
		press(a, runes(string(r)))
	}
}

func TestStartPage(t *testing.T) {
	tests := []struct {
		start string
		want  page
	}{
		{"", pageHome},
		{PageHome, pageHome},
		{PageTimer, pageTimer},
		{PagePlanner, pagePlanner},
	}
	for _, tt := range tests {
		a, _ := newTestApp(t, tt.start)
		if a.page != tt.want {
			t.Errorf("StartPage %q: page = %v, want %v", tt.start, a.page, tt.want)
		}
	}
}

func TestNavigation(t *testing.T) {
	a, _ := newTestApp(t, "")

	press(a, runes("T"))
	if a.page != pageTimer {
		t.Fatalf("T: page = %v", a.page)
	}
	press(a, runes("P"))
	if a.page != pagePlanner {
		t.Fatalf("P: page = %v", a.page)
	}
	press(a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.page != pageHome {
		t.Fatalf("esc: page = %v", a.page)
	}

	press(a, runes("s"))
	if a.overlay != overlaySchedule {
		t.Fatal("s did not open the schedule")
	}
	press(a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.overlay != overlayNone {
		t.Fatal("esc did not close the schedule")
	}
}

func TestQuit(t *testing.T) {
	a, _ := newTestApp(t, "")
	cmd := press(a, runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
}

func TestTimerRunsToAlarmAndStops(t *testing.T) {
	a, _ := newTestApp(t, PageTimer)

	cmd := press(a, runes(" "))
	if cmd == nil || a.engine.State() != timer.Running {
		t.Fatalf("space: state = %v, cmd nil = %v", a.engine.State(), cmd == nil)
	}

	for range 3 {
		press(a, TimerMsg{Event: timer.Tick(a.engine.Generation())})
	}
	if a.engine.State() != timer.Alarming {
		t.Fatalf("after countdown: state = %v", a.engine.State())
	}
	if !strings.Contains(a.View(), "Time's up!") {
		t.Error("alarm not shown in view")
	}

	press(a, runes(" "))
	if a.engine.State() != timer.Idle {
		t.Fatalf("space while alarming: state = %v", a.engine.State())
	}
	if got := a.engine.Session().Remaining; got != 0 {
		t.Fatalf("remaining = %d, want 0", got)
	}
}

func TestStaleTimerMsgIgnored(t *testing.T) {
	a, _ := newTestApp(t, PageTimer)

	press(a, runes(" "))
	stale := timer.Tick(a.engine.Generation())
	press(a, runes(" "), runes(" ")) // pause, resume: new generation

	cmd := press(a, TimerMsg{Event: stale})
	if cmd != nil {
		t.Fatal("stale tick scheduled a follow-up")
	}
	if got := a.engine.Session().Remaining; got != 3 {
		t.Fatalf("stale tick changed remaining to %d", got)
	}
}

func TestTimerPresetsAndReset(t *testing.T) {
	a, _ := newTestApp(t, PageTimer)

	press(a, runes("2"))
	if got := a.engine.Session().Remaining; got != 3600 {
		t.Fatalf("preset 2: remaining = %d, want 3600", got)
	}
	press(a, runes("9"))
	if got := a.engine.Session().Remaining; got != 3600 {
		t.Fatalf("missing preset changed remaining to %d", got)
	}
	press(a, runes("r"))
	if got := a.engine.Session().Remaining; got != 3 {
		t.Fatalf("reset: remaining = %d, want 3", got)
	}
	press(a, runes("x"))
	if got := a.engine.Session().Remaining; got != 0 {
		t.Fatalf("stop: remaining = %d, want 0", got)
	}

	press(a, runes(" "))
	if a.err == nil || a.engine.State() != timer.Idle {
		t.Fatal("start with no time should fail and stay idle")
	}
}

func TestCustomDuration(t *testing.T) {
	a, _ := newTestApp(t, PageTimer)

	press(a, runes("c"))
	if a.overlay != overlayCustomTimer {
		t.Fatal("c did not open the custom dialog")
	}
	typeText(a, "1")
	press(a, tea.KeyMsg{Type: tea.KeyTab})
	typeText(a, "30")
	press(a, tea.KeyMsg{Type: tea.KeyEnter})

	if a.overlay != overlayNone {
		t.Fatal("dialog still open after a valid duration")
	}
	if got := a.engine.Session().Remaining; got != 5400 {
		t.Fatalf("remaining = %d, want 5400", got)
	}
}

func TestCustomDurationRejectsZero(t *testing.T) {
	a, _ := newTestApp(t, PageTimer)

	press(a, runes("c"), tea.KeyMsg{Type: tea.KeyEnter})
	if a.overlay != overlayCustomTimer {
		t.Fatal("dialog closed on a zero duration")
	}
	if a.err == nil {
		t.Fatal("expected an error for a zero duration")
	}
	if got := a.engine.Session().Remaining; got != 3 {
		t.Fatalf("remaining changed to %d", got)
	}

	press(a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.overlay != overlayNone {
		t.Fatal("esc did not close the dialog")
	}
}

func TestPlannerAddEditToggleDelete(t *testing.T) {
	a, _ := newTestApp(t, PagePlanner)

	press(a, runes("a"))
	if a.overlay != overlayForm {
		t.Fatal("a did not open the form")
	}
	typeText(a, "quiet time") // q must not quit while typing
	press(a, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	press(a, runes("3"), tea.KeyMsg{Type: tea.KeyEnter})

	if a.overlay != overlayNone {
		t.Fatalf("form still open: %v", a.form.err)
	}
	tasks := a.store.List()
	if len(tasks) != 1 {
		t.Fatalf("len = %d, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Text != "quiet time" || got.Start != 540 || got.End != 600 || got.Priority != task.High {
		t.Fatalf("added %+v", got)
	}

	// Edit: move the end one step later.
	press(a, runes("e"), tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	press(a, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	edited, _ := a.store.Get(got.ID)
	if edited.End != 615 || edited.Text != "quiet time" {
		t.Fatalf("edited %+v", edited)
	}

	press(a, runes(" "))
	if done, _ := a.store.Get(got.ID); !done.Completed {
		t.Fatal("space did not complete the task")
	}

	press(a, runes("d"), runes("n"))
	if a.store.Len() != 1 {
		t.Fatal("declined delete removed the task")
	}
	press(a, runes("d"), runes("y"))
	if a.store.Len() != 0 {
		t.Fatal("confirmed delete kept the task")
	}

	entries, err := schedule.ReadActivity(a.cfg.Dir(), 0)
	if err != nil {
		t.Fatal(err)
	}
	var actions []string
	for _, e := range entries {
		actions = append(actions, e.Action)
	}
	if strings.Join(actions, ",") != "add,edit,complete,delete" {
		t.Fatalf("activity = %v", actions)
	}
}

func TestPlannerFormKeepsInvalidInput(t *testing.T) {
	a, _ := newTestApp(t, PagePlanner)

	press(a, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})
	if a.overlay != overlayForm || a.form.err == nil {
		t.Fatal("empty text should keep the form open with an error")
	}
	if a.store.Len() != 0 {
		t.Fatal("invalid task was added")
	}
	press(a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.overlay != overlayNone || a.form != nil {
		t.Fatal("esc did not cancel the form")
	}
}

func TestFormPickers(t *testing.T) {
	f := newTaskForm(task.Task{Start: 540, End: 555}, false, 15)

	f.move(1) // start
	f.adjust(1)
	if f.start != 555 || f.end != 570 {
		t.Fatalf("start step: %d-%d, want 555-570", f.start, f.end)
	}

	f.move(1) // end
	f.adjust(-1)
	if f.end != 555 {
		t.Fatalf("end step: %d, want 555", f.end)
	}

	f.move(1) // priority
	f.adjust(-1)
	if f.priority != task.High {
		t.Fatalf("priority cycled to %q, want high", f.priority)
	}

	f.move(1)
	if f.focus != fieldText {
		t.Fatal("focus did not wrap to the text field")
	}
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	a, mem := newTestApp(t, PagePlanner)

	other := schedule.New(mem)
	if _, err := other.Add("from the CLI", 600, 660, task.Low); err != nil {
		t.Fatal(err)
	}

	press(a, ReloadMsg{})
	if a.store.Len() != 1 {
		t.Fatalf("len after reload = %d, want 1", a.store.Len())
	}
	if !strings.Contains(a.View(), "from the CLI") {
		t.Error("reloaded task not rendered")
	}
}

func TestMutationsKeepUnseenExternalWrites(t *testing.T) {
	a, mem := newTestApp(t, PagePlanner)

	// Written by another process; no ReloadMsg has arrived yet.
	other := schedule.New(mem)
	if _, err := other.Add("from the CLI", 600, 660, task.Low); err != nil {
		t.Fatal(err)
	}

	press(a, runes("a"))
	typeText(a, "from the TUI")
	press(a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.overlay != overlayNone {
		t.Fatalf("form still open: %v", a.form.err)
	}

	persisted := schedule.New(mem)
	if persisted.Len() != 2 {
		t.Fatalf("stored %d tasks, want both writers' tasks: %+v", persisted.Len(), persisted.List())
	}
	if _, err := os.Stat(a.cfg.LockPath()); err != nil {
		t.Errorf("mutation did not use the directory lock: %v", err)
	}

	// A toggle after another unseen write keeps that write too.
	other = schedule.New(mem)
	if _, err := other.Add("second CLI task", 700, 730, task.None); err != nil {
		t.Fatal(err)
	}
	press(a, runes(" "))
	if n := schedule.New(mem).Len(); n != 3 {
		t.Fatalf("stored %d tasks after toggle, want 3", n)
	}
}

func TestViews(t *testing.T) {
	a, _ := newTestApp(t, "")
	if _, err := a.store.Add("Standup", 555, 570, task.Low); err != nil {
		t.Fatal(err)
	}

	if v := a.View(); !strings.Contains(v, "1 tasks planned") || !strings.Contains(v, "Standup") {
		t.Errorf("home view missing summary or next task:\n%s", v)
	}

	press(a, runes("T"))
	if v := a.View(); !strings.Contains(v, "0m 3s") {
		t.Errorf("timer view missing countdown:\n%s", v)
	}

	press(a, runes("s"))
	if v := a.View(); !strings.Contains(v, "TIMELINE") {
		t.Errorf("schedule overlay missing timeline:\n%s", v)
	}

	press(a, tea.KeyMsg{Type: tea.KeyEsc}, runes("?"))
	if a.overlay != overlayAbout || a.View() == "" {
		t.Error("about overlay not shown")
	}
}
