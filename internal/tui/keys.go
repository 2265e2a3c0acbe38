package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings shared by all pages plus the per-page ones.
// It implements help.KeyMap; the short help follows the active page.
type keyMap struct {
	Quit     key.Binding
	Home     key.Binding
	Timer    key.Binding
	Planner  key.Binding
	Schedule key.Binding
	About    key.Binding
	Back     key.Binding

	// Timer page.
	StartStop key.Binding
	Reset     key.Binding
	Stop      key.Binding
	Preset    key.Binding
	Custom    key.Binding

	// Planner page.
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Done   key.Binding

	page page
}

const spacebar = " "

func newKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Home:     key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "home")),
		Timer:    key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "timer")),
		Planner:  key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "planner")),
		Schedule: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "schedule")),
		About:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "about")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),

		StartStop: key.NewBinding(key.WithKeys(spacebar, "space", "enter"), key.WithHelp("space", "start/pause")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Stop:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "quit timer")),
		Preset:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "preset")),
		Custom:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "custom")),

		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "prev")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "next")),
		Add:    key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Done:   key.NewBinding(key.WithKeys(spacebar, "space", "enter"), key.WithHelp("space", "done")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	switch k.page {
	case pageTimer:
		return []key.Binding{k.StartStop, k.Reset, k.Stop, k.Preset, k.Custom, k.Home, k.Quit}
	case pagePlanner:
		return []key.Binding{k.Add, k.Edit, k.Done, k.Delete, k.Schedule, k.Home, k.Quit}
	}
	return []key.Binding{k.Timer, k.Planner, k.Schedule, k.About, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.Timer, k.Planner, k.Schedule, k.About, k.Back, k.Quit},
		{k.StartStop, k.Reset, k.Stop, k.Preset, k.Custom},
		{k.Up, k.Down, k.Add, k.Edit, k.Done, k.Delete},
	}
}
