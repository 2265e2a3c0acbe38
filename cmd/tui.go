package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/chikita/internal/config"
	"github.com/twiced-technology-gmbh/chikita/internal/kv"
	"github.com/twiced-technology-gmbh/chikita/internal/logx"
	"github.com/twiced-technology-gmbh/chikita/internal/schedule"
	"github.com/twiced-technology-gmbh/chikita/internal/timer"
	"github.com/twiced-technology-gmbh/chikita/internal/tui"
	"github.com/twiced-technology-gmbh/chikita/internal/watcher"
)

// tuiOptions selects the start page and an optional initial timer duration.
type tuiOptions struct {
	page     string
	duration *timer.Event
}

func runTUI(opts tuiOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// The TUI owns the terminal: file sink only.
	log := newLogger(cfg, false)
	defer log.Close() //nolint:errcheck // best-effort close of the log file

	backend, err := kv.Open(cfg.Store.Driver, cfg.StorePath(), log)
	if err != nil {
		return fmt.Errorf("opening task store: %w", err)
	}
	defer backend.Close() //nolint:errcheck // writes are flushed per mutation

	store := schedule.New(backend, schedule.WithKey(cfg.StoreKey()), schedule.WithLogger(log))
	engine := timer.NewEngine(cfg.TimerSettings(),
		timer.WithSounder(timer.NewBell(os.Stderr)),
		timer.WithLogger(log))
	if opts.duration != nil {
		if _, err := engine.Dispatch(*opts.duration); err != nil {
			return err
		}
	}

	model := tui.NewApp(cfg, store, engine, tui.Options{StartPage: opts.page, Logger: log})
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startTUIWatcher(ctx, cfg, log, p)

	log.Info("tui started", logx.String("page", opts.page), logx.String("store", cfg.StorePath()))
	_, err = p.Run()
	return err
}

// startTUIWatcher reloads the TUI when another process rewrites the store.
func startTUIWatcher(ctx context.Context, cfg *config.Config, log logx.Logger, p *tea.Program) {
	path := cfg.StorePath()
	if path == "" {
		return // memory store: nothing on disk to watch
	}
	w, err := watcher.ForStore(path, func() { p.Send(tui.ReloadMsg{}) }, watcher.WithLogger(log))
	if err != nil {
		log.Warn("live reload disabled", logx.Err(err))
		return
	}
	defer w.Close()
	w.Run(ctx)
}
