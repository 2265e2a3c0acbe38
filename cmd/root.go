// Package cmd implements the chikita CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/chikita/internal/clierr"
	"github.com/twiced-technology-gmbh/chikita/internal/config"
	"github.com/twiced-technology-gmbh/chikita/internal/filelock"
	"github.com/twiced-technology-gmbh/chikita/internal/kv"
	"github.com/twiced-technology-gmbh/chikita/internal/logx"
	"github.com/twiced-technology-gmbh/chikita/internal/output"
	"github.com/twiced-technology-gmbh/chikita/internal/schedule"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON     bool
	flagTable    bool
	flagCompact  bool
	flagDir      string
	flagNoColor  bool
	flagLogLevel string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "chikita",
	Short: "Day planner with a focus timer",
	Long: `chikita plans your day in timed blocks and keeps you on task with a
countdown timer. Run chikita with no arguments to open the TUI.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runTUI(tuiOptions{page: ""})
	},
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to the chikita data directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "also log to stderr")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// Batch commands already printed their results.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	if outputFormat() == output.FormatJSON {
		os.Exit(output.ErrorEnvelope(os.Stdout, err))
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// loadConfig loads the config from --dir, or resolves it from the working
// directory, falling back to the per-user directory.
func loadConfig() (*config.Config, error) {
	if flagDir != "" {
		cfg, err := config.Load(flagDir)
		if errors.Is(err, config.ErrNotFound) {
			return nil, fmt.Errorf("no chikita config in %s (run chikita init --dir %s): %w", flagDir, flagDir, err)
		}
		return cfg, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return config.Resolve(cwd)
}

// newLogger builds the command logger. console adds the stderr sink when
// --verbose is set.
func newLogger(cfg *config.Config, console bool) logx.Logger {
	log, err := logx.New(cfg.LoggerConfig(flagLogLevel, console && flagVerbose))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
		return logx.Nop()
	}
	return log
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// workspace is one command's view of the data directory.
type workspace struct {
	cfg   *config.Config
	log   logx.Logger
	store *schedule.Store
}

// withStore loads the config, opens the task store and runs fn while holding
// the data directory lock, so concurrent commands never lose each other's
// writes. A persistence failure during fn fails the command.
func withStore(fn func(ws *workspace) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg, true)
	defer log.Close() //nolint:errcheck // best-effort close of the log file

	return filelock.With(cfg.LockPath(), func() error {
		backend, err := kv.Open(cfg.Store.Driver, cfg.StorePath(), log)
		if err != nil {
			return fmt.Errorf("opening task store: %w", err)
		}
		defer backend.Close() //nolint:errcheck // read-mostly; writes already flushed

		ws := &workspace{
			cfg:   cfg,
			log:   log,
			store: schedule.New(backend, schedule.WithKey(cfg.StoreKey()), schedule.WithLogger(log)),
		}
		if err := fn(ws); err != nil {
			return err
		}
		if err := ws.store.Err(); err != nil {
			return fmt.Errorf("saving tasks: %w", err)
		}
		return nil
	})
}

// logActivity appends an entry to the activity log. Errors are silently
// discarded because logging should never fail a command.
func logActivity(cfg *config.Config, action string, id int64, detail string) {
	schedule.RecordActivity(cfg.Dir(), action, id, detail)
}

// runBatch executes fn for each ID and collects results. Returns a SilentError
// with exit code 1 if any operation failed (after outputting results).
func runBatch(ids []int64, fn func(int64) error) error {
	results := make([]output.BatchResult, 0, len(ids))
	anyFailed := false

	for _, id := range ids {
		err := fn(id)
		if err != nil {
			anyFailed = true
			var cliErr *clierr.Error
			if errors.As(err, &cliErr) {
				results = append(results, output.BatchResult{ID: id, OK: false, Error: cliErr.Message, Code: cliErr.Code})
			} else {
				results = append(results, output.BatchResult{ID: id, OK: false, Error: err.Error()})
			}
		} else {
			results = append(results, output.BatchResult{ID: id, OK: true})
		}
	}

	if outputFormat() == output.FormatJSON {
		if err := output.JSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		var succeeded int
		for _, r := range results {
			if r.OK {
				succeeded++
			} else {
				fmt.Fprintf(os.Stderr, "Error: task #%d: %s\n", r.ID, r.Error)
			}
		}
		output.Messagef(os.Stdout, "Completed %d/%d operations", succeeded, len(ids))
	}

	if anyFailed {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}
