package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/chikita/internal/clierr"
	"github.com/twiced-technology-gmbh/chikita/internal/config"
	"github.com/twiced-technology-gmbh/chikita/internal/kv"
	"github.com/twiced-technology-gmbh/chikita/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a chikita data directory",
	Long: `Creates a chikita directory with config.yml. Commands run anywhere below it
use this directory instead of the per-user one.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("driver", config.DefaultStoreDriver, "task store driver ("+strings.Join(kv.Drivers(), ", ")+")")
	initCmd.Flags().String("timer", config.DefaultTimer, "default timer duration")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	// Check if already initialized.
	if _, err := os.Stat(filepath.Join(absDir, config.ConfigFileName)); err == nil {
		return clierr.Newf(clierr.ConfigExists, "chikita already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	cfg := config.NewDefault()
	cfg.SetDir(absDir)

	driver, _ := cmd.Flags().GetString("driver")
	if !slices.Contains(kv.Drivers(), driver) {
		return clierr.Newf(clierr.InvalidInput, "invalid driver %q; allowed: %s",
			driver, strings.Join(kv.Drivers(), ", "))
	}
	cfg.Store.Driver = driver
	switch driver {
	case kv.DriverSQLite:
		cfg.Store.Path = config.DefaultSQLiteFile
	case kv.DriverMemory:
		cfg.Store.Path = ""
	}
	cfg.Timer.Default, _ = cmd.Flags().GetString("timer")

	if err := cfg.Validate(); err != nil {
		return err
	}

	const dirMode = 0o750
	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status": "initialized",
			"dir":    absDir,
			"config": cfg.ConfigPath(),
			"driver": cfg.Store.Driver,
			"store":  cfg.StorePath(),
		})
	}

	output.Messagef(os.Stdout, "Initialized chikita in %s", absDir)
	output.Messagef(os.Stdout, "  Config: %s", cfg.ConfigPath())
	if p := cfg.StorePath(); p != "" {
		output.Messagef(os.Stdout, "  Store:  %s (%s)", p, cfg.Store.Driver)
	} else {
		output.Messagef(os.Stdout, "  Store:  in memory (tasks are not saved)")
	}
	output.Messagef(os.Stdout, "  Timer:  %s", cfg.Timer.Default)
	return nil
}
