package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/chikita/internal/timer"
	"github.com/twiced-technology-gmbh/chikita/internal/tui"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Open the focus timer",
	Long: `Opens the TUI on the focus timer page. --hours and --minutes load a custom
duration; without them the configured default is used.`,
	Args: cobra.NoArgs,
	RunE: runTimer,
}

func init() {
	timerCmd.Flags().Int("hours", 0, "hours of the custom duration")
	timerCmd.Flags().Int("minutes", 0, "minutes of the custom duration")
	rootCmd.AddCommand(timerCmd)
}

func runTimer(cmd *cobra.Command, _ []string) error {
	opts := tuiOptions{page: tui.PageTimer}
	if cmd.Flags().Changed("hours") || cmd.Flags().Changed("minutes") {
		h, _ := cmd.Flags().GetInt("hours")
		m, _ := cmd.Flags().GetInt("minutes")
		ev := timer.SetDuration(h, m)
		// Reject bad durations before taking over the terminal.
		if _, _, err := timer.Step(timer.DefaultConfig(), timer.Session{}, ev); err != nil {
			return err
		}
		opts.duration = &ev
	}
	return runTUI(opts)
}
