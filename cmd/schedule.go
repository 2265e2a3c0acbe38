package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/chikita/internal/output"
)

var scheduleCmd = &cobra.Command{
	Use:     "schedule",
	Aliases: []string{"overview"},
	Short:   "Show the day's schedule overview",
	Long:    `Shows the summary, the chronological timeline and the breakdown by priority.`,
	Args:    cobra.NoArgs,
	RunE:    runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(_ *cobra.Command, _ []string) error {
	return withStore(func(ws *workspace) error {
		s := output.Schedule{
			Summary:  ws.store.Summary(),
			Timeline: ws.store.SortedByStart(),
			Groups:   ws.store.Groups(),
		}

		switch outputFormat() {
		case output.FormatJSON:
			return output.JSON(os.Stdout, s)
		case output.FormatCompact:
			output.ScheduleCompact(os.Stdout, s)
		default:
			output.ScheduleTable(os.Stdout, s)
		}
		return nil
	})
}
