package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/chikita/internal/clierr"
	"github.com/twiced-technology-gmbh/chikita/internal/output"
	"github.com/twiced-technology-gmbh/chikita/internal/schedule"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Long:  `Displays full details of a single task.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	ids, err := schedule.ParseIDs(args[0])
	if err != nil {
		return err
	}
	if len(ids) != 1 {
		return clierr.New(clierr.InvalidTaskID, "show takes a single task ID")
	}

	return withStore(func(ws *workspace) error {
		t, err := ws.store.Get(ids[0])
		if err != nil {
			return err
		}

		switch outputFormat() {
		case output.FormatJSON:
			return output.JSON(os.Stdout, t)
		case output.FormatCompact:
			output.TaskDetailCompact(os.Stdout, t)
		default:
			output.TaskDetail(os.Stdout, t)
		}
		return nil
	})
}
