package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/chikita/internal/output"
	"github.com/twiced-technology-gmbh/chikita/internal/schedule"
	"github.com/twiced-technology-gmbh/chikita/internal/task"
)

var doneCmd = &cobra.Command{
	Use:     "done ID[,ID,...]",
	Aliases: []string{"toggle"},
	Short:   "Toggle a task's completion",
	Long: `Flips the completed flag of each task: pending tasks are marked done and
done tasks are reopened.`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(_ *cobra.Command, args []string) error {
	ids, err := schedule.ParseIDs(args[0])
	if err != nil {
		return err
	}

	return withStore(func(ws *workspace) error {
		if len(ids) > 1 {
			return runBatch(ids, func(id int64) error {
				_, err := executeToggle(ws, id)
				return err
			})
		}

		t, err := executeToggle(ws, ids[0])
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, t)
		}
		if t.Completed {
			output.Messagef(os.Stdout, "Completed task #%d: %s", t.ID, t.Text)
		} else {
			output.Messagef(os.Stdout, "Reopened task #%d: %s", t.ID, t.Text)
		}
		return nil
	})
}

func executeToggle(ws *workspace, id int64) (task.Task, error) {
	t, err := ws.store.Toggle(id)
	if err != nil {
		return task.Task{}, err
	}
	action := "reopen"
	if t.Completed {
		action = "complete"
	}
	logActivity(ws.cfg, action, t.ID, t.Text)
	return t, nil
}
