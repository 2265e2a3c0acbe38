package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/chikita/internal/clierr"
	"github.com/twiced-technology-gmbh/chikita/internal/output"
	"github.com/twiced-technology-gmbh/chikita/internal/schedule"
	"github.com/twiced-technology-gmbh/chikita/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit ID[,ID,...]",
	Short: "Edit a task",
	Long: `Modifies an existing task. Only specified fields are changed; the ID and
completion state are kept. Multiple IDs can be provided as a comma-separated list.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	addTaskFlags(editCmd.Flags(), "new ")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ids, err := schedule.ParseIDs(args[0])
	if err != nil {
		return err
	}
	if !editFlagsChanged(cmd) {
		return clierr.New(clierr.InvalidInput, "nothing to change; pass --text, --start, --end, --duration or --priority")
	}

	return withStore(func(ws *workspace) error {
		if len(ids) == 1 {
			t, err := executeEdit(ws, ids[0], cmd)
			if err != nil {
				return err
			}
			if outputFormat() == output.FormatJSON {
				return output.JSON(os.Stdout, t)
			}
			output.Messagef(os.Stdout, "Updated task #%d: %s", t.ID, t.Text)
			return nil
		}

		return runBatch(ids, func(id int64) error {
			_, err := executeEdit(ws, id, cmd)
			return err
		})
	})
}

func editFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"text", "start", "end", "duration", "priority"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// executeEdit applies the changed flags to one task and logs the edit.
func executeEdit(ws *workspace, id int64, cmd *cobra.Command) (task.Task, error) {
	t, err := ws.store.Get(id)
	if err != nil {
		return task.Task{}, err
	}

	text := t.Text
	if cmd.Flags().Changed("text") {
		text, _ = cmd.Flags().GetString("text")
	}
	priority := t.Priority
	if cmd.Flags().Changed("priority") {
		if priority, err = priorityFlag(cmd.Flags()); err != nil {
			return task.Task{}, err
		}
	}
	start, end, err := applyRangeFlags(cmd.Flags(), t.Start, t.End)
	if err != nil {
		return task.Task{}, err
	}

	updated, err := ws.store.Edit(id, text, start, end, priority)
	if err != nil {
		return task.Task{}, err
	}
	logActivity(ws.cfg, "edit", updated.ID, updated.Text)
	return updated, nil
}
