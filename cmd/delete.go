package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/chikita/internal/clierr"
	"github.com/twiced-technology-gmbh/chikita/internal/output"
	"github.com/twiced-technology-gmbh/chikita/internal/schedule"
	"github.com/twiced-technology-gmbh/chikita/internal/task"
)

var deleteCmd = &cobra.Command{
	Use:     "delete ID[,ID,...]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Removes a task permanently. Prompts for confirmation in interactive mode.
Multiple IDs can be provided as a comma-separated list (requires --yes).`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids, err := schedule.ParseIDs(args[0])
	if err != nil {
		return err
	}
	yes, _ := cmd.Flags().GetBool("yes")

	if len(ids) > 1 {
		if !yes {
			return clierr.New(clierr.ConfirmationReq, "batch delete requires --yes")
		}
		return withStore(func(ws *workspace) error {
			return runBatch(ids, func(id int64) error {
				_, err := executeDelete(ws, id)
				return err
			})
		})
	}

	if !yes {
		ok, err := confirmDelete(ids[0])
		if err != nil || !ok {
			return err
		}
	}

	var deleted task.Task
	err = withStore(func(ws *workspace) error {
		t, err := executeDelete(ws, ids[0])
		deleted = t
		return err
	})
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status": "deleted",
			"id":     deleted.ID,
			"text":   deleted.Text,
		})
	}
	output.Messagef(os.Stdout, "Deleted task #%d: %s", deleted.ID, deleted.Text)
	return nil
}

// confirmDelete asks on the terminal before deleting id. The store lock is
// not held while waiting for the answer.
func confirmDelete(id int64) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec // fd fits in int
		return false, clierr.New(clierr.ConfirmationReq,
			"cannot prompt for confirmation (not a terminal); use --yes")
	}
	var t task.Task
	err := withStore(func(ws *workspace) error {
		var err error
		t, err = ws.store.Get(id)
		return err
	})
	if err != nil {
		return false, err
	}
	ok := askYesNo(os.Stdin, os.Stderr, fmt.Sprintf("Delete task #%d %q?", t.ID, t.Text))
	if !ok {
		fmt.Fprintln(os.Stderr, "Canceled.")
	}
	return ok, nil
}

// askYesNo prints question and reports whether the reply was y or yes.
func askYesNo(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// executeDelete removes the task and logs the delete action.
func executeDelete(ws *workspace, id int64) (task.Task, error) {
	t, err := ws.store.Get(id)
	if err != nil {
		return task.Task{}, err
	}
	if err := ws.store.Delete(id); err != nil {
		return task.Task{}, err
	}
	logActivity(ws.cfg, "delete", t.ID, t.Text)
	return t, nil
}
