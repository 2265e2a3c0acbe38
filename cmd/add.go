package cmd

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/chikita/internal/clierr"
	"github.com/twiced-technology-gmbh/chikita/internal/clock"
	"github.com/twiced-technology-gmbh/chikita/internal/output"
	"github.com/twiced-technology-gmbh/chikita/internal/task"
	"github.com/twiced-technology-gmbh/chikita/internal/timer"
)

var addCmd = &cobra.Command{
	Use:     "add [TEXT]",
	Aliases: []string{"create"},
	Short:   "Add a task to the planner",
	Long: `Adds a timed task. Text can be given as a positional argument or via --text.

Times accept 9, 9:30, 09:30, 21:30, 9pm or 9:30 PM. Without --start and --end
the configured default range is used. --duration sets the end relative to the
start (45m, 1h30m or a bare minute count).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addTaskFlags(addCmd.Flags(), "")
	rootCmd.AddCommand(addCmd)
}

// addTaskFlags registers the task field flags shared by add and edit.
// prefix is prepended to the help text ("new " for edit).
func addTaskFlags(fs *pflag.FlagSet, prefix string) {
	fs.String("text", "", prefix+"task text")
	fs.String("start", "", prefix+"start time")
	fs.String("end", "", prefix+"end time")
	fs.String("duration", "", prefix+"length instead of --end")
	fs.StringP("priority", "p", "", prefix+"priority (low, medium, high, none; easy/med/hard accepted)")
	fs.SetNormalizeFunc(normalizeTaskFlags)
}

// normalizeTaskFlags accepts the planner's alternative flag names.
func normalizeTaskFlags(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "from":
		name = "start"
	case "to", "until":
		name = "end"
	case "title", "description":
		name = "text"
	case "for":
		name = "duration"
	}
	return pflag.NormalizedName(name)
}

func runAdd(cmd *cobra.Command, args []string) error {
	text, err := resolveAddText(cmd, args)
	if err != nil {
		return err
	}
	priority, err := priorityFlag(cmd.Flags())
	if err != nil {
		return err
	}

	return withStore(func(ws *workspace) error {
		start, end := ws.cfg.DefaultRange()
		start, end, err := applyRangeFlags(cmd.Flags(), start, end)
		if err != nil {
			return err
		}

		t, err := ws.store.Add(text, start, end, priority)
		if err != nil {
			return err
		}
		logActivity(ws.cfg, "add", t.ID, t.Text)

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, t)
		}
		output.Messagef(os.Stdout, "Added task #%d: %s", t.ID, t.Text)
		output.Messagef(os.Stdout, "  %s - %s | Priority: %s",
			clock.Format(t.Start), clock.Format(t.End), t.Priority)
		return nil
	})
}

// resolveAddText returns the task text from either the positional arg or --text flag.
func resolveAddText(cmd *cobra.Command, args []string) (string, error) {
	flagText, _ := cmd.Flags().GetString("text")
	hasPositional := len(args) > 0
	hasFlag := flagText != ""

	switch {
	case hasPositional && hasFlag:
		return "", clierr.New(clierr.InvalidInput,
			"text provided both as argument and --text flag; use one or the other")
	case hasPositional:
		return args[0], nil
	case hasFlag:
		return flagText, nil
	default:
		return "", errors.New("text is required: provide it as an argument or with --text")
	}
}

// priorityFlag parses --priority; unset means none.
func priorityFlag(fs *pflag.FlagSet) (task.Priority, error) {
	v, _ := fs.GetString("priority")
	return task.ParsePriority(v)
}

// applyRangeFlags overrides start and end from --start, --end and --duration.
// Moving only the start keeps the task's length.
func applyRangeFlags(fs *pflag.FlagSet, start, end int) (int, int, error) {
	length := end - start
	if v, _ := fs.GetString("start"); v != "" {
		m, err := parseClock("start", v)
		if err != nil {
			return 0, 0, err
		}
		start = m
		end = min(start+length, clock.EndOfDay)
	}

	endFlag, _ := fs.GetString("end")
	durFlag, _ := fs.GetString("duration")
	switch {
	case endFlag != "" && durFlag != "":
		return 0, 0, clierr.New(clierr.InvalidInput, "use either --end or --duration, not both")
	case endFlag != "":
		m, err := parseClock("end", endFlag)
		if err != nil {
			return 0, 0, err
		}
		end = m
	case durFlag != "":
		d, err := timer.ParseDuration(durFlag)
		if err != nil || d <= 0 {
			return 0, 0, clierr.Newf(clierr.InvalidInput, "invalid duration %q", durFlag).
				WithDetails(map[string]any{"duration": durFlag})
		}
		end = start + int(d/time.Minute)
	}
	return start, end, nil
}

// parseClock parses a clock flag value into minutes since midnight.
func parseClock(flag, value string) (int, error) {
	m, err := clock.Parse(value)
	if err != nil {
		return 0, clierr.New(clierr.InvalidTime, strings.TrimSpace(err.Error())).
			WithDetails(map[string]any{"flag": flag, "value": value})
	}
	return m, nil
}
