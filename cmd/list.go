package cmd

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/chikita/internal/clierr"
	"github.com/twiced-technology-gmbh/chikita/internal/clock"
	"github.com/twiced-technology-gmbh/chikita/internal/output"
	"github.com/twiced-technology-gmbh/chikita/internal/schedule"
	"github.com/twiced-technology-gmbh/chikita/internal/task"
)

// validGroupByFields lists the --group-by values list accepts.
var validGroupByFields = []string{"priority"}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `Lists tasks with optional filtering, sorting, and output format control.`,
	RunE:    runList,
}

func init() {
	addListFlags(listCmd.Flags())
	rootCmd.AddCommand(listCmd)
}

func addListFlags(fs *pflag.FlagSet) {
	fs.StringSlice("priority", nil, "filter by priority (comma-separated)")
	fs.Bool("completed", false, "show only completed tasks")
	fs.Bool("pending", false, "show only pending tasks")
	fs.StringP("search", "s", "", "search task text (case-insensitive)")
	fs.String("from", "", "show tasks overlapping the window starting at this time")
	fs.String("to", "", "end of the time window (exclusive)")
	fs.String("sort", "start", "sort field ("+strings.Join(schedule.SortFields(), ", ")+")")
	fs.BoolP("reverse", "r", false, "reverse sort order")
	fs.IntP("limit", "n", 0, "limit number of results")
	fs.String("group-by", "", "group results by field ("+strings.Join(validGroupByFields, ", ")+")")
}

func runList(cmd *cobra.Command, _ []string) error {
	filter, err := listFilter(cmd.Flags())
	if err != nil {
		return err
	}

	sortBy, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	limit, _ := cmd.Flags().GetInt("limit")
	groupBy, _ := cmd.Flags().GetString("group-by")

	if !slices.Contains(schedule.SortFields(), sortBy) {
		return clierr.Newf(clierr.InvalidInput, "invalid --sort field %q; valid: %s",
			sortBy, strings.Join(schedule.SortFields(), ", "))
	}
	if groupBy != "" && !slices.Contains(validGroupByFields, groupBy) {
		return clierr.Newf(clierr.InvalidGroupBy, "invalid --group-by field %q; valid: %s",
			groupBy, strings.Join(validGroupByFields, ", "))
	}

	return withStore(func(ws *workspace) error {
		tasks := schedule.Filter(ws.store.List(), filter)
		schedule.SortBy(tasks, sortBy, reverse)
		if limit > 0 && len(tasks) > limit {
			tasks = tasks[:limit]
		}

		if groupBy != "" {
			return outputGroupedList(tasks)
		}
		return outputTaskList(tasks)
	})
}

// listFilter builds the filter from the list flags.
func listFilter(fs *pflag.FlagSet) (schedule.FilterOptions, error) {
	var filter schedule.FilterOptions

	names, _ := fs.GetStringSlice("priority")
	for _, n := range names {
		p, err := task.ParsePriority(n)
		if err != nil {
			return filter, err
		}
		filter.Priorities = append(filter.Priorities, p)
	}

	completed, _ := fs.GetBool("completed")
	pending, _ := fs.GetBool("pending")
	switch {
	case completed && pending:
		return filter, clierr.New(clierr.InvalidInput, "use either --completed or --pending, not both")
	case completed:
		v := true
		filter.Completed = &v
	case pending:
		v := false
		filter.Completed = &v
	}

	filter.Search, _ = fs.GetString("search")

	from, _ := fs.GetString("from")
	to, _ := fs.GetString("to")
	if from != "" || to != "" {
		var err error
		filter.From, filter.To = 0, clock.EndOfDay
		if from != "" {
			if filter.From, err = parseClock("from", from); err != nil {
				return filter, err
			}
		}
		if to != "" {
			if filter.To, err = parseClock("to", to); err != nil {
				return filter, err
			}
		}
		if filter.To <= filter.From {
			return filter, clierr.New(clierr.InvalidRange, "--to must be after --from").
				WithDetails(map[string]any{"from": from, "to": to})
		}
	}
	return filter, nil
}

func outputGroupedList(tasks []task.Task) error {
	groups := schedule.GroupByPriority(tasks)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, groups)
	}
	output.GroupedTable(os.Stdout, groups)
	return nil
}

func outputTaskList(tasks []task.Task) error {
	switch outputFormat() {
	case output.FormatJSON:
		if tasks == nil {
			tasks = []task.Task{}
		}
		return output.JSON(os.Stdout, tasks)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, tasks)
	default:
		output.TaskTable(os.Stdout, tasks)
	}
	return nil
}
