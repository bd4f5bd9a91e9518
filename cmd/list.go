package cmd

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deskboard/internal/board"
	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/deskboard/internal/output"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `Lists tasks with optional filtering, sorting, and output format control.`,
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringSlice("column", nil, "filter by column id (comma-separated)")
	listCmd.Flags().StringSlice("priority", nil, "filter by priority (comma-separated)")
	listCmd.Flags().String("assignee", "", "filter by assignee")
	listCmd.Flags().StringP("search", "s", "", "search title, description and assignee (case-insensitive)")
	listCmd.Flags().String("sort", board.SortBoard, "sort field ("+strings.Join(board.ValidSortFields(), ", ")+")")
	listCmd.Flags().BoolP("reverse", "r", false, "reverse sort order")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	listCmd.Flags().String("group-by", "", "group results by field ("+strings.Join(board.ValidGroupByFields(), ", ")+")")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	columns, _ := cmd.Flags().GetStringSlice("column")
	priorities, _ := cmd.Flags().GetStringSlice("priority")
	assignee, _ := cmd.Flags().GetString("assignee")
	search, _ := cmd.Flags().GetString("search")
	sortBy, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	limit, _ := cmd.Flags().GetInt("limit")
	groupBy, _ := cmd.Flags().GetString("group-by")

	for _, c := range columns {
		if err := task.ValidateStatus(c); err != nil {
			return err
		}
	}
	for _, p := range priorities {
		if err := task.ValidatePriority(p); err != nil {
			return err
		}
	}
	if !slices.Contains(board.ValidSortFields(), sortBy) {
		return clierr.Newf(clierr.InvalidSortField, "invalid --sort field %q; valid: %s",
			sortBy, strings.Join(board.ValidSortFields(), ", ")).
			WithDetails(map[string]any{"field": sortBy, "allowed": board.ValidSortFields()})
	}
	if limit < 0 {
		return clierr.Newf(clierr.InvalidInput, "--limit must be >= 0, got %d", limit)
	}
	if err := validateGroupBy(groupBy); err != nil {
		return err
	}

	_, b, err := loadBoard()
	if err != nil {
		return err
	}
	snap := b.Snapshot()

	tasks := board.List(snap, board.ListOptions{
		Filter: board.FilterOptions{
			Columns:    columns,
			Priorities: priorities,
			Assignee:   assignee,
			Search:     search,
		},
		SortBy:  sortBy,
		Reverse: reverse,
		Limit:   limit,
	})
	if tasks == nil {
		tasks = []*task.Task{}
	}

	format := outputFormat()
	if groupBy != "" {
		grouped := board.GroupBy(tasks, groupBy, snap.Titles())
		switch format {
		case output.FormatJSON, output.FormatYAML:
			return output.Structured(os.Stdout, format, grouped)
		case output.FormatCompact:
			output.GroupedCompact(os.Stdout, grouped)
		default:
			output.GroupedTable(os.Stdout, grouped)
		}
		return nil
	}

	switch format {
	case output.FormatJSON, output.FormatYAML:
		return output.Structured(os.Stdout, format, tasks)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, tasks)
	default:
		output.TaskTable(os.Stdout, tasks)
	}
	return nil
}
