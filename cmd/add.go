package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deskboard/internal/script"
)

var addCmd = &cobra.Command{
	Use:     "add COLUMN TITLE",
	Aliases: []string{"create"},
	Short:   "Add a task to a column",
	Long: `Appends a new task to the end of COLUMN. The title must not be blank.
The new task gets a fresh id, medium priority, no assignee and today's date.`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringP("description", "d", "", "task description (markdown)")
	addShowBoardFlag(addCmd)
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, b, err := loadBoard()
	if err != nil {
		return err
	}

	title := args[1]
	op := script.Op{
		Op:          script.OpAdd,
		Column:      args[0],
		Title:       &title,
		Description: optionalString(cmd.Flags(), "description"),
	}
	return applyOp(cmd, cfg, b, op, func(res script.StepResult) string {
		return fmt.Sprintf("Added task %s to %s: %s", res.TaskID, res.Task.Status, res.Task.Title)
	})
}
