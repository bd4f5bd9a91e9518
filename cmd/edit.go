package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/deskboard/internal/script"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a task's title or description",
	Long: `Replaces the title and/or description of a task. Fields that are not
given keep their current value. The task's id, priority, assignee, date and
position never change.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringP("title", "t", "", "new title")
	editCmd.Flags().StringP("description", "d", "", "new description (markdown)")
	addShowBoardFlag(editCmd)
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if err := task.ValidateTaskID(args[0]); err != nil {
		return err
	}
	title := optionalString(cmd.Flags(), "title")
	desc := optionalString(cmd.Flags(), "description")
	if title == nil && desc == nil {
		return clierr.New(clierr.NoChanges, "no changes specified; use --title or --description")
	}

	cfg, b, err := loadBoard()
	if err != nil {
		return err
	}

	op := script.Op{Op: script.OpEdit, ID: args[0], Title: title, Description: desc}
	return applyOp(cmd, cfg, b, op, func(res script.StepResult) string {
		return fmt.Sprintf("Edited task %s: %s%s", res.TaskID, res.Task.Title, unchanged(res))
	})
}
