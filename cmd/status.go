package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deskboard/internal/script"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

var statusCmd = &cobra.Command{
	Use:   "status ID COLUMN",
	Short: "Change a task's status",
	Long: `Moves a task to the end of COLUMN. Setting the status a task already has
leaves the board unchanged.`,
	Args: cobra.ExactArgs(2),
	RunE: runStatus,
}

func init() {
	addShowBoardFlag(statusCmd)
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := task.ValidateTaskID(args[0]); err != nil {
		return err
	}

	cfg, b, err := loadBoard()
	if err != nil {
		return err
	}

	op := script.Op{Op: script.OpStatus, ID: args[0], Column: args[1]}
	return applyOp(cmd, cfg, b, op, func(res script.StepResult) string {
		return fmt.Sprintf("Task %s is now %s%s", res.TaskID, res.Task.Status, unchanged(res))
	})
}
