package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deskboard/internal/board"
	"github.com/twiced-technology-gmbh/deskboard/internal/script"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

var moveCmd = &cobra.Command{
	Use:     "move ID COLUMN",
	Aliases: []string{"mv"},
	Short:   "Move a task to a column position",
	Long: `Moves a task into COLUMN. Without --index the task goes to the end of the
column. --index is the position the task should occupy afterwards.

--from-index asserts where the task currently sits in its column; the move
is rejected with INDEX_MISMATCH when the board disagrees.`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

func init() {
	moveCmd.Flags().IntP("index", "i", 0, "destination index within the column (default: end)")
	moveCmd.Flags().Int("from-index", 0, "expected current index of the task")
	addShowBoardFlag(moveCmd)
	rootCmd.AddCommand(moveCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	if err := task.ValidateTaskID(args[0]); err != nil {
		return err
	}
	if err := task.ValidateStatus(args[1]); err != nil {
		return err
	}

	cfg, b, err := loadBoard()
	if err != nil {
		return err
	}

	op := script.Op{
		Op:        script.OpMove,
		ID:        args[0],
		Column:    args[1],
		Index:     optionalInt(cmd.Flags(), "index"),
		FromIndex: optionalInt(cmd.Flags(), "from-index"),
	}
	return applyOp(cmd, cfg, b, op, func(res script.StepResult) string {
		return describeMove(b, res)
	})
}

// describeMove names the task's new position, falling back to its column
// when the board no longer knows where it sits.
func describeMove(b *board.Board, res script.StepResult) string {
	where := ""
	if loc, err := b.Locate(res.TaskID); err == nil {
		where = loc.String()
	} else if res.Task != nil {
		where = res.Task.Status
	}
	return fmt.Sprintf("Moved task %s to %s%s", res.TaskID, where, unchanged(res))
}
