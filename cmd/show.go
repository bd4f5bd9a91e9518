package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deskboard/internal/board"
	"github.com/twiced-technology-gmbh/deskboard/internal/output"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Long:  `Displays full details of a single task, including its column position.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// taskDetail is the structured form of show: the task plus where it sits.
type taskDetail struct {
	task.Task `yaml:",inline"`
	Location  board.Location `json:"location" yaml:"location"`
}

func runShow(_ *cobra.Command, args []string) error {
	if err := task.ValidateTaskID(args[0]); err != nil {
		return err
	}

	_, b, err := loadBoard()
	if err != nil {
		return err
	}

	t, err := b.Task(args[0])
	if err != nil {
		return err
	}
	loc, err := b.Locate(t.ID)
	if err != nil {
		return err
	}

	format := outputFormat()
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return output.Structured(os.Stdout, format, taskDetail{Task: t, Location: loc})
	case output.FormatCompact:
		output.TaskDetailCompact(os.Stdout, &t, loc)
	default:
		col, _ := b.Snapshot().Column(loc.Column)
		output.TaskDetail(os.Stdout, &t, col.Title, loc)
	}
	return nil
}
