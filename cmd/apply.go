package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deskboard/internal/board"
	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/deskboard/internal/output"
	"github.com/twiced-technology-gmbh/deskboard/internal/script"
)

var applyCmd = &cobra.Command{
	Use:   "apply FILE",
	Short: "Apply a script of board operations",
	Long: `Applies a YAML or TOML script of operations (add, move, status, edit,
delete) to one board, in order. Use - to read YAML from stdin.

Later steps can refer to a task created by an earlier add step as "$N",
where N is the 1-based step number. The run stops at the first failing step
unless --keep-going is set. The exit code is 1 when any step failed.

Example:
  ops:
    - op: add
      column: todo
      title: Write release notes
    - op: move
      id: $1
      column: review
      index: 0`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolP("keep-going", "k", false, "continue after a failing step")
	addShowBoardFlag(applyCmd)
	rootCmd.AddCommand(applyCmd)
}

// applyResult is the structured output of apply --show-board.
type applyResult struct {
	script.Report `yaml:",inline"`
	Board         board.Snapshot `json:"board" yaml:"board"`
}

func runApply(cmd *cobra.Command, args []string) error {
	ops, err := script.Load(args[0], os.Stdin)
	if err != nil {
		return err
	}

	cfg, b, err := loadBoard()
	if err != nil {
		return err
	}

	keepGoing, _ := cmd.Flags().GetBool("keep-going")
	showBoard, _ := cmd.Flags().GetBool("show-board")
	rep := script.Run(b, ops, keepGoing)
	logger.Debug("script applied", "steps", len(ops), "applied", rep.Applied, "failed", rep.Failed)

	format := outputFormat()
	switch format {
	case output.FormatJSON, output.FormatYAML:
		var data any = rep
		if showBoard {
			data = applyResult{Report: rep, Board: b.Snapshot()}
		}
		if err := output.Structured(os.Stdout, format, data); err != nil {
			return err
		}
	case output.FormatCompact:
		output.ScriptCompact(os.Stdout, rep)
	default:
		output.ScriptTable(os.Stdout, rep)
	}

	if showBoard && !format.Structured() {
		printBoard(cfg, b.Snapshot())
	}
	if rep.Failed > 0 {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}
