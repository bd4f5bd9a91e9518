package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deskboard/internal/board"
	"github.com/twiced-technology-gmbh/deskboard/internal/config"
	"github.com/twiced-technology-gmbh/deskboard/internal/output"
	"github.com/twiced-technology-gmbh/deskboard/internal/script"
)

// addShowBoardFlag registers --show-board on a mutating command.
func addShowBoardFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("show-board", false, "print the resulting board after the operation")
}

// applyOp runs a single board operation against b and prints its outcome.
// describe renders the human-readable confirmation for a successful step.
func applyOp(cmd *cobra.Command, cfg *config.Config, b *board.Board, op script.Op, describe func(script.StepResult) string) error {
	res := script.Exec(b, op, nil)
	if !res.OK {
		return res.Err()
	}
	res.Step = 1

	showBoard, _ := cmd.Flags().GetBool("show-board")
	format := outputFormat()
	switch format {
	case output.FormatJSON, output.FormatYAML:
		if showBoard {
			return output.Structured(os.Stdout, format, opWithBoard{StepResult: res, Board: b.Snapshot()})
		}
		return output.Structured(os.Stdout, format, res)
	case output.FormatCompact:
		output.ScriptCompact(os.Stdout, script.Report{Steps: []script.StepResult{res}, Applied: 1})
	default:
		output.Messagef(os.Stdout, "%s", describe(res))
	}

	if showBoard {
		printBoard(cfg, b.Snapshot())
	}
	return nil
}

// opWithBoard is the structured output of an operation run with --show-board.
type opWithBoard struct {
	script.StepResult `yaml:",inline"`
	Board             board.Snapshot `json:"board" yaml:"board"`
}

// unchanged returns suffix when the step was a no-op.
func unchanged(res script.StepResult) string {
	if res.Changed {
		return ""
	}
	return " (no change)"
}
