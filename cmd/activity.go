package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deskboard/internal/board"
	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/deskboard/internal/output"
)

const defaultActivityLimit = 20

var activityCmd = &cobra.Command{
	Use:     "activity",
	Aliases: []string{"log"},
	Short:   "Show recent board activity",
	Long: `Prints the most recent entries of the activity log, oldest first. Every
board mutation made by the CLI or the TUI is recorded when a config
directory is in use.`,
	Args: cobra.NoArgs,
	RunE: runActivity,
}

func init() {
	activityCmd.Flags().IntP("limit", "n", defaultActivityLimit, "number of entries to show (0 for all)")
	rootCmd.AddCommand(activityCmd)
}

func runActivity(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.ActivityLogPath()
	if path == "" {
		return clierr.New(clierr.BoardNotFound, "no activity log without a config directory (run 'deskboard init')")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return clierr.Newf(clierr.InvalidInput, "--limit must be >= 0, got %d", limit)
	}

	entries, err := board.ReadLog(path, limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []board.LogEntry{}
	}

	format := outputFormat()
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return output.Structured(os.Stdout, format, entries)
	case output.FormatCompact:
		output.ActivityCompact(os.Stdout, entries)
	default:
		output.ActivityTable(os.Stdout, entries)
	}
	return nil
}
