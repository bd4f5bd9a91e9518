package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deskboard/internal/board"
	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/deskboard/internal/config"
	"github.com/twiced-technology-gmbh/deskboard/internal/output"
	"github.com/twiced-technology-gmbh/deskboard/internal/watcher"
)

var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"summary"},
	Short:   "Show board summary",
	Long: `Displays a summary of the board: task counts per column and the priority
and assignee distribution. Use --cards to print every column with its cards.

Use --watch to keep the display live-updating. The board re-renders whenever
the config or seed file changes on disk. Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().BoolP("watch", "w", false, "live-update the board on file changes")
	boardCmd.Flags().Bool("cards", false, "show every column with its cards")
	boardCmd.Flags().String("group-by", "", "group board by field ("+strings.Join(board.ValidGroupByFields(), ", ")+")")
	rootCmd.AddCommand(boardCmd)
}

type boardView struct {
	groupBy string
	cards   bool
}

func runBoard(cmd *cobra.Command, _ []string) error {
	groupBy, _ := cmd.Flags().GetString("group-by")
	if err := validateGroupBy(groupBy); err != nil {
		return err
	}
	cards, _ := cmd.Flags().GetBool("cards")
	watch, _ := cmd.Flags().GetBool("watch")
	view := boardView{groupBy: groupBy, cards: cards}

	cfg, b, err := loadBoard()
	if err != nil {
		return err
	}

	if err := renderBoard(cfg, b.Snapshot(), view); err != nil {
		return err
	}

	if !watch {
		return nil
	}
	if cfg.Dir() == "" {
		return clierr.New(clierr.BoardNotFound, "--watch needs a config directory (run 'deskboard init' to create one)")
	}
	return watchBoard(cfg, view)
}

func validateGroupBy(groupBy string) error {
	if groupBy != "" && !slices.Contains(board.ValidGroupByFields(), groupBy) {
		return clierr.Newf(clierr.InvalidGroupBy, "invalid --group-by field %q; valid: %s",
			groupBy, strings.Join(board.ValidGroupByFields(), ", ")).
			WithDetails(map[string]any{"field": groupBy, "allowed": board.ValidGroupByFields()})
	}
	return nil
}

func renderBoard(cfg *config.Config, snap board.Snapshot, view boardView) error {
	format := outputFormat()

	switch {
	case view.groupBy != "":
		grouped := board.GroupBy(snap.Ordered(), view.groupBy, snap.Titles())
		switch format {
		case output.FormatJSON, output.FormatYAML:
			return output.Structured(os.Stdout, format, grouped)
		case output.FormatCompact:
			output.GroupedCompact(os.Stdout, grouped)
		default:
			output.GroupedTable(os.Stdout, grouped)
		}
	case view.cards:
		printBoard(cfg, snap)
	default:
		summary := board.Summary(cfg.Board.Name, snap)
		switch format {
		case output.FormatJSON, output.FormatYAML:
			return output.Structured(os.Stdout, format, summary)
		case output.FormatCompact:
			output.OverviewCompact(os.Stdout, summary)
		default:
			output.OverviewTable(os.Stdout, summary)
		}
	}
	return nil
}

// printBoard writes the full board in the current output format.
func printBoard(cfg *config.Config, snap board.Snapshot) {
	format := outputFormat()
	switch format {
	case output.FormatJSON, output.FormatYAML:
		_ = output.Structured(os.Stdout, format, snap)
	case output.FormatCompact:
		output.BoardCompact(os.Stdout, snap)
	default:
		output.BoardTable(os.Stdout, cfg.Board.Name, snap)
	}
}

func watchBoard(cfg *config.Config, view boardView) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New([]string{cfg.ConfigPath(), cfg.SeedPath()}, func([]string) {
		clearScreen()
		// Re-load config in case the seed file or column titles changed.
		freshCfg, loadErr := config.Load(cfg.Dir())
		if loadErr != nil {
			logger.Warn("reloading config", "err", loadErr)
			freshCfg = cfg
		}
		b, buildErr := newBoard(freshCfg)
		if buildErr != nil {
			logger.Warn("reseeding board", "err", buildErr)
			return
		}
		if renderErr := renderBoard(freshCfg, b.Snapshot(), view); renderErr != nil {
			logger.Warn("rendering board", "err", renderErr)
		}
	})
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer w.Close()

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	w.Run(ctx, func(watchErr error) {
		logger.Warn("file watcher", "err", watchErr)
	})

	return nil
}

// clearScreen sends ANSI escape codes to clear the terminal and move the
// cursor to the top-left corner.
func clearScreen() {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}
