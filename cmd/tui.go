package cmd

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/deskboard/internal/config"
	"github.com/twiced-technology-gmbh/deskboard/internal/tui"
	"github.com/twiced-technology-gmbh/deskboard/internal/watcher"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive board",
	Long: `Opens the Kanban board in the terminal. Cards can be moved with the
keyboard (H/J/K/L) or by dragging them with the mouse. Press tab for the
user directory.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return clierr.New(clierr.InvalidInput,
			"the interactive board needs a terminal; use 'deskboard board' or 'deskboard list' instead")
	}
	cfg, b, err := loadBoard()
	if err != nil {
		return err
	}
	quietLogging()

	model := tui.NewBoard(cfg, b)
	model.SetReseed(newBoard)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startTUIWatcher(ctx, cfg, model.WatchPaths(), p)

	_, err = p.Run()
	return err
}

// startTUIWatcher forwards config and seed file changes to the program.
// The watcher goroutine never touches the board; it only sends messages.
func startTUIWatcher(ctx context.Context, cfg *config.Config, paths []string, p *tea.Program) {
	if len(paths) == 0 {
		return
	}
	configPath, _ := filepath.Abs(cfg.ConfigPath())
	seedPath, _ := filepath.Abs(cfg.SeedPath())

	w, err := watcher.New(paths, func(changed []string) {
		for _, path := range changed {
			switch path {
			case configPath:
				fresh, err := config.Load(cfg.Dir())
				p.Send(tui.ConfigChangedMsg{Config: fresh, Err: err})
			case seedPath:
				p.Send(tui.SeedChangedMsg{})
			}
		}
	})
	if err != nil {
		logger.Warn("file watcher unavailable", "err", err)
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, func(err error) {
		p.Send(tui.ErrMsg{Err: err})
	})
}
