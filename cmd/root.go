// Package cmd implements the deskboard CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/deskboard/internal/board"
	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/deskboard/internal/config"
	"github.com/twiced-technology-gmbh/deskboard/internal/output"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON     bool
	flagYAML     bool
	flagTable    bool
	flagCompact  bool
	flagDir      string
	flagNoColor  bool
	flagLogLevel string
)

// logger is configured in PersistentPreRunE and shared by all commands.
var logger = log.Default()

var rootCmd = &cobra.Command{
	Use:   "deskboard",
	Short: "Kanban board and admin dashboard for the terminal",
	Long: `deskboard is a four-column Kanban board (To Do, In Progress, Review, Done)
with a user directory and a metrics dashboard.
Run deskboard to open the TUI; the subcommands apply board operations and
print views for scripts.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagJSON, "json", false, "output as JSON")
	pf.BoolVar(&flagYAML, "yaml", false, "output as YAML")
	pf.BoolVar(&flagTable, "table", false, "output as table")
	pf.BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	pf.BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	pf.StringVar(&flagDir, "dir", "", "path to the deskboard config directory")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable color output")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error); overrides logging.level")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// Handle SilentError — exit with code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	if outputFormat().Structured() {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			writeError(cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error — wrap as INTERNAL_ERROR.
		writeError(clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Human mode: print to stderr.
	fmt.Fprintln(os.Stderr, "Error:", err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

func writeError(code, msg string, details map[string]any) {
	if outputFormat() == output.FormatYAML {
		_ = output.YAML(os.Stdout, output.ErrorResponse{Error: msg, Code: code, Details: details})
		return
	}
	output.JSONError(os.Stdout, code, msg, details)
}

// resolveDir returns the config directory: --dir when given, otherwise the
// nearest deskboard directory above the working directory.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return config.FindDir(cwd)
}

// loadConfig finds and loads the config. Without --dir and without a config
// directory anywhere above the working directory, the built-in defaults are
// used: the built-in seed and no activity log.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		if flagDir == "" && clierr.HasCode(err, clierr.BoardNotFound) {
			cfg := config.NewDefault("")
			return cfg, setupLogging(cfg)
		}
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	return cfg, setupLogging(cfg)
}

// loadSeed returns the seed tasks named by cfg. Malformed seed entries are
// skipped with a warning.
func loadSeed(cfg *config.Config) ([]*task.Task, error) {
	path := cfg.SeedPath()
	if path == "" {
		return task.DefaultSeed()
	}
	tasks, warnings, err := task.ReadSeed(path)
	if err != nil {
		return nil, err
	}
	printWarnings(warnings)
	return tasks, nil
}

// newBoard builds a fresh board from the configured seed, with the
// configured column titles and the activity log attached.
func newBoard(cfg *config.Config) (*board.Board, error) {
	seed, err := loadSeed(cfg)
	if err != nil {
		return nil, err
	}

	opts := []board.Option{
		board.WithTitles(cfg.Titles()),
		board.WithLogger(logger),
	}
	if path := cfg.ActivityLogPath(); path != "" {
		opts = append(opts, board.WithObserver(board.Recorder(path, logger)))
	}
	return board.New(seed, opts...)
}

// loadBoard loads the config and seeds a board from it.
func loadBoard() (*config.Config, *board.Board, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	b, err := newBoard(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, b, nil
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagYAML, flagTable, flagCompact)
}

// printWarnings writes seed read warnings to the log.
func printWarnings(warnings []task.ReadWarning) {
	for _, w := range warnings {
		logger.Warn("skipping malformed seed task", "warning", w.String())
	}
}

// optionalInt returns the value of an int flag, or nil when it was not set.
func optionalInt(fs *pflag.FlagSet, name string) *int {
	if !fs.Changed(name) {
		return nil
	}
	v, _ := fs.GetInt(name)
	return &v
}

// optionalString returns the value of a string flag, or nil when it was not
// set. An explicitly empty value is returned as a pointer to "".
func optionalString(fs *pflag.FlagSet, name string) *string {
	if !fs.Changed(name) {
		return nil
	}
	v, _ := fs.GetString(name)
	return &v
}
