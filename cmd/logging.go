package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/deskboard/internal/config"
)

const logFileMode = 0o600

// logSink is the open log file, if any. It stays open for the life of the
// process.
var logSink *os.File

// setupLogging configures the shared logger from --log-level and the
// logging section of cfg. Logs go to stderr as text, or to logging.file as
// logfmt when one is configured.
func setupLogging(cfg *config.Config) error {
	levelName := cfg.Logging.Level
	if flagLogLevel != "" {
		levelName = flagLogLevel
	}
	if levelName == "" {
		levelName = config.DefaultLogLevel
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return clierr.Newf(clierr.InvalidInput, "invalid log level %q", levelName).
			WithDetails(map[string]any{"level": levelName})
	}

	var w io.Writer = os.Stderr
	formatter := log.TextFormatter
	if path := cfg.LogFilePath(); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // path from trusted config
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		if logSink != nil {
			_ = logSink.Close()
		}
		logSink = f
		w = f
		formatter = log.LogfmtFormatter
	}

	logger = log.NewWithOptions(w, log.Options{
		Prefix:          "deskboard",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
		Formatter:       formatter,
	})
	log.SetDefault(logger)
	return nil
}

// quietLogging silences stderr logging while a full-screen UI owns the
// terminal. A configured log file keeps receiving entries.
func quietLogging() {
	if logSink == nil {
		logger.SetOutput(io.Discard)
	}
}
