// Package config handles deskboard configuration.
package config

import "github.com/twiced-technology-gmbh/deskboard/internal/task"

const (
	// DefaultDir is the default config directory name.
	DefaultDir = "deskboard"
	// DefaultBoardName is used when no name is given.
	DefaultBoardName = "deskboard"
	// DefaultSeedFile is the seed file written by init, relative to the config dir.
	DefaultSeedFile = "seed.yml"
	// DefaultActivityLog is the activity log file, relative to the config dir.
	DefaultActivityLog = "activity.jsonl"
	// DefaultTitleLines is the default number of title lines in TUI cards.
	DefaultTitleLines = 2
	// DefaultBodyLines is the default number of description lines in TUI cards.
	DefaultBodyLines = 1
	// DefaultRowsPerPage is the initial page size of the user table.
	DefaultRowsPerPage = 5
	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"

	// ConfigFileName is the name of the config file within the config directory.
	ConfigFileName = "config.yml"
	// LockFileName guards concurrent writers of the config file.
	LockFileName = ".config.lock"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 3
)

// Theme modes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Default palette.
const (
	DefaultPrimary   = "#556cd6"
	DefaultSecondary = "#19857b"
)

// DefaultColumns returns the four board columns with their default titles.
func DefaultColumns() []ColumnConfig {
	ids := task.Statuses()
	cols := make([]ColumnConfig, 0, len(ids))
	for _, id := range ids {
		cols = append(cols, ColumnConfig{ID: id, Title: task.DefaultTitle(id)})
	}
	return cols
}

// DefaultTheme returns the dark theme with the default palette.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{Mode: ThemeDark, Primary: DefaultPrimary, Secondary: DefaultSecondary}
}

// DefaultNotifications enables email and push, disables monthly reports.
func DefaultNotifications() NotificationConfig {
	return NotificationConfig{Email: true, Push: true, Monthly: false}
}
