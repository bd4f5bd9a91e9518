package config

import "fmt"

// migrate upgrades a config from its current version to CurrentVersion.
// Each migration function transforms the config one version forward.
// Returns nil if no migration is needed (already at current version).
// Returns an error if the config version is newer than what this binary supports.
func migrate(cfg *Config) error {
	if cfg.Version == CurrentVersion {
		return nil
	}
	if cfg.Version > CurrentVersion {
		return fmt.Errorf(
			"%w: config version %d is newer than supported version %d (upgrade deskboard)",
			ErrInvalid, cfg.Version, CurrentVersion,
		)
	}
	if cfg.Version < 1 {
		return fmt.Errorf("%w: config version %d is invalid", ErrInvalid, cfg.Version)
	}

	for cfg.Version < CurrentVersion {
		fn, ok := migrations[cfg.Version]
		if !ok {
			return fmt.Errorf("%w: no migration path from version %d", ErrInvalid, cfg.Version)
		}
		if err := fn(cfg); err != nil {
			return fmt.Errorf("migrating config from v%d: %w", cfg.Version, err)
		}
	}

	return nil
}

// migrations maps each version to the function that migrates it to the next version.
// The migration function must increment cfg.Version after a successful migration.
var migrations = map[int]func(*Config) error{
	1: migrateV1ToV2,
	2: migrateV2ToV3,
}

// migrateV1ToV2 adds theme, layout and notification preferences. v1 files
// only carried the board and its columns; a v1 file without columns gets
// the defaults.
func migrateV1ToV2(cfg *Config) error { //nolint:unparam // signature must match migrations map type
	if len(cfg.Columns) == 0 {
		cfg.Columns = DefaultColumns()
	}
	def := DefaultTheme()
	if cfg.Theme.Mode == "" {
		cfg.Theme.Mode = def.Mode
	}
	if cfg.Theme.Primary == "" {
		cfg.Theme.Primary = def.Primary
	}
	if cfg.Theme.Secondary == "" {
		cfg.Theme.Secondary = def.Secondary
	}
	cfg.Layout.SidebarOpen = true
	cfg.Notifications = DefaultNotifications()
	cfg.Version = 2
	return nil
}

// migrateV2ToV3 adds the table, tui and logging sections.
func migrateV2ToV3(cfg *Config) error { //nolint:unparam // signature must match migrations map type
	if cfg.Table.RowsPerPage == 0 {
		cfg.Table.RowsPerPage = DefaultRowsPerPage
	}
	if cfg.TUI.TitleLines == 0 {
		cfg.TUI.TitleLines = DefaultTitleLines
		cfg.TUI.BodyLines = DefaultBodyLines
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	cfg.Version = 3
	return nil
}
