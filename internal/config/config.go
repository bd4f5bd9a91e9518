package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/charmbracelet/log"
	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/deskboard/internal/table"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// ErrInvalid marks config validation failures.
var ErrInvalid = errors.New("invalid config")

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Config is the deskboard configuration.
type Config struct {
	Version       int                `yaml:"version"`
	Board         BoardConfig        `yaml:"board"`
	Columns       []ColumnConfig     `yaml:"columns"`
	SeedFile      string             `yaml:"seed_file,omitempty"`
	ActivityLog   string             `yaml:"activity_log,omitempty"`
	Theme         ThemeConfig        `yaml:"theme"`
	Layout        LayoutConfig       `yaml:"layout"`
	Notifications NotificationConfig `yaml:"notifications"`
	Table         TableConfig        `yaml:"table"`
	TUI           TUIConfig          `yaml:"tui"`
	Logging       LoggingConfig      `yaml:"logging"`

	// dir is the absolute path to the config directory (not serialized).
	// Empty for the in-memory default.
	dir string `yaml:"-"`
}

// BoardConfig holds board metadata.
type BoardConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// ColumnConfig sets the display title of one fixed column.
type ColumnConfig struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
}

// UnmarshalYAML accepts either a bare column id ("todo") or a mapping
// ({id: todo, title: Backlog}). A bare id gets the default title.
func (c *ColumnConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		c.ID = value.Value
		c.Title = task.DefaultTitle(value.Value)
		return nil
	}
	type plain ColumnConfig
	return value.Decode((*plain)(c))
}

// ThemeConfig holds the UI palette.
type ThemeConfig struct {
	Mode      string `yaml:"mode" json:"mode"`
	Primary   string `yaml:"primary" json:"primary"`
	Secondary string `yaml:"secondary" json:"secondary"`
}

// LayoutConfig holds layout preferences.
type LayoutConfig struct {
	SidebarOpen bool `yaml:"sidebar_open" json:"sidebar_open"`
}

// NotificationConfig holds notification preferences.
type NotificationConfig struct {
	Email   bool `yaml:"email" json:"email"`
	Push    bool `yaml:"push" json:"push"`
	Monthly bool `yaml:"monthly" json:"monthly"`
}

// TableConfig holds user table settings.
type TableConfig struct {
	RowsPerPage int `yaml:"rows_per_page" json:"rows_per_page"`
}

// TUIConfig holds TUI-specific display settings.
type TUIConfig struct {
	TitleLines int `yaml:"title_lines" json:"title_lines"`
	BodyLines  int `yaml:"body_lines" json:"body_lines"`
}

// LoggingConfig holds logging settings. File is relative to the config dir.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file,omitempty" json:"file,omitempty"`
}

// NewDefault creates a Config with default values and no directory.
func NewDefault(name string) *Config {
	if name == "" {
		name = DefaultBoardName
	}
	return &Config{
		Version:       CurrentVersion,
		Board:         BoardConfig{Name: name},
		Columns:       DefaultColumns(),
		SeedFile:      DefaultSeedFile,
		ActivityLog:   DefaultActivityLog,
		Theme:         DefaultTheme(),
		Layout:        LayoutConfig{SidebarOpen: true},
		Notifications: DefaultNotifications(),
		Table:         TableConfig{RowsPerPage: DefaultRowsPerPage},
		TUI:           TUIConfig{TitleLines: DefaultTitleLines, BodyLines: DefaultBodyLines},
		Logging:       LoggingConfig{Level: DefaultLogLevel},
	}
}

// Dir returns the absolute path to the config directory, or "" for the
// in-memory default.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the config directory path.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// LockPath returns the path of the advisory lock guarding the config file.
func (c *Config) LockPath() string {
	return filepath.Join(c.dir, LockFileName)
}

// SeedPath returns the seed file path, or "" when the built-in seed is used.
func (c *Config) SeedPath() string {
	return c.resolve(c.SeedFile)
}

// ActivityLogPath returns the activity log path, or "" when disabled.
func (c *Config) ActivityLogPath() string {
	return c.resolve(c.ActivityLog)
}

// LogFilePath returns the log file path, or "" when file logging is off.
func (c *Config) LogFilePath() string {
	return c.resolve(c.Logging.File)
}

// resolve anchors p at the config dir. Without a dir there is nowhere to
// read or write files, so relative paths resolve to "".
func (c *Config) resolve(p string) string {
	switch {
	case p == "":
		return ""
	case filepath.IsAbs(p):
		return p
	case c.dir == "":
		return ""
	default:
		return filepath.Join(c.dir, p)
	}
}

// Titles returns column titles keyed by column id.
func (c *Config) Titles() map[string]string {
	titles := make(map[string]string, len(c.Columns))
	for _, col := range c.Columns {
		titles[col.ID] = col.Title
	}
	return titles
}

// SetColumnTitle renames a column.
func (c *Config) SetColumnTitle(id, title string) error {
	for i := range c.Columns {
		if c.Columns[i].ID == id {
			c.Columns[i].Title = title
			return nil
		}
	}
	return task.ValidateStatus(id)
}

// TitleLines returns the configured number of title lines for TUI cards.
func (c *Config) TitleLines() int {
	if c.TUI.TitleLines == 0 {
		return DefaultTitleLines
	}
	return c.TUI.TitleLines
}

// BodyLines returns the configured number of description lines for TUI cards.
func (c *Config) BodyLines() int {
	return c.TUI.BodyLines
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Board.Name == "" {
		return fmt.Errorf("%w: board.name is required", ErrInvalid)
	}
	if err := c.validateColumns(); err != nil {
		return err
	}
	if err := c.validateTheme(); err != nil {
		return err
	}
	if !slices.Contains(table.RowsPerPageOptions(), c.Table.RowsPerPage) {
		return fmt.Errorf("%w: table.rows_per_page must be one of %v", ErrInvalid, table.RowsPerPageOptions())
	}
	if err := c.validateTUI(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level %q: %w", ErrInvalid, c.Logging.Level, err)
	}
	return nil
}

func (c *Config) validateColumns() error {
	want := task.Statuses()
	if len(c.Columns) != len(want) {
		return fmt.Errorf("%w: columns must list exactly %v", ErrInvalid, want)
	}
	for i, col := range c.Columns {
		if col.ID != want[i] {
			return fmt.Errorf("%w: columns[%d] is %q, expected %q (column ids and order are fixed)",
				ErrInvalid, i, col.ID, want[i])
		}
		if col.Title == "" {
			return fmt.Errorf("%w: columns[%d].title is required", ErrInvalid, i)
		}
	}
	return nil
}

func (c *Config) validateTheme() error {
	if c.Theme.Mode != ThemeDark && c.Theme.Mode != ThemeLight {
		return fmt.Errorf("%w: theme.mode must be %q or %q", ErrInvalid, ThemeLight, ThemeDark)
	}
	if !hexColor.MatchString(c.Theme.Primary) {
		return fmt.Errorf("%w: theme.primary %q is not a hex color", ErrInvalid, c.Theme.Primary)
	}
	if !hexColor.MatchString(c.Theme.Secondary) {
		return fmt.Errorf("%w: theme.secondary %q is not a hex color", ErrInvalid, c.Theme.Secondary)
	}
	return nil
}

func (c *Config) validateTUI() error {
	const minTitleLines, maxTitleLines = 1, 3
	if c.TUI.TitleLines < minTitleLines || c.TUI.TitleLines > maxTitleLines {
		return fmt.Errorf("%w: tui.title_lines must be between %d and %d",
			ErrInvalid, minTitleLines, maxTitleLines)
	}
	const maxBodyLines = 2
	if c.TUI.BodyLines < 0 || c.TUI.BodyLines > maxBodyLines {
		return fmt.Errorf("%w: tui.body_lines must be between 0 and %d", ErrInvalid, maxBodyLines)
	}
	return nil
}

// Init creates a config directory with a default config and an editable
// copy of the built-in seed. An existing config is only replaced with force.
func Init(dir, name string, force bool) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault(name)
	cfg.SetDir(absDir)

	if _, err := os.Stat(cfg.ConfigPath()); err == nil && !force {
		return nil, clierr.Newf(clierr.BoardAlreadyExists, "config already exists at %s (use --force to overwrite)", cfg.ConfigPath()).
			WithDetails(map[string]any{"path": cfg.ConfigPath()})
	}

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	seed, err := task.DefaultSeed()
	if err != nil {
		return nil, err
	}
	if err := task.WriteSeed(cfg.SeedPath(), seed); err != nil {
		return nil, fmt.Errorf("writing seed: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	if c.dir == "" {
		return clierr.New(clierr.BoardNotFound, "no config directory (run 'deskboard init' to create one)")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads, migrates and validates the config in dir.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, migrated, err := parse(data)
	if err != nil {
		return nil, err
	}
	cfg.dir = absDir

	// Persist migrated config so future loads skip re-migration.
	if migrated {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}
	return cfg, nil
}

// Parse decodes, migrates and validates a config document. The result has
// no directory set.
func Parse(data []byte) (*Config, error) {
	cfg, _, err := parse(data)
	return cfg, err
}

func parse(data []byte) (*Config, bool, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, false, fmt.Errorf("parsing config: %w", err)
	}

	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return &cfg, cfg.Version != oldVersion, nil
}

// FindDir walks upward from startDir looking for a deskboard directory
// containing config.yml. Returns the absolute path to that directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the config directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", notFound()
		}
		dir = parent
	}
}

func notFound() error {
	return clierr.New(clierr.BoardNotFound, "no deskboard config found (run 'deskboard init' to create one)")
}
