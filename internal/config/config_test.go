package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

func TestNewDefaultIsValid(t *testing.T) {
	cfg := NewDefault("")
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultBoardName, cfg.Board.Name)
	assert.Equal(t, map[string]string{
		"todo": "To Do", "inProgress": "In Progress", "review": "Review", "done": "Done",
	}, cfg.Titles())
	assert.Equal(t, "#556cd6", cfg.Theme.Primary)
	assert.True(t, cfg.Layout.SidebarOpen)
	assert.Equal(t, NotificationConfig{Email: true, Push: true}, cfg.Notifications)
}

func TestPathsWithoutDir(t *testing.T) {
	cfg := NewDefault("x")
	assert.Empty(t, cfg.SeedPath())
	assert.Empty(t, cfg.ActivityLogPath())

	cfg.ActivityLog = "/var/log/deskboard.jsonl"
	assert.Equal(t, "/var/log/deskboard.jsonl", cfg.ActivityLogPath())

	cfg.SetDir("/home/u/deskboard")
	assert.Equal(t, filepath.Join("/home/u/deskboard", "seed.yml"), cfg.SeedPath())
	cfg.SeedFile = ""
	assert.Empty(t, cfg.SeedPath())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
		msg  string
	}{
		{"version", func(c *Config) { c.Version = 2 }, "unsupported version"},
		{"name", func(c *Config) { c.Board.Name = "" }, "board.name"},
		{"too few columns", func(c *Config) { c.Columns = c.Columns[:3] }, "columns must list"},
		{"reordered columns", func(c *Config) { c.Columns[0], c.Columns[1] = c.Columns[1], c.Columns[0] }, "order are fixed"},
		{"empty title", func(c *Config) { c.Columns[2].Title = "" }, "columns[2].title"},
		{"theme mode", func(c *Config) { c.Theme.Mode = "sepia" }, "theme.mode"},
		{"primary color", func(c *Config) { c.Theme.Primary = "blue" }, "theme.primary"},
		{"secondary color", func(c *Config) { c.Theme.Secondary = "#12345" }, "theme.secondary"},
		{"rows per page", func(c *Config) { c.Table.RowsPerPage = 7 }, "rows_per_page"},
		{"title lines", func(c *Config) { c.TUI.TitleLines = 4 }, "title_lines"},
		{"body lines", func(c *Config) { c.TUI.BodyLines = -1 }, "body_lines"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault("b")
			tt.mod(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestSetColumnTitle(t *testing.T) {
	cfg := NewDefault("b")
	require.NoError(t, cfg.SetColumnTitle("review", "QA"))
	assert.Equal(t, "QA", cfg.Titles()["review"])

	err := cfg.SetColumnTitle("blocked", "x")
	assert.True(t, clierr.HasCode(err, clierr.ColumnNotFound))
}

func TestInitLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)

	cfg, err := Init(dir, "Sprint", false)
	require.NoError(t, err)
	assert.FileExists(t, cfg.ConfigPath())
	assert.FileExists(t, cfg.SeedPath())

	seed, warnings, err := task.ReadSeed(cfg.SeedPath())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Len(t, seed, 2)

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "Sprint", loaded.Board.Name)
	assert.Equal(t, cfg.Dir(), loaded.Dir())
	assert.Equal(t, cfg.Columns, loaded.Columns)

	_, err = Init(dir, "Again", false)
	assert.True(t, clierr.HasCode(err, clierr.BoardAlreadyExists))

	cfg, err = Init(dir, "Again", true)
	require.NoError(t, err)
	assert.Equal(t, "Again", cfg.Board.Name)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.True(t, clierr.HasCode(err, clierr.BoardNotFound))
}

func TestSaveWithoutDir(t *testing.T) {
	err := NewDefault("b").Save()
	assert.True(t, clierr.HasCode(err, clierr.BoardNotFound))
}

func TestMigrateV1(t *testing.T) {
	dir := t.TempDir()
	v1 := `version: 1
board:
  name: legacy
columns: [todo, inProgress, review, done]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(v1), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, "In Progress", cfg.Columns[1].Title)
	assert.Equal(t, DefaultTheme(), cfg.Theme)
	assert.Equal(t, DefaultNotifications(), cfg.Notifications)
	assert.Equal(t, DefaultRowsPerPage, cfg.Table.RowsPerPage)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)

	// The migrated file was persisted.
	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "version: 3")
}

func TestMigrateV2KeepsTheme(t *testing.T) {
	v2 := `version: 2
board: {name: b}
columns:
  - {id: todo, title: Backlog}
  - inProgress
  - review
  - done
theme: {mode: light, primary: "#000000", secondary: "#ffffff"}
layout: {sidebar_open: false}
notifications: {email: false, push: true, monthly: true}
`
	cfg, err := Parse([]byte(v2))
	require.NoError(t, err)
	assert.Equal(t, "Backlog", cfg.Titles()["todo"])
	assert.Equal(t, ThemeLight, cfg.Theme.Mode)
	assert.False(t, cfg.Layout.SidebarOpen)
	assert.True(t, cfg.Notifications.Monthly)
	assert.Equal(t, DefaultTitleLines, cfg.TUI.TitleLines)
}

func TestMigrateRejects(t *testing.T) {
	_, err := Parse([]byte("version: 9\n"))
	assert.ErrorContains(t, err, "newer than supported")

	_, err = Parse([]byte("version: 0\n"))
	assert.ErrorContains(t, err, "is invalid")

	_, err = Parse([]byte("version: [\n"))
	assert.ErrorContains(t, err, "parsing config")
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	_, err := Init(filepath.Join(root, DefaultDir), "b", false)
	require.NoError(t, err)

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	found, err := FindDir(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, DefaultDir), found)

	found, err = FindDir(filepath.Join(root, DefaultDir))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, DefaultDir), found)
}
