package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/deskboard/internal/config"
	"github.com/twiced-technology-gmbh/deskboard/internal/filelock"
	"github.com/twiced-technology-gmbh/deskboard/internal/output"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify board configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func stringAccessor(field func(*config.Config) *string) configAccessor {
	return configAccessor{
		get:      func(c *config.Config) any { return *field(c) },
		set:      func(c *config.Config, v string) error { *field(c) = v; return nil },
		writable: true,
	}
}

func boolAccessor(key string, field func(*config.Config) *bool) configAccessor {
	return configAccessor{
		get: func(c *config.Config) any { return *field(c) },
		set: func(c *config.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return clierr.Newf(clierr.InvalidInput, "invalid %s %q: must be true or false", key, v)
			}
			*field(c) = b
			return nil
		},
		writable: true,
	}
}

// intAccessor leaves range checks to config validation.
func intAccessor(key string, field func(*config.Config) *int) configAccessor {
	return configAccessor{
		get: func(c *config.Config) any { return *field(c) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return clierr.Newf(clierr.InvalidInput, "invalid %s %q: must be an integer", key, v)
			}
			*field(c) = n
			return nil
		},
		writable: true,
	}
}

func columnTitleKey(id string) string { return "columns." + id + ".title" }

func configAccessors() map[string]configAccessor {
	accessors := map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"board.name":        stringAccessor(func(c *config.Config) *string { return &c.Board.Name }),
		"board.description": stringAccessor(func(c *config.Config) *string { return &c.Board.Description }),
		"columns": {
			get: func(c *config.Config) any { return c.Columns },
		},
		"seed_file":    stringAccessor(func(c *config.Config) *string { return &c.SeedFile }),
		"activity_log": stringAccessor(func(c *config.Config) *string { return &c.ActivityLog }),
		"theme.mode": {
			get: func(c *config.Config) any { return c.Theme.Mode },
			set: func(c *config.Config, v string) error {
				if v != config.ThemeLight && v != config.ThemeDark {
					return clierr.Newf(clierr.InvalidInput,
						"invalid theme.mode %q; allowed: %s, %s", v, config.ThemeLight, config.ThemeDark)
				}
				c.Theme.Mode = v
				return nil
			},
			writable: true,
		},
		"theme.primary":         stringAccessor(func(c *config.Config) *string { return &c.Theme.Primary }),
		"theme.secondary":       stringAccessor(func(c *config.Config) *string { return &c.Theme.Secondary }),
		"layout.sidebar_open":   boolAccessor("layout.sidebar_open", func(c *config.Config) *bool { return &c.Layout.SidebarOpen }),
		"notifications.email":   boolAccessor("notifications.email", func(c *config.Config) *bool { return &c.Notifications.Email }),
		"notifications.push":    boolAccessor("notifications.push", func(c *config.Config) *bool { return &c.Notifications.Push }),
		"notifications.monthly": boolAccessor("notifications.monthly", func(c *config.Config) *bool { return &c.Notifications.Monthly }),
		"table.rows_per_page":   intAccessor("table.rows_per_page", func(c *config.Config) *int { return &c.Table.RowsPerPage }),
		"tui.title_lines":       intAccessor("tui.title_lines", func(c *config.Config) *int { return &c.TUI.TitleLines }),
		"tui.body_lines":        intAccessor("tui.body_lines", func(c *config.Config) *int { return &c.TUI.BodyLines }),
		"logging.level":         stringAccessor(func(c *config.Config) *string { return &c.Logging.Level }),
		"logging.file":          stringAccessor(func(c *config.Config) *string { return &c.Logging.File }),
	}
	for _, id := range task.Statuses() {
		accessors[columnTitleKey(id)] = configAccessor{
			get: func(c *config.Config) any { return c.Titles()[id] },
			set: func(c *config.Config, v string) error {
				if strings.TrimSpace(v) == "" {
					return clierr.Newf(clierr.InvalidInput, "column title for %q must not be blank", id)
				}
				return c.SetColumnTitle(id, v)
			},
			writable: true,
		}
	}
	return accessors
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	keys := []string{
		"version",
		"board.name",
		"board.description",
	}
	for _, id := range task.Statuses() {
		keys = append(keys, columnTitleKey(id))
	}
	return append(keys,
		"seed_file",
		"activity_log",
		"theme.mode",
		"theme.primary",
		"theme.secondary",
		"layout.sidebar_open",
		"notifications.email",
		"notifications.push",
		"notifications.monthly",
		"table.rows_per_page",
		"tui.title_lines",
		"tui.body_lines",
		"logging.level",
		"logging.file",
	)
}

func lookupAccessor(key string) (configAccessor, error) {
	acc, ok := configAccessors()[key]
	if !ok {
		return configAccessor{}, clierr.Newf(clierr.InvalidInput, "unknown config key %q", key).
			WithDetails(map[string]any{"key": key, "allowed": allConfigKeys()})
	}
	return acc, nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()
	keys := allConfigKeys()

	if format := outputFormat(); format.Structured() {
		m := make(map[string]any, len(keys))
		for _, key := range keys {
			m[key] = accessors[key].get(cfg)
		}
		return output.Structured(os.Stdout, format, m)
	}

	for _, key := range keys {
		val := accessors[key].get(cfg)
		fmt.Fprintf(os.Stdout, "%-24s %v\n", key, formatConfigValue(val))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	acc, err := lookupAccessor(args[0])
	if err != nil {
		return err
	}
	val := acc.get(cfg)

	if format := outputFormat(); format.Structured() {
		return output.Structured(os.Stdout, format, val)
	}
	fmt.Fprintln(os.Stdout, formatConfigValue(val))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	acc, err := lookupAccessor(key)
	if err != nil {
		return err
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	dir, err := resolveDir()
	if err != nil {
		return err
	}

	var cfg *config.Config
	err = filelock.With(filepath.Join(dir, config.LockFileName), func() error {
		// Reload under the lock so concurrent writers do not lose updates.
		var loadErr error
		cfg, loadErr = config.Load(dir)
		if loadErr != nil {
			return loadErr
		}
		if setErr := acc.set(cfg, value); setErr != nil {
			return setErr
		}
		if valErr := cfg.Validate(); valErr != nil {
			return invalidConfig(valErr)
		}
		if saveErr := cfg.Save(); saveErr != nil {
			return fmt.Errorf("saving config: %w", saveErr)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Debug("config updated", "key", key, "value", acc.get(cfg))

	if format := outputFormat(); format.Structured() {
		return output.Structured(os.Stdout, format, map[string]any{"key": key, "value": acc.get(cfg)})
	}
	output.Messagef(os.Stdout, "Set %s = %v", key, formatConfigValue(acc.get(cfg)))
	return nil
}

// invalidConfig turns a validation failure into an INVALID_INPUT error.
func invalidConfig(err error) error {
	if errors.Is(err, config.ErrInvalid) {
		return clierr.New(clierr.InvalidInput, err.Error())
	}
	return err
}

func formatConfigValue(val any) string {
	switch v := val.(type) {
	case []config.ColumnConfig:
		parts := make([]string, 0, len(v))
		for _, col := range v {
			parts = append(parts, col.ID+"="+col.Title)
		}
		return strings.Join(parts, ", ")
	case string:
		if v == "" {
			return "--"
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
