package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deskboard/internal/config"
	"github.com/twiced-technology-gmbh/deskboard/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a deskboard config directory",
	Long: `Creates a deskboard directory with config.yml and an editable seed.yml
holding the initial board. Edit the seed to change the tasks every board
starts from.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("name", "", "board name (defaults to current directory name)")
	initCmd.Flags().BoolP("force", "f", false, "overwrite an existing config and seed")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		name = filepath.Base(cwd)
	}
	force, _ := cmd.Flags().GetBool("force")

	cfg, err := config.Init(dir, name, force)
	if err != nil {
		return err
	}

	if format := outputFormat(); format.Structured() {
		return output.Structured(os.Stdout, format, map[string]string{
			"status": "initialized",
			"dir":    cfg.Dir(),
			"name":   cfg.Board.Name,
			"config": cfg.ConfigPath(),
			"seed":   cfg.SeedPath(),
		})
	}

	output.Messagef(os.Stdout, "Initialized board %q in %s", cfg.Board.Name, cfg.Dir())
	output.Messagef(os.Stdout, "  Config: %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Seed:   %s", cfg.SeedPath())
	return nil
}
