package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deskboard/internal/dashboard"
	"github.com/twiced-technology-gmbh/deskboard/internal/output"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"stats"},
	Short:   "Show the metrics dashboard",
	Long: `Prints the dashboard: stat cards with their trend against the previous
period, the daily revenue series, the sales breakdown by country and project
progress.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().String("range", dashboard.RangeWeekly,
		"sales breakdown range ("+strings.Join(dashboard.Ranges(), ", ")+")")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	rng, _ := cmd.Flags().GetString("range")

	overview, err := dashboard.Build(rng)
	if err != nil {
		return err
	}

	format := outputFormat()
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return output.Structured(os.Stdout, format, overview)
	case output.FormatCompact:
		output.DashboardCompact(os.Stdout, overview)
	default:
		output.DashboardTable(os.Stdout, overview)
	}
	return nil
}
