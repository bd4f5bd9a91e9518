package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/deskboard/internal/output"
	"github.com/twiced-technology-gmbh/deskboard/internal/table"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Show the user directory",
	Long: `Lists one page of the user directory. Rows can be searched by name or
email, sorted by any column and paged. Pages are numbered from 1.`,
	Args: cobra.NoArgs,
	RunE: runUsers,
}

func init() {
	usersCmd.Flags().StringP("search", "s", "", "filter by name or email (case-insensitive)")
	usersCmd.Flags().String("sort", table.FieldName, "sort field ("+strings.Join(table.ValidFields(), ", ")+")")
	usersCmd.Flags().String("order", table.Asc, "sort order (asc, desc)")
	usersCmd.Flags().IntP("page", "p", 1, "page number")
	usersCmd.Flags().Int("per-page", 0, "rows per page (5, 10, 25; default from config)")
	rootCmd.AddCommand(usersCmd)
}

func runUsers(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	search, _ := cmd.Flags().GetString("search")
	sortBy, _ := cmd.Flags().GetString("sort")
	order, _ := cmd.Flags().GetString("order")
	page, _ := cmd.Flags().GetInt("page")
	if page < 1 {
		return clierr.Newf(clierr.InvalidPage, "--page must be >= 1, got %d", page).
			WithDetails(map[string]any{"page": page})
	}

	perPage := cfg.Table.RowsPerPage
	if p := optionalInt(cmd.Flags(), "per-page"); p != nil {
		perPage = *p
	}
	if perPage == 0 {
		perPage = table.DefaultRowsPerPage
	}

	res, err := table.Apply(table.DefaultRows(), table.Query{
		Filter:      search,
		OrderBy:     sortBy,
		Order:       order,
		Page:        page - 1,
		RowsPerPage: perPage,
	})
	if err != nil {
		return err
	}

	format := outputFormat()
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return output.Structured(os.Stdout, format, res)
	case output.FormatCompact:
		output.UsersCompact(os.Stdout, res)
	default:
		output.UsersTable(os.Stdout, res)
	}
	return nil
}
