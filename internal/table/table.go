// Package table implements the user directory data table: search, column
// sorting and pagination over a fixed set of user rows.
package table

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
)

// Sortable columns.
const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldRole      = "role"
	FieldStatus    = "status"
	FieldLastLogin = "lastLogin"
)

// Sort directions.
const (
	Asc  = "asc"
	Desc = "desc"
)

// DefaultRowsPerPage is the initial page size.
const DefaultRowsPerPage = 5

// Row is one user in the directory. LastLogin is the time since the user's
// last login.
type Row struct {
	ID        int           `json:"id" yaml:"id"`
	Name      string        `json:"name" yaml:"name"`
	Email     string        `json:"email" yaml:"email"`
	Role      string        `json:"role" yaml:"role"`
	Status    string        `json:"status" yaml:"status"`
	LastLogin time.Duration `json:"last_login" yaml:"last_login"`
}

// LastLoginText renders LastLogin the way the directory displays it,
// e.g. "2 hours ago".
func (r Row) LastLoginText() string {
	return Ago(r.LastLogin)
}

// Ago formats a duration as a coarse "N units ago" phrase.
func Ago(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d/(24*time.Hour)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// DefaultRows returns the built-in user directory.
func DefaultRows() []Row {
	const day = 24 * time.Hour
	return []Row{
		{1, "John Smith", "john@example.com", "Admin", "Active", 2 * time.Hour},
		{2, "Emma Johnson", "emma@example.com", "Editor", "Active", 5 * time.Hour},
		{3, "Michael Brown", "michael@example.com", "Viewer", "Inactive", 2 * day},
		{4, "Sophia Davis", "sophia@example.com", "Admin", "Active", time.Hour},
		{5, "William Wilson", "william@example.com", "Editor", "Active", 3 * time.Hour},
		{6, "Olivia Taylor", "olivia@example.com", "Viewer", "Active", day},
		{7, "James Anderson", "james@example.com", "Editor", "Inactive", 4 * day},
		{8, "Charlotte Martinez", "charlotte@example.com", "Admin", "Active", 30 * time.Minute},
	}
}

// ValidFields returns the sortable column names in display order.
func ValidFields() []string {
	return []string{FieldName, FieldEmail, FieldRole, FieldStatus, FieldLastLogin}
}

// RowsPerPageOptions returns the accepted page sizes.
func RowsPerPageOptions() []int {
	return []int{5, 10, 25}
}

// Query is the table's view state.
type Query struct {
	Filter      string `json:"filter" yaml:"filter"`
	OrderBy     string `json:"order_by" yaml:"order_by"`
	Order       string `json:"order" yaml:"order"`
	Page        int    `json:"page" yaml:"page"`
	RowsPerPage int    `json:"rows_per_page" yaml:"rows_per_page"`
}

// DefaultQuery returns the initial view: sorted by name ascending, first
// page of five.
func DefaultQuery() Query {
	return Query{OrderBy: FieldName, Order: Asc, RowsPerPage: DefaultRowsPerPage}
}

// RequestSort returns q sorted by field. Requesting the active field while
// ascending flips to descending; anything else sorts ascending.
func (q Query) RequestSort(field string) Query {
	if q.OrderBy == field && q.Order == Asc {
		q.Order = Desc
	} else {
		q.Order = Asc
	}
	q.OrderBy = field
	return q
}

// SetRowsPerPage changes the page size and returns to the first page.
func (q Query) SetRowsPerPage(n int) Query {
	q.RowsPerPage = n
	q.Page = 0
	return q
}

// NextRowsPerPage cycles through RowsPerPageOptions.
func (q Query) NextRowsPerPage() Query {
	opts := RowsPerPageOptions()
	i := slices.Index(opts, q.RowsPerPage)
	return q.SetRowsPerPage(opts[(i+1)%len(opts)])
}

// Validate checks the sort field, direction and page size.
func (q Query) Validate() error {
	if !slices.Contains(ValidFields(), q.OrderBy) {
		return clierr.Newf(clierr.InvalidSortField, "invalid sort field %q", q.OrderBy).
			WithDetails(map[string]any{"field": q.OrderBy, "allowed": ValidFields()})
	}
	if q.Order != Asc && q.Order != Desc {
		return clierr.Newf(clierr.InvalidInput, "invalid sort order %q (use asc or desc)", q.Order)
	}
	if !slices.Contains(RowsPerPageOptions(), q.RowsPerPage) {
		return clierr.Newf(clierr.InvalidInput, "invalid rows per page %d", q.RowsPerPage).
			WithDetails(map[string]any{"rows_per_page": q.RowsPerPage, "allowed": RowsPerPageOptions()})
	}
	if q.Page < 0 {
		return pageErr(q.Page, 0)
	}
	return nil
}

// Clamp returns q with its page moved into the range available for rows.
func (q Query) Clamp(rows []Row) Query {
	if q.RowsPerPage <= 0 {
		return q
	}
	last := PageCount(len(Filter(rows, q.Filter)), q.RowsPerPage) - 1
	q.Page = max(0, min(q.Page, last))
	return q
}

// Result is one rendered page of the table.
type Result struct {
	Rows        []Row `json:"rows" yaml:"rows"`
	Query       Query `json:"query" yaml:"query"`
	Total       int   `json:"total" yaml:"total"`
	Filtered    int   `json:"filtered" yaml:"filtered"`
	PageCount   int   `json:"page_count" yaml:"page_count"`
	EmptyRows   int   `json:"empty_rows" yaml:"empty_rows"`
	FirstRow    int   `json:"first_row" yaml:"first_row"`
	LastRow     int   `json:"last_row" yaml:"last_row"`
	RowsPerPage int   `json:"rows_per_page" yaml:"rows_per_page"`
}

// Apply filters, sorts and paginates rows. rows is not modified.
// Page 0 is always valid; any other page past the last one is rejected.
func Apply(rows []Row, q Query) (Result, error) {
	if err := q.Validate(); err != nil {
		return Result{}, err
	}

	filtered := Filter(rows, q.Filter)
	Sort(filtered, q.OrderBy, q.Order)

	pages := PageCount(len(filtered), q.RowsPerPage)
	if q.Page > 0 && q.Page >= pages {
		return Result{}, pageErr(q.Page, pages)
	}

	start := min(q.Page*q.RowsPerPage, len(filtered))
	end := min(start+q.RowsPerPage, len(filtered))

	res := Result{
		Rows:        filtered[start:end],
		Query:       q,
		Total:       len(rows),
		Filtered:    len(filtered),
		PageCount:   pages,
		RowsPerPage: q.RowsPerPage,
	}
	if q.Page > 0 {
		res.EmptyRows = max(0, (1+q.Page)*q.RowsPerPage-len(filtered))
	}
	if end > start {
		res.FirstRow, res.LastRow = start+1, end
	}
	return res, nil
}

// PageCount returns the number of pages needed for n rows.
func PageCount(n, rowsPerPage int) int {
	if rowsPerPage <= 0 {
		return 0
	}
	return (n + rowsPerPage - 1) / rowsPerPage
}

// Filter returns a copy of the rows whose name, email, role or status
// contains query, ignoring case.
func Filter(rows []Row, query string) []Row {
	q := strings.ToLower(query)
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		for _, field := range []string{r.Name, r.Email, r.Role, r.Status} {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Sort orders rows in place by field. Equal keys keep their relative order.
func Sort(rows []Row, field, order string) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		c := compare(a, b, field)
		if order == Desc {
			return -c
		}
		return c
	})
}

func compare(a, b Row, field string) int {
	switch field {
	case FieldName:
		return strings.Compare(a.Name, b.Name)
	case FieldEmail:
		return strings.Compare(a.Email, b.Email)
	case FieldRole:
		return strings.Compare(a.Role, b.Role)
	case FieldStatus:
		return strings.Compare(a.Status, b.Status)
	case FieldLastLogin:
		switch {
		case a.LastLogin < b.LastLogin:
			return -1
		case a.LastLogin > b.LastLogin:
			return 1
		}
	}
	return 0
}

func pageErr(page, pages int) error {
	return clierr.Newf(clierr.InvalidPage, "page %d is out of range (%d pages)", page, pages).
		WithDetails(map[string]any{"page": page, "page_count": pages})
}
