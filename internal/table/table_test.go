package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
)

func names(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func TestDefaultQueryFirstPage(t *testing.T) {
	res, err := Apply(DefaultRows(), DefaultQuery())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Charlotte Martinez", "Emma Johnson", "James Anderson", "John Smith", "Michael Brown",
	}, names(res.Rows))
	assert.Equal(t, 8, res.Total)
	assert.Equal(t, 8, res.Filtered)
	assert.Equal(t, 2, res.PageCount)
	assert.Equal(t, 0, res.EmptyRows)
	assert.Equal(t, 1, res.FirstRow)
	assert.Equal(t, 5, res.LastRow)
}

func TestSecondPageEmptyRows(t *testing.T) {
	q := DefaultQuery()
	q.Page = 1
	res, err := Apply(DefaultRows(), q)
	require.NoError(t, err)

	assert.Equal(t, []string{"Olivia Taylor", "Sophia Davis", "William Wilson"}, names(res.Rows))
	assert.Equal(t, 2, res.EmptyRows)
	assert.Equal(t, 6, res.FirstRow)
	assert.Equal(t, 8, res.LastRow)
}

func TestFilterMatchesAnyTextField(t *testing.T) {
	rows := DefaultRows()

	assert.Equal(t, []string{"Michael Brown", "James Anderson"}, names(Filter(rows, "INACTIVE")))
	assert.Len(t, Filter(rows, "admin"), 3)
	assert.Equal(t, []string{"Olivia Taylor"}, names(Filter(rows, "olivia@")))
	assert.Len(t, Filter(rows, ""), 8)
	assert.Empty(t, Filter(rows, "nobody"))
}

func TestFilterDoesNotAliasInput(t *testing.T) {
	rows := DefaultRows()
	got := Filter(rows, "")
	Sort(got, FieldName, Desc)
	assert.Equal(t, "John Smith", rows[0].Name)
}

func TestSortByLastLoginUsesRecency(t *testing.T) {
	rows := DefaultRows()
	Sort(rows, FieldLastLogin, Asc)
	assert.Equal(t, "Charlotte Martinez", rows[0].Name)
	assert.Equal(t, "Sophia Davis", rows[1].Name)
	assert.Equal(t, "James Anderson", rows[7].Name)

	Sort(rows, FieldLastLogin, Desc)
	assert.Equal(t, "James Anderson", rows[0].Name)
}

func TestSortStableOnTies(t *testing.T) {
	rows := DefaultRows()
	Sort(rows, FieldRole, Asc)
	assert.Equal(t, []string{
		"John Smith", "Sophia Davis", "Charlotte Martinez",
		"Emma Johnson", "William Wilson", "James Anderson",
		"Michael Brown", "Olivia Taylor",
	}, names(rows))
}

func TestRequestSort(t *testing.T) {
	q := DefaultQuery()

	q = q.RequestSort(FieldName)
	assert.Equal(t, Query{OrderBy: FieldName, Order: Desc, RowsPerPage: 5}, q)

	q = q.RequestSort(FieldName)
	assert.Equal(t, Asc, q.Order)

	q = q.RequestSort(FieldName).RequestSort(FieldEmail)
	assert.Equal(t, FieldEmail, q.OrderBy)
	assert.Equal(t, Asc, q.Order)
}

func TestRowsPerPageResetsPage(t *testing.T) {
	q := DefaultQuery()
	q.Page = 1

	q = q.SetRowsPerPage(10)
	assert.Equal(t, 0, q.Page)
	assert.Equal(t, 10, q.RowsPerPage)

	q.Page = 3
	q = q.NextRowsPerPage()
	assert.Equal(t, 25, q.RowsPerPage)
	assert.Equal(t, 0, q.Page)
	assert.Equal(t, 5, q.NextRowsPerPage().RowsPerPage)

	res, err := Apply(DefaultRows(), q)
	require.NoError(t, err)
	assert.Len(t, res.Rows, 8)
	assert.Equal(t, 1, res.PageCount)
}

func TestApplyValidation(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Query)
		code string
	}{
		{"bad field", func(q *Query) { q.OrderBy = "age" }, clierr.InvalidSortField},
		{"bad order", func(q *Query) { q.Order = "up" }, clierr.InvalidInput},
		{"bad page size", func(q *Query) { q.RowsPerPage = 7 }, clierr.InvalidInput},
		{"negative page", func(q *Query) { q.Page = -1 }, clierr.InvalidPage},
		{"page past end", func(q *Query) { q.Page = 2 }, clierr.InvalidPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := DefaultQuery()
			tt.mod(&q)
			_, err := Apply(DefaultRows(), q)
			assert.True(t, clierr.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestFirstPageOfEmptyResultIsValid(t *testing.T) {
	q := DefaultQuery()
	q.Filter = "zzz"
	res, err := Apply(DefaultRows(), q)
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	assert.Equal(t, 0, res.PageCount)
	assert.Equal(t, 0, res.FirstRow)
}

func TestClamp(t *testing.T) {
	q := DefaultQuery()
	q.Page = 9
	assert.Equal(t, 1, q.Clamp(DefaultRows()).Page)

	q.Filter = "admin"
	assert.Equal(t, 0, q.Clamp(DefaultRows()).Page)

	q.Page = -4
	assert.Equal(t, 0, q.Clamp(DefaultRows()).Page)
}

func TestAgo(t *testing.T) {
	assert.Equal(t, "30 minutes ago", Ago(30*time.Minute))
	assert.Equal(t, "1 hour ago", Ago(time.Hour))
	assert.Equal(t, "5 hours ago", Ago(5*time.Hour))
	assert.Equal(t, "1 day ago", Ago(24*time.Hour))
	assert.Equal(t, "4 days ago", Ago(96*time.Hour))
	assert.Equal(t, "just now", Ago(10*time.Second))
	assert.Equal(t, "2 hours ago", DefaultRows()[0].LastLoginText())
}
