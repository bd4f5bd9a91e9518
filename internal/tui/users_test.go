package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/deskboard/internal/table"
)

func names(res table.Result) []string {
	out := make([]string, 0, len(res.Rows))
	for _, r := range res.Rows {
		out = append(out, r.Name)
	}
	return out
}

func TestUsersViewToggle(t *testing.T) {
	m, _ := newTestBoard(t)

	press(m, "tab")
	require.Equal(t, viewUsers, m.view)
	out := m.View()
	assert.Contains(t, out, "Users")
	assert.Contains(t, out, "Charlotte Martinez")
	assert.Contains(t, out, "1 Name ▲")
	assert.Contains(t, out, "1-5 of 8 · page 1/2 · 5 per page")

	press(m, "tab")
	assert.Equal(t, viewBoard, m.view)
}

func TestUsersPagingClamps(t *testing.T) {
	m, _ := newTestBoard(t)
	press(m, "tab")

	press(m, "n")
	res := m.users.result()
	assert.Equal(t, 1, res.Query.Page)
	assert.Equal(t, []string{"Olivia Taylor", "Sophia Davis", "William Wilson"}, names(res))
	assert.Equal(t, 2, res.EmptyRows)

	press(m, "n", "n")
	assert.Equal(t, 1, m.users.query.Page, "clamped to the last page")

	press(m, "p", "p", "p")
	assert.Equal(t, 0, m.users.query.Page)
}

func TestUsersRowsPerPageCycle(t *testing.T) {
	m, _ := newTestBoard(t)
	press(m, "tab", "n", "+")

	res := m.users.result()
	assert.Equal(t, 10, res.RowsPerPage)
	assert.Equal(t, 0, res.Query.Page, "page resets")
	assert.Len(t, res.Rows, 8)

	press(m, "+", "+")
	assert.Equal(t, 5, m.users.query.RowsPerPage)
}

func TestUsersSort(t *testing.T) {
	m, _ := newTestBoard(t)
	press(m, "tab", "1")

	res := m.users.result()
	assert.Equal(t, table.Desc, res.Query.Order)
	assert.Equal(t, "William Wilson", res.Rows[0].Name)
	assert.Contains(t, m.View(), "1 Name ▼")

	press(m, "5")
	res = m.users.result()
	assert.Equal(t, table.FieldLastLogin, res.Query.OrderBy)
	assert.Equal(t, table.Asc, res.Query.Order)
}

func TestUsersSearch(t *testing.T) {
	m, _ := newTestBoard(t)
	press(m, "tab", "n", "/")
	require.True(t, m.users.searching)

	typeText(m, "emma")
	res := m.users.result()
	assert.Equal(t, []string{"Emma Johnson"}, names(res))
	assert.Equal(t, 0, res.Query.Page)

	press(m, "enter")
	assert.False(t, m.users.searching)
	assert.Equal(t, viewUsers, m.view)

	press(m, "/")
	typeText(m, "zzz")
	res = m.users.result()
	assert.Empty(t, res.Rows)
	press(m, "esc")
	assert.Contains(t, m.View(), "No users match.")
}

func TestUsersRowsPerPageFromConfig(t *testing.T) {
	assert.Equal(t, 10, newUsers(10).query.RowsPerPage)
	assert.Equal(t, table.DefaultRowsPerPage, newUsers(7).query.RowsPerPage)
}
