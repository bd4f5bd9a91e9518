package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/twiced-technology-gmbh/deskboard/internal/table"
)

// users is the user directory view: search, sortable columns and
// pagination. Unlike the CLI, an out-of-range page is clamped instead of
// rejected.
type users struct {
	rows      []table.Row
	query     table.Query
	search    textinput.Model
	searching bool
}

var userHeaders = map[string]string{
	table.FieldName:      "Name",
	table.FieldEmail:     "Email",
	table.FieldRole:      "Role",
	table.FieldStatus:    "Status",
	table.FieldLastLogin: "Last Login",
}

func newUsers(rowsPerPage int) users {
	q := table.DefaultQuery()
	if slices.Contains(table.RowsPerPageOptions(), rowsPerPage) {
		q = q.SetRowsPerPage(rowsPerPage)
	}
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"
	return users{rows: table.DefaultRows(), query: q, search: search}
}

// result returns the current page. The query is clamped first, so Apply
// cannot fail on the page.
func (u *users) result() table.Result {
	u.query = u.query.Clamp(u.rows)
	res, err := table.Apply(u.rows, u.query)
	if err != nil {
		return table.Result{Query: u.query, RowsPerPage: u.query.RowsPerPage}
	}
	return res
}

func (b *Board) handleUsersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	u := &b.users
	if u.searching {
		switch msg.String() {
		case keyEnter, keyEsc, keyTab:
			u.searching = false
			u.search.Blur()
			return b, nil
		}
		var cmd tea.Cmd
		u.search, cmd = u.search.Update(msg)
		u.query.Filter = u.search.Value()
		u.query.Page = 0
		return b, cmd
	}

	switch s := msg.String(); s {
	case "q":
		return b, tea.Quit
	case keyTab, keyEsc:
		b.view = viewBoard
	case "/":
		u.searching = true
		return b, u.search.Focus()
	case "n", "right", "l":
		u.query.Page++
	case "p", "left", "h":
		if u.query.Page > 0 {
			u.query.Page--
		}
	case "+":
		u.query = u.query.NextRowsPerPage()
	case "1", "2", "3", "4", "5":
		u.query = u.query.RequestSort(table.ValidFields()[s[0]-'1'])
	}
	u.query = u.query.Clamp(u.rows)
	return b, nil
}

func (b *Board) viewUsers() string {
	res := b.users.result()
	q := res.Query

	headers := make([]string, 0, len(table.ValidFields()))
	for i, f := range table.ValidFields() {
		h := fmt.Sprintf("%d %s", i+1, userHeaders[f])
		if f == q.OrderBy {
			if q.Order == table.Asc {
				h += " ▲"
			} else {
				h += " ▼"
			}
		}
		headers = append(headers, h)
	}

	rows := make([][]string, 0, len(res.Rows)+res.EmptyRows)
	for _, r := range res.Rows {
		rows = append(rows, []string{r.Name, r.Email, r.Role, r.Status, r.LastLoginText()})
	}
	for range res.EmptyRows {
		rows = append(rows, []string{"", "", "", "", ""})
	}

	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(b.styles.dim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return b.styles.tableHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	var sb strings.Builder
	sb.WriteString(b.styles.title.Bold(true).Render("Users") + "\n")
	if b.users.searching || q.Filter != "" {
		sb.WriteString(b.users.search.View() + "\n")
	}
	if len(res.Rows) == 0 {
		sb.WriteString(b.styles.dim.Render("No users match.") + "\n")
	}
	sb.WriteString(t.Render() + "\n")

	footer := fmt.Sprintf("%d-%d of %d · page %d/%d · %d per page",
		res.FirstRow, res.LastRow, res.Filtered, q.Page+1, max(1, res.PageCount), res.RowsPerPage)
	sb.WriteString(b.styles.statusBar.Render(footer) + "\n\n")
	sb.WriteString(b.styles.statusBar.Render(truncate("/:search 1-5:sort n/p:page +:rows per page tab:board q:quit", max(b.width, 4))))
	return sb.String()
}
