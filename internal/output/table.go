package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/deskboard/internal/board"
	"github.com/twiced-technology-gmbh/deskboard/internal/dashboard"
	"github.com/twiced-technology-gmbh/deskboard/internal/script"
	"github.com/twiced-technology-gmbh/deskboard/internal/table"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	// Column colors aligned with the TUI column-header palette.
	statusStyles = map[string]lipgloss.Style{
		task.StatusTodo:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		task.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		task.StatusReview:     lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		task.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}

	priorityStyles = map[string]lipgloss.Style{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	userStatusStyles = map[string]lipgloss.Style{
		"Active":   lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		"Inactive": lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}
)

const (
	maxTitleWidth   = 48
	boardColumnW    = 26
	boardCardIndent = 2
)

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	idW, statusW, prioW, titleW, assigneeW := 4, 8, 10, 7, 10
	for _, t := range tasks {
		idW = max(idW, len(t.ID)+pad)
		statusW = max(statusW, len(t.Status)+pad)
		prioW = max(prioW, len(t.Priority)+pad)
		titleW = max(titleW, min(lipgloss.Width(t.Title)+pad, maxTitleWidth+pad))
		assigneeW = max(assigneeW, len(t.Assignee)+pad)
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %s",
		idW, "ID", statusW, "STATUS", prioW, "PRIORITY",
		titleW, "TITLE", assigneeW, "ASSIGNEE", "DATE")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, t := range tasks {
		row := fmt.Sprintf("%-*s %s %s %s %s %s",
			idW, t.ID,
			padRight(styledValue(t.Status, statusStyles), statusW),
			padRight(styledValue(t.Priority, priorityStyles), prioW),
			padRight(truncate(t.Title, maxTitleWidth), titleW),
			padRight(stringOrDash(t.Assignee), assigneeW),
			stringOrDash(t.Date.String()))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail. columnTitle is the
// display title of the task's column.
func TaskDetail(w io.Writer, t *task.Task, columnTitle string, loc board.Location) {
	titleLine := "Task " + t.ID + ": " + t.Title
	fmt.Fprintln(w, boldStyle.Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(titleLine)))

	printField(w, "Column", styledValue(t.Status, statusStyles)+dimStyle.Render(" ("+columnTitle+")"))
	printField(w, "Position", strconv.Itoa(loc.Index+1))
	printField(w, "Priority", styledValue(t.Priority, priorityStyles))
	printField(w, "Assignee", stringOrDash(t.Assignee))
	printField(w, "Date", stringOrDash(t.Date.String()))

	if t.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, t.Description)
	}
}

// BoardTable renders the board as side-by-side columns of cards.
func BoardTable(w io.Writer, name string, s board.Snapshot) {
	if name != "" {
		fmt.Fprintln(w, boldStyle.Render(name))
		fmt.Fprintln(w)
	}

	blocks := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		var b strings.Builder
		header := fmt.Sprintf("%s (%d)", c.Title, len(c.TaskIDs))
		b.WriteString(styledAs(c.ID, truncate(header, boardColumnW-1), statusStyles))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(strings.Repeat("─", boardColumnW-1)))
		for _, t := range s.ColumnTasks(c.ID) {
			b.WriteString("\n")
			b.WriteString(truncate(t.Title, boardColumnW-1))
			b.WriteString("\n")
			meta := styledValue(t.Priority, priorityStyles) + " " + dimStyle.Render(truncate(t.Assignee, boardColumnW-len(t.Priority)-boardCardIndent))
			b.WriteString(strings.Repeat(" ", boardCardIndent) + meta)
		}
		if len(c.TaskIDs) == 0 {
			b.WriteString("\n" + dimStyle.Render("(empty)"))
		}
		blocks = append(blocks, lipgloss.NewStyle().Width(boardColumnW).Render(b.String()))
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
}

// OverviewTable renders a board summary.
func OverviewTable(w io.Writer, s board.Overview) {
	fmt.Fprintln(w, boldStyle.Render(s.BoardName))
	fmt.Fprintf(w, "Total: %d tasks\n\n", s.TotalTasks)

	const colW = 16
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-*s %6s", colW, "COLUMN", "COUNT")))
	for _, cs := range s.Columns {
		fmt.Fprintf(w, "%s %6d\n", padRight(styledAs(cs.Column, cs.Title, statusStyles), colW), cs.Count)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-*s %6s", colW, "PRIORITY", "COUNT")))
	for _, pc := range s.Priorities {
		fmt.Fprintf(w, "%s %6d\n", padRight(styledValue(pc.Priority, priorityStyles), colW), pc.Count)
	}

	if len(s.Assignees) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-*s %6s", colW, "ASSIGNEE", "COUNT")))
		for _, ac := range s.Assignees {
			fmt.Fprintf(w, "%s %6d\n", padRight(ac.Assignee, colW), ac.Count)
		}
	}
}

// GroupedTable renders a grouped board view with per-group column breakdowns.
func GroupedTable(w io.Writer, gs board.GroupedSummary) {
	if len(gs.Groups) == 0 {
		fmt.Fprintln(os.Stderr, "No groups found.")
		return
	}

	for i, g := range gs.Groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, boldStyle.Render(fmt.Sprintf("%s (%d tasks)", g.Key, g.Total)))

		for _, cs := range g.Columns {
			if cs.Count == 0 {
				continue
			}
			const groupColumnW = 16
			fmt.Fprintf(w, "  %s %d\n",
				padRight(styledAs(cs.Column, cs.Title, statusStyles), groupColumnW), cs.Count)
		}
	}
}

// UsersTable renders one page of the user directory.
func UsersTable(w io.Writer, res table.Result) {
	if len(res.Rows) == 0 {
		fmt.Fprintln(os.Stderr, "No users found.")
		return
	}

	const pad = 2
	nameW, emailW, roleW, statusW := 6, 7, 6, 8
	for _, r := range res.Rows {
		nameW = max(nameW, len(r.Name)+pad)
		emailW = max(emailW, len(r.Email)+pad)
		roleW = max(roleW, len(r.Role)+pad)
		statusW = max(statusW, len(r.Status)+pad)
	}

	label := func(field, title string) string {
		if res.Query.OrderBy != field {
			return title
		}
		if res.Query.Order == table.Desc {
			return title + " ▼"
		}
		return title + " ▲"
	}
	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %s",
		nameW, label(table.FieldName, "NAME"), emailW, label(table.FieldEmail, "EMAIL"),
		roleW, label(table.FieldRole, "ROLE"), statusW, label(table.FieldStatus, "STATUS"),
		label(table.FieldLastLogin, "LAST LOGIN"))
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, r := range res.Rows {
		fmt.Fprintf(w, "%-*s %-*s %-*s %s %s\n",
			nameW, r.Name, emailW, r.Email, roleW, r.Role,
			padRight(styledValue(r.Status, userStatusStyles), statusW), r.LastLoginText())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, dimStyle.Render(pageFooter(res)))
}

func pageFooter(res table.Result) string {
	footer := fmt.Sprintf("%d-%d of %d", res.FirstRow, res.LastRow, res.Filtered)
	if res.Filtered != res.Total {
		footer += fmt.Sprintf(" (filtered from %d)", res.Total)
	}
	return footer + fmt.Sprintf(" · page %d/%d · %d per page", res.Query.Page+1, max(res.PageCount, 1), res.RowsPerPage)
}

// DashboardTable renders stat cards, the sales series and a breakdown.
func DashboardTable(w io.Writer, o dashboard.Overview) {
	const cardW = 16
	for _, c := range o.Cards {
		change := okStyle.Render("▲ " + c.Change)
		if !c.Positive {
			change = failStyle.Render("▼ " + c.Change)
		}
		fmt.Fprintf(w, "%s %s %s\n", padRight(c.Title, cardW), padRight(formatNumber(c.Value)+c.Unit, cardW), change)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-8s %8s %8s", "DATE", "ORDERS", "REVENUE")))
	for _, p := range o.Series {
		fmt.Fprintf(w, "%-8s %8d %8d\n", p.Date, p.Orders, p.Revenue)
	}
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%-8s %8d %8d", "total", o.Totals.Orders, o.Totals.Revenue)))
	fmt.Fprintf(w, "Peak revenue %s, avg order value %.2f\n", o.Totals.PeakRevenueDay, o.Totals.AvgOrderValue)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-10s %8s %7s", "COUNTRY", strings.ToUpper(o.Range), "SHARE")))
	for _, s := range o.Breakdown {
		fmt.Fprintf(w, "%-10s %8d %6.1f%%\n", s.Name, s.Value, s.Percent)
	}

	if len(o.Projects) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-18s %-22s %s", "PROJECT", "PROGRESS", "DAYS LEFT")))
		for _, p := range o.Projects {
			fmt.Fprintf(w, "%-18s %s %d\n", p.Title, progressBar(p.Progress), p.DaysLeft)
		}
	}
}

func progressBar(pct int) string {
	const width = 16
	filled := max(0, min(width, pct*width/100)) //nolint:mnd // percent
	bar := okStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
	return padRight(bar+fmt.Sprintf(" %3d%%", pct), 22) //nolint:mnd // column width
}

// ActivityTable renders activity log entries, oldest first.
func ActivityTable(w io.Writer, entries []board.LogEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}

	idW := 8
	for _, e := range entries {
		idW = max(idW, len(e.TaskID)+2) //nolint:mnd // padding
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-20s %-8s %-*s %s", "TIME", "ACTION", idW, "TASK", "DETAIL")))
	for _, e := range entries {
		fmt.Fprintf(w, "%-20s %-8s %-*s %s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Action, idW, e.TaskID, e.Detail)
	}
}

// ScriptTable renders the per-step results of a script run.
func ScriptTable(w io.Writer, rep script.Report) {
	for _, s := range rep.Steps {
		mark := okStyle.Render("ok  ")
		if !s.OK {
			mark = failStyle.Render("FAIL")
		} else if !s.Changed {
			mark = dimStyle.Render("same")
		}
		line := fmt.Sprintf("%3d %s %-7s %s", s.Step, mark, s.Op, s.TaskID)
		if !s.OK {
			line += " " + failStyle.Render(s.Code+": "+s.Error)
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	summary := fmt.Sprintf("%d applied, %d failed", rep.Applied, rep.Failed)
	if rep.Stopped {
		summary += ", stopped at first failure"
	}
	fmt.Fprintln(w, dimStyle.Render(summary))
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

// formatNumber renders whole numbers with thousands separators.
func formatNumber(v float64) string {
	if v != float64(int64(v)) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatInt(int64(v), 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// truncate shortens s to at most n visible cells, marking the cut with "...".
func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+3 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

func stringOrDash(s string) string {
	if s == "" {
		return dimStyle.Render("--")
	}
	return s
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	return styledAs(s, s, styles)
}

// styledAs renders text with the style registered for key.
func styledAs(key, text string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[key]; ok {
		return st.Render(text)
	}
	return text
}
