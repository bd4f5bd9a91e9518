package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/deskboard/internal/board"
	"github.com/twiced-technology-gmbh/deskboard/internal/dashboard"
	"github.com/twiced-technology-gmbh/deskboard/internal/script"
	"github.com/twiced-technology-gmbh/deskboard/internal/table"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t *task.Task, loc board.Location) {
	fmt.Fprintln(w, formatTaskLine(t)+" at:"+loc.String())
	if t.Description != "" {
		for _, line := range strings.Split(t.Description, "\n") {
			fmt.Fprintln(w, "  "+line)
		}
	}
}

// BoardCompact renders every column as a header line followed by its tasks.
func BoardCompact(w io.Writer, s board.Snapshot) {
	for _, c := range s.Columns {
		fmt.Fprintf(w, "%s (%d)\n", c.Title, len(c.TaskIDs))
		for i, t := range s.ColumnTasks(c.ID) {
			fmt.Fprintf(w, "  %d. %s\n", i, formatTaskLine(t))
		}
	}
}

// OverviewCompact renders a board summary in compact format.
func OverviewCompact(w io.Writer, s board.Overview) {
	fmt.Fprintf(w, "%s (%d tasks)\n", s.BoardName, s.TotalTasks)

	for _, cs := range s.Columns {
		fmt.Fprintln(w, "  "+cs.Title+": "+strconv.Itoa(cs.Count))
	}

	if len(s.Priorities) > 0 {
		parts := make([]string, 0, len(s.Priorities))
		for _, pc := range s.Priorities {
			parts = append(parts, pc.Priority+"="+strconv.Itoa(pc.Count))
		}
		fmt.Fprintln(w, "Priority: "+strings.Join(parts, " "))
	}
}

// GroupedCompact renders a grouped view with one line per group.
func GroupedCompact(w io.Writer, gs board.GroupedSummary) {
	for _, g := range gs.Groups {
		parts := make([]string, 0, len(g.Columns))
		for _, cs := range g.Columns {
			if cs.Count > 0 {
				parts = append(parts, cs.Column+"="+strconv.Itoa(cs.Count))
			}
		}
		fmt.Fprintf(w, "%s (%d): %s\n", g.Key, g.Total, strings.Join(parts, " "))
	}
}

// UsersCompact renders one page of users, one per line.
func UsersCompact(w io.Writer, res table.Result) {
	for _, r := range res.Rows {
		fmt.Fprintf(w, "%s <%s> %s/%s %s\n", r.Name, r.Email, r.Role, r.Status, r.LastLoginText())
	}
	fmt.Fprintln(w, pageFooter(res))
}

// DashboardCompact renders the dashboard as key=value lines.
func DashboardCompact(w io.Writer, o dashboard.Overview) {
	s := o.Stats
	fmt.Fprintf(w, "users=%d orders=%d revenue=%d conversion=%g%%\n", s.Users, s.Orders, s.Revenue, s.Conversion)
	fmt.Fprintf(w, "series days=%d orders=%d revenue=%d peak=%s\n",
		o.Totals.Days, o.Totals.Orders, o.Totals.Revenue, strings.ReplaceAll(o.Totals.PeakRevenueDay, " ", "-"))
	parts := make([]string, 0, len(o.Breakdown))
	for _, sl := range o.Breakdown {
		parts = append(parts, sl.Name+"="+strconv.Itoa(sl.Value))
	}
	fmt.Fprintf(w, "%s %s\n", o.Range, strings.Join(parts, " "))
}

// ActivityCompact renders activity entries one per line.
func ActivityCompact(w io.Writer, entries []board.LogEntry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s %s %s\n", e.Timestamp.UTC().Format("2006-01-02T15:04:05Z"), e.Action, e.TaskID, e.Detail)
	}
}

// ScriptCompact renders script results one step per line.
func ScriptCompact(w io.Writer, rep script.Report) {
	for _, s := range rep.Steps {
		status := "ok"
		if !s.OK {
			status = "error:" + s.Code
		} else if !s.Changed {
			status = "unchanged"
		}
		fmt.Fprintln(w, strings.TrimRight(fmt.Sprintf("%d %s %s %s", s.Step, s.Op, status, s.TaskID), " "))
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t *task.Task) string {
	line := t.ID + " [" + t.Status + "/" + t.Priority + "] " + t.Title
	if t.Assignee != "" && t.Assignee != task.DefaultAssignee {
		line += " @" + t.Assignee
	}
	if !t.Date.IsZero() {
		line += " (" + t.Date.String() + ")"
	}
	return line
}
