package board

import (
	"fmt"

	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

// Snapshot is an immutable copy of the board. Columns are in display order.
type Snapshot struct {
	Columns []Column             `json:"columns" yaml:"columns"`
	Tasks   map[string]task.Task `json:"tasks" yaml:"tasks"`
}

// Column returns the column with the given id.
func (s Snapshot) Column(id string) (Column, bool) {
	for _, c := range s.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// Titles returns column display titles keyed by column id.
func (s Snapshot) Titles() map[string]string {
	titles := make(map[string]string, len(s.Columns))
	for _, c := range s.Columns {
		titles[c.ID] = c.Title
	}
	return titles
}

// Ordered returns every task in board order: column by column, top to bottom.
func (s Snapshot) Ordered() []*task.Task {
	out := make([]*task.Task, 0, len(s.Tasks))
	for _, c := range s.Columns {
		for _, id := range c.TaskIDs {
			t := s.Tasks[id]
			out = append(out, &t)
		}
	}
	return out
}

// ColumnTasks returns the tasks of one column in order.
func (s Snapshot) ColumnTasks(id string) []*task.Task {
	c, ok := s.Column(id)
	if !ok {
		return nil
	}
	out := make([]*task.Task, 0, len(c.TaskIDs))
	for _, tid := range c.TaskIDs {
		t := s.Tasks[tid]
		out = append(out, &t)
	}
	return out
}

// Positions maps every task id to its location.
func (s Snapshot) Positions() map[string]Location {
	pos := make(map[string]Location, len(s.Tasks))
	for _, c := range s.Columns {
		for i, id := range c.TaskIDs {
			pos[id] = Location{Column: c.ID, Index: i}
		}
	}
	return pos
}

// CheckInvariants verifies that the column sequences and the task map agree:
// every column id is known, every task id appears exactly once across all
// columns, no column lists an unknown id, and each task's status names the
// column holding it.
func CheckInvariants(s Snapshot) error {
	seen := make(map[string]string, len(s.Tasks))
	for _, c := range s.Columns {
		if err := task.ValidateStatus(c.ID); err != nil {
			return err
		}
		for _, id := range c.TaskIDs {
			if prev, dup := seen[id]; dup {
				return invariantErr("task %s appears in both %s and %s", id, prev, c.ID)
			}
			seen[id] = c.ID
			t, ok := s.Tasks[id]
			if !ok {
				return invariantErr("column %s lists unknown task %s", c.ID, id)
			}
			if t.Status != c.ID {
				return invariantErr("task %s has status %q but sits in %s", id, t.Status, c.ID)
			}
		}
	}
	for id := range s.Tasks {
		if _, ok := seen[id]; !ok {
			return invariantErr("task %s is not in any column", id)
		}
	}
	return nil
}

func invariantErr(format string, args ...any) error {
	return clierr.New(clierr.InternalError, "board invariant violated: "+fmt.Sprintf(format, args...))
}
