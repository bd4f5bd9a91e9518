package board

import (
	"sort"
	"strings"

	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

// Sort fields.
const (
	SortBoard    = "board"
	SortID       = "id"
	SortTitle    = "title"
	SortPriority = "priority"
	SortAssignee = "assignee"
	SortDate     = "date"
	SortStatus   = "status"
)

// ValidSortFields returns the accepted --sort values.
func ValidSortFields() []string {
	return []string{SortBoard, SortID, SortTitle, SortPriority, SortAssignee, SortDate, SortStatus}
}

// Sort sorts tasks in place by field. Board order needs the positions of a
// snapshot; status and priority use their fixed order, not alphabetical.
// Ties fall back to board order so results are deterministic.
func Sort(tasks []*task.Task, field string, reverse bool, positions map[string]Location) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if reverse {
			a, b = b, a
		}
		if less, decided := compareTasks(a, b, field); decided {
			return less
		}
		return boardLess(a, b, positions)
	})
}

// compareTasks reports a < b for field, and whether the field told them apart.
func compareTasks(a, b *task.Task, field string) (less, decided bool) {
	switch field {
	case SortID:
		return a.ID < b.ID, a.ID != b.ID
	case SortTitle:
		x, y := strings.ToLower(a.Title), strings.ToLower(b.Title)
		return x < y, x != y
	case SortPriority:
		x, y := task.PriorityIndex(a.Priority), task.PriorityIndex(b.Priority)
		return x < y, x != y
	case SortAssignee:
		x, y := strings.ToLower(a.Assignee), strings.ToLower(b.Assignee)
		return x < y, x != y
	case SortDate:
		if a.Date == b.Date {
			return false, false
		}
		return a.Date.Before(b.Date), true
	case SortStatus:
		x, y := task.StatusIndex(a.Status), task.StatusIndex(b.Status)
		return x < y, x != y
	default:
		return false, false
	}
}

func boardLess(a, b *task.Task, positions map[string]Location) bool {
	pa, okA := positions[a.ID]
	pb, okB := positions[b.ID]
	if !okA || !okB {
		return okA && !okB
	}
	ca, cb := task.StatusIndex(pa.Column), task.StatusIndex(pb.Column)
	if ca != cb {
		return ca < cb
	}
	return pa.Index < pb.Index
}
