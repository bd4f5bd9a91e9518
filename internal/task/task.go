// Package task defines board task records, their validation, and seed loading.
package task

import (
	"github.com/google/uuid"

	"github.com/twiced-technology-gmbh/deskboard/internal/date"
)

// Column ids, in display order. A task's status is always one of these.
const (
	StatusTodo       = "todo"
	StatusInProgress = "inProgress"
	StatusReview     = "review"
	StatusDone       = "done"
)

// Priorities, highest first.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Defaults applied to every newly created task.
const (
	DefaultAssignee = "Unassigned"
	DefaultPriority = PriorityMedium

	idPrefix = "task-"
)

// Task is a single card on the board.
type Task struct {
	ID          string     `yaml:"id" json:"id" toml:"id"`
	Title       string     `yaml:"title" json:"title" toml:"title"`
	Description string     `yaml:"description,omitempty" json:"description" toml:"description,omitempty"`
	Assignee    string     `yaml:"assignee,omitempty" json:"assignee" toml:"assignee,omitempty"`
	Priority    string     `yaml:"priority,omitempty" json:"priority" toml:"priority,omitempty"`
	Status      string     `yaml:"status" json:"status" toml:"status"`
	Date        date.Label `yaml:"date,omitempty" json:"date" toml:"date"`
}

// Clone returns a copy of t. Task holds no reference types, so a value copy
// is already deep.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

// Statuses returns the column ids in display order.
func Statuses() []string {
	return []string{StatusTodo, StatusInProgress, StatusReview, StatusDone}
}

// Priorities returns the priority levels, highest first.
func Priorities() []string {
	return []string{PriorityHigh, PriorityMedium, PriorityLow}
}

// DefaultTitle returns the display label for a column id.
func DefaultTitle(status string) string {
	switch status {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusReview:
		return "Review"
	case StatusDone:
		return "Done"
	default:
		return status
	}
}

// StatusIndex returns the display position of a column id, or -1.
func StatusIndex(status string) int {
	return indexOf(Statuses(), status)
}

// PriorityIndex returns the rank of a priority (0 = high), or -1.
func PriorityIndex(priority string) int {
	return indexOf(Priorities(), priority)
}

// NewID returns a fresh task id. UUIDv7 embeds a millisecond timestamp, so
// ids sort in creation order and stay unique within the same millisecond.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does; fall back to v4.
		return idPrefix + uuid.NewString()
	}
	return idPrefix + id.String()
}

func indexOf(slice []string, item string) int {
	for i, s := range slice {
		if s == item {
			return i
		}
	}
	return -1
}
