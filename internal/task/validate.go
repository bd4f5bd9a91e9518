package task

import (
	"strings"

	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
)

// ValidateStatus checks that status names one of the board columns.
func ValidateStatus(status string) error {
	if StatusIndex(status) >= 0 {
		return nil
	}
	return clierr.Newf(clierr.ColumnNotFound, "unknown column %q", status).
		WithDetails(map[string]any{
			"column":  status,
			"allowed": Statuses(),
		})
}

// ValidatePriority checks that a priority is one of high, medium or low.
func ValidatePriority(priority string) error {
	if PriorityIndex(priority) >= 0 {
		return nil
	}
	return clierr.Newf(clierr.InvalidPriority, "invalid priority %q", priority).
		WithDetails(map[string]any{
			"priority": priority,
			"allowed":  Priorities(),
		})
}

// ValidateTaskID returns a CLIError for malformed task ID input.
func ValidateTaskID(input string) error {
	if strings.TrimSpace(input) != "" && !strings.ContainsAny(input, " \t\n") {
		return nil
	}
	return clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", input).
		WithDetails(map[string]any{"input": input})
}

// ValidateIndex checks that index is a valid insertion point into a sequence
// of length n, i.e. 0 <= index <= n.
func ValidateIndex(column string, index, n int) error {
	if index >= 0 && index <= n {
		return nil
	}
	return clierr.Newf(clierr.InvalidIndex,
		"index %d out of range for column %q (0..%d)", index, column, n).
		WithDetails(map[string]any{
			"column": column,
			"index":  index,
			"max":    n,
		})
}

// NotFound returns the error for a task id missing from the board.
func NotFound(id string) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task not found: %s", id).
		WithDetails(map[string]any{"id": id})
}
