package board

import (
	"strings"

	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

// FilterOptions defines which tasks to include.
type FilterOptions struct {
	Columns        []string
	ExcludeColumns []string
	Priorities     []string
	Assignee       string
	Search         string // case-insensitive substring match across title, description, and assignee
}

// Filter returns tasks matching all specified criteria (AND logic).
func Filter(tasks []*task.Task, opts FilterOptions) []*task.Task {
	var result []*task.Task
	for _, t := range tasks {
		if matchesFilter(t, opts) {
			result = append(result, t)
		}
	}
	return result
}

func matchesFilter(t *task.Task, opts FilterOptions) bool {
	if !matchesColumn(t.Status, opts.Columns, opts.ExcludeColumns) {
		return false
	}
	if len(opts.Priorities) > 0 && !containsStr(opts.Priorities, t.Priority) {
		return false
	}
	if opts.Assignee != "" && !strings.EqualFold(t.Assignee, opts.Assignee) {
		return false
	}
	if opts.Search != "" && !matchesSearch(t, opts.Search) {
		return false
	}
	return true
}

func matchesColumn(status string, include, exclude []string) bool {
	if len(include) > 0 && !containsStr(include, status) {
		return false
	}
	if len(exclude) > 0 && containsStr(exclude, status) {
		return false
	}
	return true
}

func matchesSearch(t *task.Task, query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{t.Title, t.Description, t.Assignee} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func containsStr(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
