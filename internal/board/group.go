package board

import (
	"sort"

	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

const (
	groupAssignee = "assignee"
	groupPriority = "priority"
	groupStatus   = "status"
)

// GroupedSummary holds tasks grouped by a field.
type GroupedSummary struct {
	Field  string         `json:"field" yaml:"field"`
	Groups []GroupSummary `json:"groups" yaml:"groups"`
}

// GroupSummary is one group within a grouped view.
type GroupSummary struct {
	Key     string          `json:"key" yaml:"key"`
	Columns []ColumnSummary `json:"columns" yaml:"columns"`
	Total   int             `json:"total" yaml:"total"`
}

// GroupBy groups tasks by the specified field and returns per-column counts
// for each group. titles supplies column display titles.
func GroupBy(tasks []*task.Task, field string, titles map[string]string) GroupedSummary {
	groups := make(map[string][]*task.Task)
	for _, t := range tasks {
		key := groupKey(t, field)
		groups[key] = append(groups[key], t)
	}

	result := GroupedSummary{Field: field, Groups: make([]GroupSummary, 0, len(groups))}
	for _, key := range sortGroupKeys(groups, field) {
		result.Groups = append(result.Groups, GroupSummary{
			Key:     key,
			Columns: columnCounts(groups[key], titles),
			Total:   len(groups[key]),
		})
	}
	return result
}

func groupKey(t *task.Task, field string) string {
	switch field {
	case groupAssignee:
		if t.Assignee == "" {
			return task.DefaultAssignee
		}
		return t.Assignee
	case groupPriority:
		return t.Priority
	case groupStatus:
		return t.Status
	default:
		return "(all)"
	}
}

func sortGroupKeys(groups map[string][]*task.Task, field string) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}

	switch field {
	case groupStatus:
		sort.SliceStable(keys, func(i, j int) bool {
			return task.StatusIndex(keys[i]) < task.StatusIndex(keys[j])
		})
	case groupPriority:
		sort.SliceStable(keys, func(i, j int) bool {
			return task.PriorityIndex(keys[i]) < task.PriorityIndex(keys[j])
		})
	default:
		sort.Strings(keys)
	}
	return keys
}

func columnCounts(tasks []*task.Task, titles map[string]string) []ColumnSummary {
	counts := make(map[string]int)
	for _, t := range tasks {
		counts[t.Status]++
	}
	out := make([]ColumnSummary, 0, len(task.Statuses()))
	for _, id := range task.Statuses() {
		out = append(out, ColumnSummary{Column: id, Title: titleFor(titles, id), Count: counts[id]})
	}
	return out
}

func titleFor(titles map[string]string, id string) string {
	if t := titles[id]; t != "" {
		return t
	}
	return task.DefaultTitle(id)
}

// ValidGroupByFields returns the list of valid --group-by field names.
func ValidGroupByFields() []string {
	return []string{groupAssignee, groupPriority, groupStatus}
}
