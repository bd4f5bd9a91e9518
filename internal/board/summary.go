package board

import (
	"sort"

	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

// ListOptions controls how tasks are listed.
type ListOptions struct {
	Filter  FilterOptions
	SortBy  string
	Reverse bool
	Limit   int
}

// List applies filters and sorting to the tasks of a snapshot.
func List(s Snapshot, opts ListOptions) []*task.Task {
	tasks := Filter(s.Ordered(), opts.Filter)

	sortField := opts.SortBy
	if sortField == "" {
		sortField = SortBoard
	}
	Sort(tasks, sortField, opts.Reverse, s.Positions())

	if opts.Limit > 0 && len(tasks) > opts.Limit {
		tasks = tasks[:opts.Limit]
	}
	return tasks
}

// ColumnSummary holds the task count of a single column.
type ColumnSummary struct {
	Column string `json:"column" yaml:"column"`
	Title  string `json:"title" yaml:"title"`
	Count  int    `json:"count" yaml:"count"`
}

// PriorityCount holds a count for a priority level.
type PriorityCount struct {
	Priority string `json:"priority" yaml:"priority"`
	Count    int    `json:"count" yaml:"count"`
}

// AssigneeCount holds a count for an assignee.
type AssigneeCount struct {
	Assignee string `json:"assignee" yaml:"assignee"`
	Count    int    `json:"count" yaml:"count"`
}

// Overview is the aggregate board overview.
type Overview struct {
	BoardName  string          `json:"board_name" yaml:"board_name"`
	TotalTasks int             `json:"total_tasks" yaml:"total_tasks"`
	Columns    []ColumnSummary `json:"columns" yaml:"columns"`
	Priorities []PriorityCount `json:"priorities" yaml:"priorities"`
	Assignees  []AssigneeCount `json:"assignees" yaml:"assignees"`
}

// Summary computes a board overview from a snapshot.
func Summary(name string, s Snapshot) Overview {
	columns := make([]ColumnSummary, 0, len(s.Columns))
	for _, c := range s.Columns {
		columns = append(columns, ColumnSummary{Column: c.ID, Title: c.Title, Count: len(c.TaskIDs)})
	}

	prioMap := make(map[string]int, len(task.Priorities()))
	assigneeMap := make(map[string]int)
	for _, t := range s.Tasks {
		prioMap[t.Priority]++
		assigneeMap[t.Assignee]++
	}

	priorities := make([]PriorityCount, 0, len(task.Priorities()))
	for _, p := range task.Priorities() {
		priorities = append(priorities, PriorityCount{Priority: p, Count: prioMap[p]})
	}

	assignees := make([]AssigneeCount, 0, len(assigneeMap))
	for a, n := range assigneeMap {
		assignees = append(assignees, AssigneeCount{Assignee: a, Count: n})
	}
	sort.Slice(assignees, func(i, j int) bool {
		if assignees[i].Count != assignees[j].Count {
			return assignees[i].Count > assignees[j].Count
		}
		return assignees[i].Assignee < assignees[j].Assignee
	})

	return Overview{
		BoardName:  name,
		TotalTasks: len(s.Tasks),
		Columns:    columns,
		Priorities: priorities,
		Assignees:  assignees,
	}
}
