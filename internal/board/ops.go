package board

import (
	"strings"

	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/deskboard/internal/date"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

// ErrBlankTitle is returned by AddTask when the title is empty after
// trimming. The board is left untouched and callers keep their input.
var ErrBlankTitle = clierr.New(clierr.InvalidInput, "task title is required")

// MoveTask moves a task from src to dst, the resolved result of a drag.
//
// The task is removed from src first and then inserted at dst.Index, so for
// a move within one column the index counts positions after the removal.
// A nil dst is a cancelled drag and a move to the same position is a no-op;
// both report false. When the columns differ the task's status follows.
//
// src must name the task's current position. Any invalid reference returns
// an error and leaves the board unchanged.
func (b *Board) MoveTask(taskID string, src Location, dst *Location) (bool, error) {
	if dst == nil {
		return false, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.tasks[taskID]
	if !ok {
		return false, task.NotFound(taskID)
	}
	from, err := b.column(src.Column)
	if err != nil {
		return false, err
	}
	to, err := b.column(dst.Column)
	if err != nil {
		return false, err
	}
	if src.Index < 0 || src.Index >= len(from.TaskIDs) || from.TaskIDs[src.Index] != taskID {
		return false, clierr.Newf(clierr.IndexMismatch,
			"task %s is not at %s", taskID, src).
			WithDetails(map[string]any{"id": taskID, "column": src.Column, "index": src.Index})
	}
	if src.Column == dst.Column && src.Index == dst.Index {
		return false, nil
	}

	remaining := removeAt(from.TaskIDs, src.Index)
	if from == to {
		if err := task.ValidateIndex(dst.Column, dst.Index, len(remaining)); err != nil {
			return false, err
		}
		from.TaskIDs = insertAt(remaining, dst.Index, taskID)
	} else {
		if err := task.ValidateIndex(dst.Column, dst.Index, len(to.TaskIDs)); err != nil {
			return false, err
		}
		from.TaskIDs = remaining
		to.TaskIDs = insertAt(to.TaskIDs, dst.Index, taskID)
		t.Status = to.ID
	}

	b.emit(ActionMove, taskID, src.String()+" -> "+dst.String())
	return true, nil
}

// ChangeStatus moves a task to the end of another column. It produces the
// same state as dragging the task to that position and is a no-op when the
// task already has that status.
func (b *Board) ChangeStatus(taskID, status string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.tasks[taskID]
	if !ok {
		return false, task.NotFound(taskID)
	}
	to, err := b.column(status)
	if err != nil {
		return false, err
	}
	if t.Status == status {
		return false, nil
	}

	src, err := b.locate(taskID)
	if err != nil {
		return false, err
	}
	from := b.columns[src.Column]
	from.TaskIDs = removeAt(from.TaskIDs, src.Index)
	to.TaskIDs = insertAt(to.TaskIDs, len(to.TaskIDs), taskID)
	t.Status = status

	b.emit(ActionStatus, taskID, src.Column+" -> "+status)
	return true, nil
}

// AddTask creates a task at the end of column. The new task is unassigned,
// has medium priority, and is dated today. A blank title returns
// ErrBlankTitle without changing the board.
func (b *Board) AddTask(column, title, description string) (task.Task, error) {
	if strings.TrimSpace(title) == "" {
		return task.Task{}, ErrBlankTitle
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	col, err := b.column(column)
	if err != nil {
		return task.Task{}, err
	}

	id := b.newID()
	if _, exists := b.tasks[id]; exists {
		return task.Task{}, clierr.Newf(clierr.DuplicateTaskID, "generated task id %q already exists", id).
			WithDetails(map[string]any{"id": id})
	}

	t := &task.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Assignee:    task.DefaultAssignee,
		Priority:    task.DefaultPriority,
		Status:      col.ID,
		Date:        date.New(b.now()),
	}
	b.tasks[id] = t
	col.TaskIDs = insertAt(col.TaskIDs, len(col.TaskIDs), id)

	b.emit(ActionAdd, id, title)
	return *t, nil
}

// DeleteTask removes a task from its column and from the task map together.
func (b *Board) DeleteTask(taskID string) (task.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	loc, err := b.locate(taskID)
	if err != nil {
		return task.Task{}, err
	}
	t := b.tasks[taskID]

	col := b.columns[loc.Column]
	col.TaskIDs = removeAt(col.TaskIDs, loc.Index)
	delete(b.tasks, taskID)

	b.emit(ActionDelete, taskID, t.Title)
	return *t, nil
}

// EditTask replaces a task's title and description. Both may be empty.
// Status, priority, assignee, date and position are left alone.
func (b *Board) EditTask(taskID, title, description string) (task.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.tasks[taskID]
	if !ok {
		return task.Task{}, task.NotFound(taskID)
	}
	t.Title = title
	t.Description = description

	b.emit(ActionEdit, taskID, title)
	return *t, nil
}

// removeAt returns a new slice without ids[i].
func removeAt(ids []string, i int) []string {
	out := make([]string, 0, len(ids)-1)
	out = append(out, ids[:i]...)
	return append(out, ids[i+1:]...)
}

// insertAt returns a new slice with id inserted before position i.
func insertAt(ids []string, i int, id string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:i]...)
	out = append(out, id)
	return append(out, ids[i:]...)
}
