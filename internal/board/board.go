// Package board owns the in-memory Kanban board: the ordered task-id
// sequence of every column and the task records those ids point to.
// All mutation goes through the Board methods, which keep the two in step.
package board

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

// Column is one board column: a fixed id, a display title, and the ordered
// ids of the tasks it holds.
type Column struct {
	ID      string   `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	TaskIDs []string `json:"task_ids" yaml:"task_ids"`
}

// Location addresses a position inside a column.
type Location struct {
	Column string `json:"column" yaml:"column"`
	Index  int    `json:"index" yaml:"index"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s[%d]", l.Column, l.Index)
}

// Event describes one applied mutation.
type Event struct {
	Action string    `json:"action"`
	TaskID string    `json:"task_id"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

// Mutation actions reported in Event.Action.
const (
	ActionAdd    = "add"
	ActionMove   = "move"
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionStatus = "status"
)

// Board is the board state manager. It is safe for concurrent use; each
// operation is applied as a unit under the board lock.
type Board struct {
	mu      sync.RWMutex
	columns map[string]*Column
	tasks   map[string]*task.Task

	newID   func() string
	now     func() time.Time
	logger  *log.Logger
	observe func(Event)
}

// Option configures a Board.
type Option func(*Board)

// WithIDGenerator sets the function used to mint ids for new tasks.
func WithIDGenerator(fn func() string) Option {
	return func(b *Board) {
		if fn != nil {
			b.newID = fn
		}
	}
}

// WithClock sets the clock used to date new tasks.
func WithClock(fn func() time.Time) Option {
	return func(b *Board) {
		if fn != nil {
			b.now = fn
		}
	}
}

// WithTitles overrides column display titles, keyed by column id.
// Unknown ids and empty titles are ignored.
func WithTitles(titles map[string]string) Option {
	return func(b *Board) {
		for id, title := range titles {
			if col, ok := b.columns[id]; ok && title != "" {
				col.Title = title
			}
		}
	}
}

// WithLogger sets the logger that receives a debug line per mutation.
func WithLogger(l *log.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithObserver registers fn to receive every applied mutation. fn runs while
// the board lock is held and must not call back into the board.
func WithObserver(fn func(Event)) Option {
	return func(b *Board) {
		b.observe = fn
	}
}

// New builds a board from seed tasks, partitioning them into columns by
// status. Seed order is preserved within each column. Seed tasks are copied.
func New(seed []*task.Task, opts ...Option) (*Board, error) {
	b := &Board{
		columns: make(map[string]*Column, len(task.Statuses())),
		tasks:   make(map[string]*task.Task, len(seed)),
		newID:   task.NewID,
		now:     time.Now,
		logger:  log.Default(),
	}
	for _, id := range task.Statuses() {
		b.columns[id] = &Column{ID: id, Title: task.DefaultTitle(id), TaskIDs: []string{}}
	}

	for _, t := range seed {
		if t == nil {
			continue
		}
		if err := task.ValidateTaskID(t.ID); err != nil {
			return nil, err
		}
		if _, dup := b.tasks[t.ID]; dup {
			return nil, clierr.Newf(clierr.DuplicateTaskID, "duplicate task id %q in seed", t.ID).
				WithDetails(map[string]any{"id": t.ID})
		}
		col, ok := b.columns[t.Status]
		if !ok {
			return nil, fmt.Errorf("seeding task %s: %w", t.ID, task.ValidateStatus(t.Status))
		}
		b.tasks[t.ID] = t.Clone()
		col.TaskIDs = append(col.TaskIDs, t.ID)
	}

	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// SetTitles replaces column display titles, e.g. after a config reload.
func (b *Board) SetTitles(titles map[string]string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	WithTitles(titles)(b)
}

// Snapshot returns a deep copy of the current board state.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s := Snapshot{
		Columns: make([]Column, 0, len(b.columns)),
		Tasks:   make(map[string]task.Task, len(b.tasks)),
	}
	for _, id := range task.Statuses() {
		col := b.columns[id]
		s.Columns = append(s.Columns, Column{
			ID:      col.ID,
			Title:   col.Title,
			TaskIDs: append([]string{}, col.TaskIDs...),
		})
	}
	for id, t := range b.tasks {
		s.Tasks[id] = *t
	}
	return s
}

// Task returns a copy of the task with the given id.
func (b *Board) Task(id string) (task.Task, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	t, ok := b.tasks[id]
	if !ok {
		return task.Task{}, task.NotFound(id)
	}
	return *t, nil
}

// Locate returns the column and index currently holding the task.
func (b *Board) Locate(id string) (Location, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.locate(id)
}

// Len returns the number of tasks on the board.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.tasks)
}

func (b *Board) locate(id string) (Location, error) {
	t, ok := b.tasks[id]
	if !ok {
		return Location{}, task.NotFound(id)
	}
	col := b.columns[t.Status]
	for i, tid := range col.TaskIDs {
		if tid == id {
			return Location{Column: col.ID, Index: i}, nil
		}
	}
	// Unreachable while the mutation methods are the only writers.
	return Location{}, clierr.Newf(clierr.InternalError,
		"task %s has status %q but is not in that column", id, t.Status)
}

func (b *Board) column(id string) (*Column, error) {
	col, ok := b.columns[id]
	if !ok {
		return nil, task.ValidateStatus(id)
	}
	return col, nil
}

// emit reports a mutation. Callers hold the write lock.
func (b *Board) emit(action, taskID, detail string) {
	ev := Event{Action: action, TaskID: taskID, Detail: detail, At: b.now()}
	b.logger.Debug("board mutation", "action", action, "task_id", taskID, "detail", detail)
	if b.observe != nil {
		b.observe(ev)
	}
}
