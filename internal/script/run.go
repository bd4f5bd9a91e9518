package script

import (
	"errors"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/deskboard/internal/board"
	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

// StepResult reports the outcome of one operation.
type StepResult struct {
	Step    int        `json:"step" yaml:"step"`
	Op      string     `json:"op" yaml:"op"`
	TaskID  string     `json:"task_id,omitempty" yaml:"task_id,omitempty"`
	OK      bool       `json:"ok" yaml:"ok"`
	Changed bool       `json:"changed" yaml:"changed"`
	Task    *task.Task `json:"task,omitempty" yaml:"task,omitempty"`
	Error   string     `json:"error,omitempty" yaml:"error,omitempty"`
	Code    string     `json:"code,omitempty" yaml:"code,omitempty"`

	err error
}

// Err returns the error the step failed with, if any.
func (r StepResult) Err() error { return r.err }

// Report is the result of a script run.
type Report struct {
	Steps   []StepResult `json:"steps" yaml:"steps"`
	Applied int          `json:"applied" yaml:"applied"`
	Failed  int          `json:"failed" yaml:"failed"`
	Stopped bool         `json:"stopped,omitempty" yaml:"stopped,omitempty"`
}

// Run applies ops to b in order. Each operation is applied atomically by the
// board; a failed step changes nothing. With keepGoing false the run stops
// at the first failure and later steps are not attempted.
func Run(b *board.Board, ops []Op, keepGoing bool) Report {
	var rep Report
	created := make(map[int]string)
	for i, op := range ops {
		step := i + 1
		res := Exec(b, op, created)
		res.Step = step
		rep.Steps = append(rep.Steps, res)

		if !res.OK {
			rep.Failed++
			if !keepGoing {
				rep.Stopped = i < len(ops)-1
				break
			}
			continue
		}
		rep.Applied++
		if op.Op == OpAdd {
			created[step] = res.TaskID
		}
	}
	return rep
}

// Exec applies a single operation. created maps step numbers to the ids of
// tasks added by those steps and resolves "$N" references; it may be nil.
func Exec(b *board.Board, op Op, created map[int]string) StepResult {
	res := StepResult{Op: op.Op}
	id, err := resolveID(op.ID, created)
	if err != nil {
		return res.fail(err)
	}
	res.TaskID = id

	var changed bool
	switch op.Op {
	case OpAdd:
		var t task.Task
		t, err = b.AddTask(op.Column, deref(op.Title, ""), deref(op.Description, ""))
		if err == nil {
			res.TaskID = t.ID
			changed = true
		}
	case OpMove:
		changed, err = move(b, id, op)
	case OpStatus:
		changed, err = b.ChangeStatus(id, op.Column)
	case OpEdit:
		changed, err = edit(b, id, op)
	case OpDelete:
		var t task.Task
		t, err = b.DeleteTask(id)
		if err == nil {
			res.Task = &t
			changed = true
		}
	default:
		err = op.Validate(0)
	}
	if err != nil {
		return res.fail(err)
	}

	res.OK = true
	res.Changed = changed
	if res.Task == nil {
		if t, terr := b.Task(res.TaskID); terr == nil {
			res.Task = &t
		}
	}
	return res
}

func move(b *board.Board, id string, op Op) (bool, error) {
	src, err := b.Locate(id)
	if err != nil {
		return false, err
	}
	if op.FromIndex != nil {
		src.Index = *op.FromIndex
	}

	dst := board.Location{Column: op.Column}
	if op.Index != nil {
		dst.Index = *op.Index
	} else {
		c, ok := b.Snapshot().Column(op.Column)
		if !ok {
			return false, task.ValidateStatus(op.Column)
		}
		dst.Index = len(c.TaskIDs)
		if op.Column == src.Column {
			dst.Index--
		}
	}
	return b.MoveTask(id, src, &dst)
}

func edit(b *board.Board, id string, op Op) (bool, error) {
	cur, err := b.Task(id)
	if err != nil {
		return false, err
	}
	title := deref(op.Title, cur.Title)
	desc := deref(op.Description, cur.Description)
	if title == cur.Title && desc == cur.Description {
		return false, nil
	}
	_, err = b.EditTask(id, title, desc)
	return err == nil, err
}

// resolveID expands a "$N" reference to the id created by step N.
func resolveID(ref string, created map[int]string) (string, error) {
	rest, ok := strings.CutPrefix(ref, "$")
	if !ok {
		return ref, nil
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return "", clierr.Newf(clierr.InvalidScript, "invalid step reference %q", ref)
	}
	id, ok := created[n]
	if !ok {
		return "", clierr.Newf(clierr.InvalidScript, "step reference %q does not name an earlier successful add", ref).
			WithDetails(map[string]any{"ref": ref})
	}
	return id, nil
}

func (r StepResult) fail(err error) StepResult {
	r.err = err
	r.Error = err.Error()
	r.Code = clierr.InternalError
	var ce *clierr.Error
	if errors.As(err, &ce) {
		r.Code = ce.Code
	}
	return r
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
