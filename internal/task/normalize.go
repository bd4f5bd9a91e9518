package task

import (
	"fmt"
	"strings"

	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
)

// ReadWarning records a seed entry that was skipped during lenient loading.
type ReadWarning struct {
	File  string
	Index int
	ID    string
	Err   error
}

func (w ReadWarning) String() string {
	where := fmt.Sprintf("entry %d", w.Index)
	if w.ID != "" {
		where += " (" + w.ID + ")"
	}
	if w.File != "" {
		where = w.File + ": " + where
	}
	return where + ": " + w.Err.Error()
}

// Normalize fills defaults on seed tasks and drops invalid ones. Entries with
// an empty or duplicate id, or an unknown status or priority, are skipped.
// The returned tasks are copies; the input is not modified.
func Normalize(tasks []*Task) ([]*Task, []ReadWarning) {
	seen := make(map[string]bool, len(tasks))
	valid := make([]*Task, 0, len(tasks))
	var warnings []ReadWarning

	for i, in := range tasks {
		if in == nil {
			continue
		}
		t := in.Clone()
		t.ID = strings.TrimSpace(t.ID)
		if t.Assignee == "" {
			t.Assignee = DefaultAssignee
		}
		if t.Priority == "" {
			t.Priority = DefaultPriority
		}

		var err error
		switch {
		case t.ID == "":
			err = clierr.New(clierr.InvalidTaskID, "task id is required")
		case ValidateTaskID(t.ID) != nil:
			err = ValidateTaskID(t.ID)
		case seen[t.ID]:
			err = clierr.Newf(clierr.DuplicateTaskID, "duplicate task id %q", t.ID)
		default:
			err = ValidateStatus(t.Status)
			if err == nil {
				err = ValidatePriority(t.Priority)
			}
		}
		if err != nil {
			warnings = append(warnings, ReadWarning{Index: i, ID: t.ID, Err: err})
			continue
		}

		seen[t.ID] = true
		valid = append(valid, t)
	}
	return valid, warnings
}
