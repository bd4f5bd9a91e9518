package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/deskboard/internal/board"
	"github.com/twiced-technology-gmbh/deskboard/internal/dashboard"
	"github.com/twiced-technology-gmbh/deskboard/internal/date"
	"github.com/twiced-technology-gmbh/deskboard/internal/script"
	"github.com/twiced-technology-gmbh/deskboard/internal/table"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

func init() {
	DisableColor()
}

func sampleSnapshot(t *testing.T) board.Snapshot {
	t.Helper()
	b, err := board.New([]*task.Task{
		{ID: "task1", Title: "Design layout", Description: "Wireframe", Assignee: "John Doe", Priority: "high", Status: "todo", Date: date.Of(time.June, 20)},
		{ID: "task2", Title: "Login Page", Assignee: "Unassigned", Priority: "medium", Status: "inProgress"},
	})
	require.NoError(t, err)
	return b.Snapshot()
}

func TestDetect(t *testing.T) {
	t.Setenv(EnvVar, "")
	assert.Equal(t, FormatTable, Detect(false, false, false, false))
	assert.Equal(t, FormatJSON, Detect(true, true, true, true))
	assert.Equal(t, FormatYAML, Detect(false, true, false, true))
	assert.Equal(t, FormatCompact, Detect(false, false, true, true))

	t.Setenv(EnvVar, "yaml")
	assert.Equal(t, FormatYAML, Detect(false, false, false, false))
	assert.Equal(t, FormatTable, Detect(false, false, true, false))
	t.Setenv(EnvVar, "oneline")
	assert.Equal(t, FormatCompact, Detect(false, false, false, false))

	assert.True(t, FormatJSON.Structured())
	assert.False(t, FormatCompact.Structured())
}

func TestStructured(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Structured(&buf, FormatYAML, map[string]int{"a": 1}))
	assert.Equal(t, "a: 1\n", buf.String())

	buf.Reset()
	require.NoError(t, Structured(&buf, FormatJSON, map[string]int{"a": 1}))
	assert.JSONEq(t, `{"a":1}`, buf.String())
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, "TASK_NOT_FOUND", "task x not found", map[string]any{"id": "x"})

	var got ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "TASK_NOT_FOUND", got.Code)
	assert.Equal(t, "x", got.Details["id"])
}

func TestTaskTableAndCompact(t *testing.T) {
	tasks := sampleSnapshot(t).Ordered()

	var buf bytes.Buffer
	TaskTable(&buf, tasks)
	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "task1")
	assert.Contains(t, out, "Jun 20")

	buf.Reset()
	TaskCompact(&buf, tasks)
	assert.Equal(t,
		"task1 [todo/high] Design layout @John Doe (Jun 20)\n"+
			"task2 [inProgress/medium] Login Page\n",
		buf.String())
}

func TestTaskDetail(t *testing.T) {
	s := sampleSnapshot(t)
	tk := s.Tasks["task1"]

	var buf bytes.Buffer
	TaskDetail(&buf, &tk, "To Do", board.Location{Column: "todo", Index: 0})
	assert.Contains(t, buf.String(), "Task task1: Design layout")
	assert.Contains(t, buf.String(), "Wireframe")

	buf.Reset()
	TaskDetailCompact(&buf, &tk, board.Location{Column: "todo", Index: 0})
	assert.Equal(t, "task1 [todo/high] Design layout @John Doe (Jun 20) at:todo[0]\n  Wireframe\n", buf.String())
}

func TestBoardRendering(t *testing.T) {
	s := sampleSnapshot(t)

	var buf bytes.Buffer
	BoardTable(&buf, "Dev", s)
	out := buf.String()
	for _, want := range []string{"Dev", "To Do (1)", "In Progress (1)", "Review (0)", "(empty)", "Design layout"} {
		assert.Contains(t, out, want)
	}

	buf.Reset()
	BoardCompact(&buf, s)
	assert.Equal(t, "To Do (1)\n  0. task1 [todo/high] Design layout @John Doe (Jun 20)\n"+
		"In Progress (1)\n  0. task2 [inProgress/medium] Login Page\n"+
		"Review (0)\nDone (0)\n", buf.String())
}

func TestOverviewAndGrouped(t *testing.T) {
	s := sampleSnapshot(t)
	o := board.Summary("Dev", s)

	var buf bytes.Buffer
	OverviewCompact(&buf, o)
	assert.Equal(t, "Dev (2 tasks)\n  To Do: 1\n  In Progress: 1\n  Review: 0\n  Done: 0\nPriority: high=1 medium=1 low=0\n", buf.String())

	buf.Reset()
	OverviewTable(&buf, o)
	assert.Contains(t, buf.String(), "Total: 2 tasks")

	g := board.GroupBy(s.Ordered(), "priority", s.Titles())
	buf.Reset()
	GroupedCompact(&buf, g)
	assert.Equal(t, "high (1): todo=1\nmedium (1): inProgress=1\n", buf.String())

	buf.Reset()
	GroupedTable(&buf, g)
	assert.Contains(t, buf.String(), "high (1 tasks)")
}

func TestUsersRendering(t *testing.T) {
	res, err := table.Apply(table.DefaultRows(), table.DefaultQuery())
	require.NoError(t, err)

	var buf bytes.Buffer
	UsersTable(&buf, res)
	out := buf.String()
	assert.Contains(t, out, "NAME ▲")
	assert.Contains(t, out, "Charlotte Martinez")
	assert.Contains(t, out, "1-5 of 8 · page 1/2 · 5 per page")

	buf.Reset()
	UsersCompact(&buf, res)
	assert.Contains(t, buf.String(), "John Smith <john@example.com> Admin/Active 2 hours ago\n")
}

func TestDashboardRendering(t *testing.T) {
	o, err := dashboard.Build(dashboard.RangeYearly)
	require.NoError(t, err)

	var buf bytes.Buffer
	DashboardTable(&buf, o)
	out := buf.String()
	assert.Contains(t, out, "24,500")
	assert.Contains(t, out, "4.8%")
	assert.Contains(t, out, "Germany")
	assert.Contains(t, out, "Website Redesign")

	buf.Reset()
	DashboardCompact(&buf, o)
	assert.Equal(t, "users=24500 orders=1250 revenue=18000 conversion=4.8%\n"+
		"series days=7 orders=980 revenue=16600 peak=Jun-05\n"+
		"yearly India=12000 USA=9500 UK=8500 Germany=6000\n", buf.String())
}

func TestActivityAndScript(t *testing.T) {
	entries := []board.LogEntry{{Timestamp: time.Date(2026, 6, 20, 9, 0, 0, 0, time.UTC), Action: "add", TaskID: "task-1", Detail: "Hello"}}
	var buf bytes.Buffer
	ActivityCompact(&buf, entries)
	assert.Equal(t, "2026-06-20T09:00:00Z add task-1 Hello\n", buf.String())

	rep := script.Report{
		Steps: []script.StepResult{
			{Step: 1, Op: "add", TaskID: "task-1", OK: true, Changed: true},
			{Step: 2, Op: "delete", TaskID: "ghost", Code: "TASK_NOT_FOUND", Error: "task ghost not found"},
		},
		Applied: 1, Failed: 1,
	}
	buf.Reset()
	ScriptCompact(&buf, rep)
	assert.Equal(t, "1 add ok task-1\n2 delete error:TASK_NOT_FOUND ghost\n", buf.String())

	buf.Reset()
	ScriptTable(&buf, rep)
	assert.Contains(t, buf.String(), "1 applied, 1 failed")
}

func TestFormatNumberAndTruncate(t *testing.T) {
	assert.Equal(t, "24,500", formatNumber(24500))
	assert.Equal(t, "1,250", formatNumber(1250))
	assert.Equal(t, "980", formatNumber(980))
	assert.Equal(t, "4.8", formatNumber(4.8))

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestYAMLUsesDateLabels(t *testing.T) {
	s := sampleSnapshot(t)
	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, s.Tasks["task1"]))

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "Jun 20", back["date"])
}
