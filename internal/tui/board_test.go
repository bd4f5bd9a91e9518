package tui

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/deskboard/internal/board"
	"github.com/twiced-technology-gmbh/deskboard/internal/config"
	"github.com/twiced-technology-gmbh/deskboard/internal/date"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

const (
	testWidth  = 120 // four columns of 30
	testHeight = 40
)

func seedTasks() []*task.Task {
	mk := func(id, title, status string) *task.Task {
		return &task.Task{
			ID: id, Title: title, Status: status,
			Assignee: task.DefaultAssignee, Priority: task.DefaultPriority,
			Date: date.Of(6, 20),
		}
	}
	return []*task.Task{
		mk("t1", "First", task.StatusTodo),
		mk("t2", "Second", task.StatusTodo),
		mk("t3", "Third", task.StatusTodo),
		mk("t4", "Fourth", task.StatusInProgress),
		mk("t5", "Fifth", task.StatusDone),
	}
}

func newTestBoard(t *testing.T) (*Board, *board.Board) {
	t.Helper()
	n := 0
	bb, err := board.New(seedTasks(), board.WithIDGenerator(func() string {
		n++
		return "new-" + string(rune('0'+n))
	}))
	require.NoError(t, err)

	m := NewBoard(config.NewDefault("Test"), bb)
	m.SetClipboard(func(string) error { return nil })
	m.Update(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	return m, bb
}

func press(m *Board, keys ...string) {
	for _, k := range keys {
		m.Update(keyMsg(k))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func typeText(m *Board, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func columnIDs(t *testing.T, bb *board.Board, column string) []string {
	t.Helper()
	s := bb.Snapshot()
	require.NoError(t, board.CheckInvariants(s))
	c, ok := s.Column(column)
	require.True(t, ok)
	return c.TaskIDs
}

func TestNavigation(t *testing.T) {
	m, _ := newTestBoard(t)

	assert.Equal(t, "t1", m.selectedTask().ID)
	press(m, "j", "j", "j")
	assert.Equal(t, "t3", m.selectedTask().ID)

	press(m, "l")
	assert.Equal(t, 1, m.activeCol)
	assert.Equal(t, "t4", m.selectedTask().ID, "row clamps to the shorter column")

	press(m, "l")
	assert.Nil(t, m.selectedTask(), "review is empty")

	press(m, "l", "l", "h", "h", "h", "h", "h")
	assert.Equal(t, 0, m.activeCol)
}

func TestShiftColumnKeepsRow(t *testing.T) {
	m, bb := newTestBoard(t)

	press(m, "j", "L")
	assert.Equal(t, []string{"t1", "t3"}, columnIDs(t, bb, task.StatusTodo))
	assert.Equal(t, []string{"t4", "t2"}, columnIDs(t, bb, task.StatusInProgress))
	assert.Equal(t, 1, m.activeCol)
	assert.Equal(t, "t2", m.selectedTask().ID)

	press(m, "L")
	assert.Equal(t, []string{"t2"}, columnIDs(t, bb, task.StatusReview), "row clamps to the end of an empty column")

	press(m, "H", "H")
	assert.Equal(t, []string{"t2", "t1", "t3"}, columnIDs(t, bb, task.StatusTodo))
	assert.Equal(t, "t2", m.selectedTask().ID)

	press(m, "H")
	assert.Equal(t, 0, m.activeCol, "no column to the left")
	assert.NoError(t, m.err)
}

func TestShiftRowReorders(t *testing.T) {
	m, bb := newTestBoard(t)

	press(m, "J")
	assert.Equal(t, []string{"t2", "t1", "t3"}, columnIDs(t, bb, task.StatusTodo))
	assert.Equal(t, 1, m.activeRow)

	press(m, "J", "J")
	assert.Equal(t, []string{"t2", "t3", "t1"}, columnIDs(t, bb, task.StatusTodo), "bottom stays put")

	press(m, "K", "K", "K")
	assert.Equal(t, []string{"t1", "t2", "t3"}, columnIDs(t, bb, task.StatusTodo))
	assert.Equal(t, 0, m.activeRow)
}

func TestStatusPicker(t *testing.T) {
	m, bb := newTestBoard(t)

	press(m, "m")
	require.Equal(t, viewStatusPicker, m.view)
	assert.Contains(t, m.View(), "To Do (current)")

	press(m, "j", "j", "enter")
	assert.Equal(t, viewBoard, m.view)
	assert.Equal(t, []string{"t1"}, columnIDs(t, bb, task.StatusReview))
	assert.Equal(t, "t1", m.selectedTask().ID)

	press(m, "m", "4")
	assert.Equal(t, []string{"t5", "t1"}, columnIDs(t, bb, task.StatusDone), "appended to the end")

	press(m, "m", "esc")
	assert.Equal(t, viewBoard, m.view)
	assert.Equal(t, []string{"t5", "t1"}, columnIDs(t, bb, task.StatusDone))
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	m, bb := newTestBoard(t)

	press(m, "a")
	require.Equal(t, viewForm, m.view)
	typeText(m, "   ")
	press(m, "enter")

	assert.Equal(t, viewForm, m.view, "dialog stays open")
	assert.Equal(t, "title is required", m.form.err)
	assert.Equal(t, "   ", m.form.title.Value(), "input is kept")
	assert.Equal(t, 5, bb.Len())
}

func TestCreateAppendsToActiveColumn(t *testing.T) {
	m, bb := newTestBoard(t)

	press(m, "l", "l", "a")
	typeText(m, "Write docs")
	press(m, "tab")
	typeText(m, "Usage section")
	press(m, "ctrl+s")

	assert.Equal(t, viewBoard, m.view)
	require.Equal(t, []string{"new-1"}, columnIDs(t, bb, task.StatusReview))
	got, err := bb.Task("new-1")
	require.NoError(t, err)
	assert.Equal(t, "Write docs", got.Title)
	assert.Equal(t, "Usage section", got.Description)
	assert.Equal(t, task.DefaultAssignee, got.Assignee)
	assert.Equal(t, "new-1", m.selectedTask().ID)
}

func TestCreateCancel(t *testing.T) {
	m, bb := newTestBoard(t)

	press(m, "a")
	typeText(m, "Nope")
	press(m, "esc")

	assert.Equal(t, viewBoard, m.view)
	assert.Equal(t, 5, bb.Len())
}

func TestEdit(t *testing.T) {
	m, bb := newTestBoard(t)

	press(m, "j", "e")
	require.Equal(t, viewForm, m.view)
	assert.Equal(t, "Second", m.form.title.Value())

	typeText(m, " v2")
	press(m, "enter")

	got, err := bb.Task("t2")
	require.NoError(t, err)
	assert.Equal(t, "Second v2", got.Title)
	assert.Equal(t, []string{"t1", "t2", "t3"}, columnIDs(t, bb, task.StatusTodo), "position unchanged")
}

func TestDeleteConfirmation(t *testing.T) {
	m, bb := newTestBoard(t)

	press(m, "d")
	require.Equal(t, viewConfirmDelete, m.view)
	assert.Contains(t, m.View(), "First")

	press(m, "n")
	assert.Equal(t, 5, bb.Len())

	press(m, "d", "y")
	assert.Equal(t, viewBoard, m.view)
	assert.Equal(t, []string{"t2", "t3"}, columnIDs(t, bb, task.StatusTodo))
	assert.Equal(t, "t2", m.selectedTask().ID)
}

func TestCopyID(t *testing.T) {
	m, _ := newTestBoard(t)
	var copied string
	m.SetClipboard(func(s string) error {
		copied = s
		return nil
	})

	press(m, "j", "y")
	assert.Equal(t, "t2", copied)
	assert.Equal(t, "copied t2", m.notice)

	m.SetClipboard(func(string) error { return errors.New("no clipboard") })
	press(m, "y")
	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "no clipboard")
}

func TestDetailView(t *testing.T) {
	m, _ := newTestBoard(t)

	press(m, "enter")
	assert.Equal(t, viewDetail, m.view)
	assert.Equal(t, "t1", m.detail.taskID)

	press(m, "e")
	assert.Equal(t, viewForm, m.view)
	press(m, "esc")

	press(m, "enter", "esc")
	assert.Equal(t, viewBoard, m.view)
}

func TestTaskMarkdown(t *testing.T) {
	tk := seedTasks()[0]
	tk.Description = "Line one\nLine two"

	md := taskMarkdown(tk, "To Do")
	assert.True(t, strings.HasPrefix(md, "# First\n"))
	assert.Contains(t, md, "**Status:** To Do")
	assert.Contains(t, md, "**Date:** Jun 20")
	assert.Contains(t, md, "`t1`")
	assert.Contains(t, md, "Line one\nLine two")

	tk.Description = ""
	assert.Contains(t, taskMarkdown(tk, "To Do"), "_No description._")
}

func TestReseedAndSeedNotice(t *testing.T) {
	m, bb := newTestBoard(t)

	press(m, "d", "y")
	require.Equal(t, 4, bb.Len())

	m.Update(SeedChangedMsg{})
	assert.Contains(t, m.View(), "seed changed, R to reload")

	m.SetReseed(func(*config.Config) (*board.Board, error) { return board.New(seedTasks()) })
	press(m, "R")
	assert.Empty(t, m.notice)
	assert.Equal(t, 5, m.total)
	assert.Equal(t, "t1", m.selectedTask().ID)

	m.SetReseed(func(*config.Config) (*board.Board, error) { return nil, errors.New("bad seed") })
	press(m, "R")
	require.Error(t, m.err)
	assert.Equal(t, 5, m.total, "board kept on failure")
}

func TestConfigChangeAppliesTitlesAndTheme(t *testing.T) {
	m, bb := newTestBoard(t)

	cfg := config.NewDefault("Renamed")
	require.NoError(t, cfg.SetColumnTitle(task.StatusTodo, "Backlog"))
	cfg.Theme.Primary = "#ff0000"
	m.Update(ConfigChangedMsg{Config: cfg})

	assert.Contains(t, m.View(), "Backlog (3)")
	assert.Contains(t, m.View(), "Renamed")
	c, _ := bb.Snapshot().Column(task.StatusTodo)
	assert.Equal(t, "Backlog", c.Title)

	m.Update(ConfigChangedMsg{Err: errors.New("broken yaml")})
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "broken yaml")
	assert.Contains(t, m.View(), "Backlog (3)", "previous config kept")
}

func TestViewRendersColumns(t *testing.T) {
	m, _ := newTestBoard(t)
	out := m.View()
	for _, want := range []string{"To Do (3)", "In Progress (1)", "Review (0)", "Done (1)", "(empty)", "First", "Test | 5 tasks"} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, testHeight, strings.Count(out, "\n")+1)
}

func TestLoadingBeforeSize(t *testing.T) {
	bb, err := board.New(nil)
	require.NoError(t, err)
	m := NewBoard(config.NewDefault(""), bb)
	assert.Equal(t, "Loading...", m.View())
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestBoard(t)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	press(m, "a", "q")
	assert.Equal(t, viewForm, m.view)
	assert.Equal(t, "q", m.form.title.Value(), "q types into the form")
	_, cmd = m.Update(keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestRandomGesturesKeepBoardConsistent(t *testing.T) {
	keys := []string{"h", "j", "k", "l", "H", "J", "K", "L", "m", "1", "2", "3", "4", "d", "y", "n", "esc"}
	for seed := range uint64(10) {
		m, bb := newTestBoard(t)
		rng := rand.New(rand.NewPCG(seed, seed+1))
		for range 200 {
			press(m, keys[rng.IntN(len(keys))])
			require.NoError(t, board.CheckInvariants(bb.Snapshot()), "seed %d", seed)
			require.NoError(t, m.err, "seed %d", seed)
		}
	}
}
