package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

// Cards without a description are four lines tall: title, meta line and two
// border lines. With the header on line 0, the todo cards start at y=1, 5, 9.
const cardLines = 4

func cardY(row int) int { return 1 + row*cardLines }

func colX(col int) int { return col*30 + 5 }

func mouse(m *Board, action tea.MouseAction, x, y int) {
	btn := tea.MouseButtonLeft
	if action == tea.MouseActionRelease {
		btn = tea.MouseButtonNone
	}
	m.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: btn})
}

func drag(m *Board, fromX, fromY, toX, toY int) {
	mouse(m, tea.MouseActionPress, fromX, fromY)
	mouse(m, tea.MouseActionMotion, toX, toY)
	mouse(m, tea.MouseActionRelease, toX, toY)
}

func TestCardGeometry(t *testing.T) {
	m, _ := newTestBoard(t)
	require.Equal(t, cardLines, m.cardHeight(m.columns[0].tasks[0], m.columnWidth()))

	for row := range 3 {
		col, got, ok := m.hitTest(colX(0), cardY(row))
		require.True(t, ok)
		assert.Equal(t, 0, col)
		assert.Equal(t, row, got)
	}

	_, row, ok := m.hitTest(colX(2), cardY(0))
	assert.True(t, ok)
	assert.Equal(t, -1, row, "empty column")

	_, _, ok = m.hitTest(colX(0), testHeight-1)
	assert.False(t, ok, "status bar is outside the board")
}

func TestPressSelectsCard(t *testing.T) {
	m, _ := newTestBoard(t)

	mouse(m, tea.MouseActionPress, colX(0), cardY(2))
	assert.Equal(t, "t3", m.selectedTask().ID)
	require.NotNil(t, m.drag)
	assert.Equal(t, "t3", m.drag.taskID)

	mouse(m, tea.MouseActionRelease, colX(0), cardY(2))
	assert.Nil(t, m.drag)
	assert.Equal(t, "t3", m.selectedTask().ID)
}

func TestDropOnCardInsertsBefore(t *testing.T) {
	m, bb := newTestBoard(t)

	drag(m, colX(0), cardY(0), colX(1), cardY(0))
	assert.Equal(t, []string{"t1", "t4"}, columnIDs(t, bb, task.StatusInProgress))
	assert.Equal(t, []string{"t2", "t3"}, columnIDs(t, bb, task.StatusTodo))
	assert.Equal(t, "t1", m.selectedTask().ID)
	assert.Equal(t, 1, m.activeCol)
}

func TestDropOnEmptySpaceAppends(t *testing.T) {
	m, bb := newTestBoard(t)

	drag(m, colX(0), cardY(1), colX(3), 20)
	assert.Equal(t, []string{"t5", "t2"}, columnIDs(t, bb, task.StatusDone))

	drag(m, colX(0), cardY(0), colX(2), 0)
	assert.Equal(t, []string{"t1"}, columnIDs(t, bb, task.StatusReview), "header drop")
}

func TestDropWithinColumnUsesRawIndex(t *testing.T) {
	m, bb := newTestBoard(t)

	drag(m, colX(0), cardY(0), colX(0), cardY(2))
	assert.Equal(t, []string{"t2", "t3", "t1"}, columnIDs(t, bb, task.StatusTodo))

	drag(m, colX(0), cardY(2), colX(0), 30)
	assert.Equal(t, []string{"t2", "t3", "t1"}, columnIDs(t, bb, task.StatusTodo), "dropping below its own slot is a no-op")
}

func TestReleaseOutsideBoardCancels(t *testing.T) {
	m, bb := newTestBoard(t)
	before := bb.Snapshot()

	drag(m, colX(0), cardY(0), colX(1), testHeight-1)
	assert.Equal(t, before, bb.Snapshot())
	assert.Nil(t, m.drag)
	assert.NoError(t, m.err)
}

func TestMotionTracksDropColumn(t *testing.T) {
	m, _ := newTestBoard(t)

	mouse(m, tea.MouseActionPress, colX(0), cardY(0))
	mouse(m, tea.MouseActionMotion, colX(2), 10)
	assert.Equal(t, 2, m.drag.over)
	mouse(m, tea.MouseActionMotion, colX(2), testHeight)
	assert.Equal(t, -1, m.drag.over)
}

func TestMouseIgnoredOutsideBoardView(t *testing.T) {
	m, bb := newTestBoard(t)
	before := bb.Snapshot()

	press(m, "tab")
	drag(m, colX(0), cardY(0), colX(1), cardY(0))
	assert.Equal(t, before, bb.Snapshot())
	assert.Nil(t, m.drag)
}
