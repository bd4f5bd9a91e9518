package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/deskboard/internal/board"
)

// handleMouse implements drag and drop. A left press on a card picks it up,
// the release drops it on the card under the pointer, or at the end of the
// column when the pointer is on the header or empty space. Releasing outside
// the board cancels the drag.
func (b *Board) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if b.view != viewBoard {
		return b, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return b, nil
		}
		b.handlePress(msg.X, msg.Y)
	case tea.MouseActionMotion:
		if b.drag != nil {
			b.drag.over = -1
			if col, _, ok := b.hitTest(msg.X, msg.Y); ok {
				b.drag.over = col
			}
		}
	case tea.MouseActionRelease:
		b.handleRelease(msg.X, msg.Y)
	}
	return b, nil
}

func (b *Board) handlePress(x, y int) {
	colIdx, row, ok := b.hitTest(x, y)
	if !ok {
		return
	}
	b.activeCol = colIdx
	if row < 0 {
		b.clampRow()
		return
	}
	b.activeRow = row
	b.ensureVisible()

	col := b.columns[colIdx]
	b.drag = &dragState{
		taskID: col.tasks[row].ID,
		src:    board.Location{Column: col.id, Index: row},
		over:   colIdx,
	}
}

func (b *Board) handleRelease(x, y int) {
	d := b.drag
	if d == nil {
		return
	}
	b.drag = nil

	colIdx, row, ok := b.hitTest(x, y)
	if !ok {
		b.move(d.taskID, d.src, nil)
		return
	}

	col := b.columns[colIdx]
	n := len(col.tasks)
	if col.id == d.src.Column {
		n-- // the dragged card leaves the column first
	}
	idx := n
	if row >= 0 {
		idx = min(row, n)
	}
	b.move(d.taskID, d.src, &board.Location{Column: col.id, Index: idx})
}

// hitTest maps a screen position to a column and the row of the card under
// it. row is -1 when the pointer is inside a column but not on a card. ok is
// false outside the column area.
func (b *Board) hitTest(x, y int) (colIdx, row int, ok bool) {
	if x < 0 || y < 0 || y >= b.boardHeight() {
		return 0, -1, false
	}
	colWidth := b.columnWidth()
	colIdx = x / colWidth
	if colIdx >= len(b.columns) {
		return 0, -1, false
	}

	col := &b.columns[colIdx]
	lineY := y - 1 // column header
	if col.scrollOff > 0 {
		lineY-- // "↑ N more"
	}
	if lineY < 0 {
		return colIdx, -1, true
	}

	end := min(col.scrollOff+b.visibleCardsForColumn(col, colWidth), len(col.tasks))
	cardLine := 0
	for rowIdx := col.scrollOff; rowIdx < end; rowIdx++ {
		cardH := b.cardHeight(col.tasks[rowIdx], colWidth)
		if lineY < cardLine+cardH {
			return colIdx, rowIdx, true
		}
		cardLine += cardH
	}
	return colIdx, -1, true
}
