package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

const (
	defaultColWidth = 30
	maxColWidth     = 75
	cardChrome      = 4 // border (2) + padding (2)
	cardBorder      = 2
	headerPad       = 2
)

func (b *Board) viewBoard() string {
	colWidth := b.columnWidth()

	renderedCols := make([]string, len(b.columns))
	for i, col := range b.columns {
		renderedCols[i] = b.renderColumn(i, col, colWidth)
	}

	boardView := lipgloss.JoinHorizontal(lipgloss.Top, renderedCols...)

	// At very small terminal sizes a single card can exceed the budget.
	// Clamp from the bottom, keeping headers at the top, and pad if needed.
	targetHeight := b.height - b.chromeHeight()
	if targetHeight > 0 {
		actual := strings.Count(boardView, "\n") + 1
		if actual > targetHeight {
			viewLines := strings.SplitN(boardView, "\n", targetHeight+1)
			boardView = strings.Join(viewLines[:targetHeight], "\n")
		} else if actual < targetHeight {
			boardView += strings.Repeat("\n", targetHeight-actual)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, boardView, "", b.renderStatusBar())
}

func (b *Board) columnWidth() int {
	if b.width == 0 || len(b.columns) == 0 {
		return defaultColWidth
	}
	// JoinHorizontal adds no gaps, so columns split the width evenly.
	return min(b.width/len(b.columns), maxColWidth)
}

func (b *Board) renderColumn(colIdx int, col column, width int) string {
	headerText := truncate(fmt.Sprintf("%s (%d)", col.title, len(col.tasks)), width-headerPad)

	headerStyle := b.styles.columnHeader
	switch {
	case b.drag != nil && b.drag.over == colIdx:
		headerStyle = b.styles.dropColumnHeader
	case colIdx == b.activeCol:
		headerStyle = b.styles.activeColumnHeader
	}
	header := headerStyle.Width(width).Render(headerText)

	maxVis := b.visibleCardsForColumn(&col, width)
	start := min(col.scrollOff, len(col.tasks))
	end := min(start+maxVis, len(col.tasks))

	parts := []string{header}

	if start > 0 {
		indicator := fmt.Sprintf("  ↑ %d more", start)
		parts = append(parts, b.styles.dim.Width(width).Render(truncate(indicator, width)))
	}

	if len(col.tasks) == 0 {
		parts = append(parts, b.styles.dim.Width(width).Render("  (empty)"))
	} else {
		for rowIdx := start; rowIdx < end; rowIdx++ {
			active := colIdx == b.activeCol && rowIdx == b.activeRow
			parts = append(parts, b.renderCard(col.tasks[rowIdx], active, width))
		}
	}

	if end < len(col.tasks) {
		indicator := fmt.Sprintf("  ↓ %d more", len(col.tasks)-end)
		parts = append(parts, b.styles.dim.Width(width).Render(truncate(indicator, width)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (b *Board) renderCard(t *task.Task, active bool, width int) string {
	content := strings.Join(b.cardContentLines(t, width), "\n")

	style := b.styles.card
	switch {
	case b.drag != nil && b.drag.taskID == t.ID:
		style = b.styles.draggedCard
	case active:
		style = b.styles.activeCard
	}

	return style.Width(width - cardBorder).Render(content)
}

func (b *Board) cardHeight(t *task.Task, width int) int {
	return len(b.cardContentLines(t, width)) + cardBorder
}

func (b *Board) cardContentLines(t *task.Task, width int) []string {
	cardWidth := max(1, width-cardChrome)

	var lines []string
	for _, line := range wrapTitle(t.Title, cardWidth, b.cfg.TitleLines()) {
		lines = append(lines, b.styles.title.Render(line))
	}

	if n := b.cfg.BodyLines(); n > 0 && strings.TrimSpace(t.Description) != "" {
		body := strings.Join(strings.Fields(t.Description), " ")
		for _, line := range wrapTitle(body, cardWidth, n) {
			lines = append(lines, b.styles.dim.Render(line))
		}
	}

	meta := b.styles.priorityStyle(t.Priority).Render("● " + t.Priority)
	rest := t.Assignee
	if !t.Date.IsZero() {
		rest += " · " + t.Date.String()
	}
	if avail := cardWidth - lipgloss.Width(meta) - 1; avail > 0 && rest != "" {
		meta += " " + b.styles.dim.Render(truncate(rest, avail))
	}
	lines = append(lines, meta)

	return lines
}

// wrapTitle splits a title across maxLines lines, word-wrapping at word
// boundaries. Each line is at most maxWidth characters.
func wrapTitle(title string, maxWidth, maxLines int) []string {
	if maxLines < 1 {
		maxLines = 1
	}
	if lipgloss.Width(title) <= maxWidth || maxLines == 1 {
		return []string{truncate(title, maxWidth)}
	}

	words := strings.Fields(title)
	lines := make([]string, 0, maxLines)
	var current strings.Builder

	for i, word := range words {
		if current.Len() == 0 {
			current.WriteString(word)
			continue
		}
		if lipgloss.Width(current.String())+1+lipgloss.Width(word) <= maxWidth {
			current.WriteByte(' ')
			current.WriteString(word)
			continue
		}
		lines = append(lines, truncate(current.String(), maxWidth))
		current.Reset()
		current.WriteString(word)
		if len(lines) == maxLines-1 {
			// Last line: append all remaining words.
			for _, w := range words[i+1:] {
				current.WriteByte(' ')
				current.WriteString(w)
			}
			break
		}
	}
	if current.Len() > 0 {
		lines = append(lines, truncate(current.String(), maxWidth))
	}
	return lines
}

func (b *Board) renderStatusBar() string {
	status := fmt.Sprintf(" %s | %d tasks | hjkl:select HJKL:move a:add e:edit m:status d:del enter:open y:copy R:reseed tab:users q:quit",
		b.cfg.Board.Name, b.total)
	status = b.styles.statusBar.Render(truncate(status, b.width))

	switch {
	case b.err != nil:
		return b.styles.err.Render(truncate("Error: "+b.err.Error(), b.width)) + "\n" + status
	case b.notice != "":
		return b.styles.notice.Render(truncate(b.notice, b.width)) + "\n" + status
	}
	return status
}

func (b *Board) viewDeleteConfirm() string {
	content := b.styles.err.Render("Delete task?") + "\n\n" +
		"  " + b.deleteTitle + "\n" +
		b.styles.dim.Render("  "+b.deleteID) + "\n\n" +
		b.styles.dim.Render("y:yes  n:no")

	return b.styles.dialog.Render(content)
}

func (b *Board) viewStatusPicker() string {
	t := b.selectedTask()
	if t == nil {
		return b.viewBoard()
	}

	var sb strings.Builder
	sb.WriteString(b.styles.title.Bold(true).Render("Move "+truncate(t.Title, maxColWidth)) + "\n\n")
	for i, col := range b.columns {
		line := fmt.Sprintf("%d. %s", i+1, col.title)
		if col.id == t.Status {
			line += " (current)"
		}
		if i == b.pickerRow {
			sb.WriteString(b.styles.selected.Render("> "+line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}
	sb.WriteString("\n" + b.styles.dim.Render("j/k:select enter:apply esc:cancel"))

	return b.styles.dialog.Render(sb.String())
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	// Slice by runes to avoid breaking multi-byte UTF-8 characters.
	runes := []rune(s)
	target := min(maxLen-3, len(runes)) //nolint:mnd // room for "..."
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
