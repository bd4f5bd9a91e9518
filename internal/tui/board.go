// Package tui implements a terminal UI for deskboard boards.
package tui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/deskboard/internal/board"
	"github.com/twiced-technology-gmbh/deskboard/internal/config"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

// view represents the current screen state.
type view int

const (
	viewBoard view = iota
	viewConfirmDelete
	viewStatusPicker
	viewForm
	viewDetail
	viewUsers
)

// Key and layout constants.
const (
	keyEsc   = "esc"
	keyEnter = "enter"
	keyTab   = "tab"

	boardChrome  = 2 // blank line + status bar below the column area
	noticeChrome = 1 // extra line when an error or notice is displayed
)

// Board is the top-level bubbletea model.
type Board struct {
	cfg       *config.Config
	board     *board.Board
	reseed    func(*config.Config) (*board.Board, error)
	copyText  func(string) error
	styles    styles
	columns   []column
	total     int
	activeCol int
	activeRow int
	view      view
	width     int
	height    int
	err       error
	notice    string

	// Mouse drag in progress.
	drag *dragState

	// Delete confirmation.
	deleteID    string
	deleteTitle string

	// Status picker cursor.
	pickerRow int

	form   form
	detail detail
	users  users
	md     markdownRenderer
}

// column holds the tasks of one board column in display order.
type column struct {
	id        string
	title     string
	tasks     []*task.Task
	scrollOff int // first visible row index
}

// dragState records the card picked up by a mouse press.
type dragState struct {
	taskID string
	src    board.Location
	over   int // column under the pointer, -1 when outside the board
}

// NewBoard creates a Board model over b, configured by cfg.
func NewBoard(cfg *config.Config, b *board.Board) *Board {
	m := &Board{
		cfg:      cfg,
		board:    b,
		copyText: clipboard.WriteAll,
		styles:   newStyles(cfg.Theme),
		users:    newUsers(cfg.Table.RowsPerPage),
	}
	m.refresh()
	return m
}

// SetReseed sets the function used by R to rebuild the board from the seed
// named by the current config.
func (b *Board) SetReseed(fn func(*config.Config) (*board.Board, error)) {
	b.reseed = fn
}

// SetClipboard overrides the clipboard writer (for testing).
func (b *Board) SetClipboard(fn func(string) error) {
	b.copyText = fn
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.MouseMsg:
		return b.handleMouse(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		if b.view == viewForm {
			b.form.resize(b.width)
		}
		b.clampRow()
		return b, nil
	case ConfigChangedMsg:
		b.applyConfig(msg)
		return b, nil
	case SeedChangedMsg:
		b.notice = "seed changed, R to reload"
		return b, nil
	case ErrMsg:
		b.err = msg.Err
		return b, nil
	}
	return b, nil
}

// View implements tea.Model.
func (b *Board) View() string {
	if b.width == 0 {
		return "Loading..."
	}

	switch b.view {
	case viewConfirmDelete:
		return b.viewDeleteConfirm()
	case viewStatusPicker:
		return b.viewStatusPicker()
	case viewForm:
		return b.viewForm()
	case viewDetail:
		return b.viewDetail()
	case viewUsers:
		return b.viewUsers()
	default:
		return b.viewBoard()
	}
}

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys.
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return b, tea.Quit
	}

	switch b.view {
	case viewBoard:
		return b.handleBoardKey(msg)
	case viewConfirmDelete:
		return b.handleDeleteKey(msg)
	case viewStatusPicker:
		return b.handlePickerKey(msg)
	case viewForm:
		return b.handleFormKey(msg)
	case viewDetail:
		return b.handleDetailKey(msg)
	case viewUsers:
		return b.handleUsersKey(msg)
	}

	return b, nil
}

func (b *Board) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc:
		return b, tea.Quit
	case "h", "left":
		if b.activeCol > 0 {
			b.activeCol--
			b.clampRow()
		}
	case "l", "right":
		if b.activeCol < len(b.columns)-1 {
			b.activeCol++
			b.clampRow()
		}
	case "j", "down":
		col := b.currentColumn()
		if col != nil && b.activeRow < len(col.tasks)-1 {
			b.activeRow++
			b.ensureVisible()
		}
	case "k", "up":
		if b.activeRow > 0 {
			b.activeRow--
			b.ensureVisible()
		}
	case "H":
		b.shiftColumn(-1)
	case "L":
		b.shiftColumn(1)
	case "K":
		b.shiftRow(-1)
	case "J":
		b.shiftRow(1)
	case "m":
		if t := b.selectedTask(); t != nil {
			b.pickerRow = b.activeCol
			b.view = viewStatusPicker
		}
	case "a":
		if col := b.currentColumn(); col != nil {
			b.openCreateForm(col.id, col.title)
			return b, b.form.focus()
		}
	case "e":
		if t := b.selectedTask(); t != nil {
			b.openEditForm(t)
			return b, b.form.focus()
		}
	case "d", "D":
		b.handleDeleteStart()
	case keyEnter:
		if t := b.selectedTask(); t != nil {
			b.openDetail(t)
		}
	case "y":
		b.copySelectedID()
	case "R":
		b.handleReseed()
	case keyTab:
		b.view = viewUsers
	}
	return b, nil
}

// shiftColumn drags the selected card into the neighbouring column, keeping
// its row where the destination has room.
func (b *Board) shiftColumn(delta int) {
	t := b.selectedTask()
	if t == nil {
		return
	}
	target := b.activeCol + delta
	if target < 0 || target >= len(b.columns) {
		return
	}
	dst := &board.Location{
		Column: b.columns[target].id,
		Index:  min(b.activeRow, len(b.columns[target].tasks)),
	}
	b.move(t.ID, b.currentLocation(), dst)
}

// shiftRow reorders the selected card within its column.
func (b *Board) shiftRow(delta int) {
	t := b.selectedTask()
	col := b.currentColumn()
	if t == nil {
		return
	}
	target := b.activeRow + delta
	if target < 0 || target >= len(col.tasks) {
		return
	}
	b.move(t.ID, b.currentLocation(), &board.Location{Column: col.id, Index: target})
}

// move applies a drag result and keeps the moved card selected.
func (b *Board) move(taskID string, src board.Location, dst *board.Location) {
	changed, err := b.board.MoveTask(taskID, src, dst)
	if err != nil {
		b.err = err
		return
	}
	b.err = nil
	b.refresh()
	if changed {
		b.selectTask(taskID)
	}
}

func (b *Board) handleDeleteStart() {
	if t := b.selectedTask(); t != nil {
		b.deleteID = t.ID
		b.deleteTitle = t.Title
		b.view = viewConfirmDelete
	}
}

func (b *Board) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		b.executeDelete()
	case "n", "N", keyEsc, "q":
		b.view = viewBoard
	}
	return b, nil
}

func (b *Board) executeDelete() {
	if _, err := b.board.DeleteTask(b.deleteID); err != nil {
		b.err = fmt.Errorf("deleting task %s: %w", b.deleteID, err)
	} else {
		b.err = nil
	}
	b.view = viewBoard
	b.refresh()
}

func (b *Board) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if b.pickerRow < len(b.columns)-1 {
			b.pickerRow++
		}
	case "k", "up":
		if b.pickerRow > 0 {
			b.pickerRow--
		}
	case keyEnter:
		b.applyStatus(b.columns[b.pickerRow].id)
	case keyEsc, "q":
		b.view = viewBoard
	default:
		// Digits pick a column directly.
		s := msg.String()
		if len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(b.columns) {
			b.applyStatus(b.columns[s[0]-'1'].id)
		}
	}
	return b, nil
}

func (b *Board) applyStatus(status string) {
	b.view = viewBoard
	t := b.selectedTask()
	if t == nil {
		return
	}
	changed, err := b.board.ChangeStatus(t.ID, status)
	if err != nil {
		b.err = err
		return
	}
	b.err = nil
	b.refresh()
	if changed {
		b.selectTask(t.ID)
	}
}

func (b *Board) copySelectedID() {
	t := b.selectedTask()
	if t == nil {
		return
	}
	if err := b.copyText(t.ID); err != nil {
		b.err = fmt.Errorf("copying task id: %w", err)
		return
	}
	b.err = nil
	b.notice = "copied " + t.ID
}

func (b *Board) handleReseed() {
	if b.reseed == nil {
		return
	}
	nb, err := b.reseed(b.cfg)
	if err != nil {
		b.err = fmt.Errorf("reloading seed: %w", err)
		return
	}
	b.board = nb
	b.err = nil
	b.notice = ""
	b.activeRow = 0
	for i := range b.columns {
		b.columns[i].scrollOff = 0
	}
	b.refresh()
}

func (b *Board) applyConfig(msg ConfigChangedMsg) {
	if msg.Err != nil {
		b.err = fmt.Errorf("reloading config: %w", msg.Err)
		return
	}
	b.cfg = msg.Config
	b.board.SetTitles(b.cfg.Titles())
	b.styles = newStyles(b.cfg.Theme)
	b.err = nil
	b.refresh()
}

// refresh rebuilds the column view from a board snapshot, keeping scroll
// offsets and the selection position.
func (b *Board) refresh() {
	snap := b.board.Snapshot()
	cols := make([]column, len(snap.Columns))
	for i, c := range snap.Columns {
		cols[i] = column{id: c.ID, title: c.Title, tasks: snap.ColumnTasks(c.ID)}
		if i < len(b.columns) {
			cols[i].scrollOff = b.columns[i].scrollOff
		}
	}
	b.columns = cols
	b.total = len(snap.Tasks)
	if b.activeCol >= len(b.columns) {
		b.activeCol = max(0, len(b.columns)-1)
	}
	b.clampRow()
}

// selectTask moves the selection onto the task with the given id.
func (b *Board) selectTask(id string) {
	for ci := range b.columns {
		for ri, t := range b.columns[ci].tasks {
			if t.ID == id {
				b.activeCol, b.activeRow = ci, ri
				b.ensureVisible()
				return
			}
		}
	}
}

func (b *Board) currentColumn() *column {
	if b.activeCol >= 0 && b.activeCol < len(b.columns) {
		return &b.columns[b.activeCol]
	}
	return nil
}

func (b *Board) currentLocation() board.Location {
	col := b.currentColumn()
	if col == nil {
		return board.Location{}
	}
	return board.Location{Column: col.id, Index: b.activeRow}
}

func (b *Board) selectedTask() *task.Task {
	col := b.currentColumn()
	if col == nil || len(col.tasks) == 0 {
		return nil
	}
	if b.activeRow >= 0 && b.activeRow < len(col.tasks) {
		return col.tasks[b.activeRow]
	}
	return nil
}

func (b *Board) clampRow() {
	col := b.currentColumn()
	if col == nil || len(col.tasks) == 0 {
		b.activeRow = 0
		return
	}
	if b.activeRow >= len(col.tasks) {
		b.activeRow = len(col.tasks) - 1
	}
	b.ensureVisible()
}

// chromeHeight returns the number of lines consumed by non-card elements below
// the column area: blank line + status bar (+ error or notice line).
func (b *Board) chromeHeight() int {
	h := boardChrome
	if b.err != nil || b.notice != "" {
		h += noticeChrome
	}
	return h
}

// boardHeight returns the number of lines available to the columns.
func (b *Board) boardHeight() int {
	return max(1, b.height-b.chromeHeight())
}

// visibleCardsForColumn returns the number of cards that fit in the column,
// accounting for scroll indicator lines ("↑ N more" / "↓ N more") that
// consume vertical space.
func (b *Board) visibleCardsForColumn(col *column, width int) int {
	budget := b.height - b.chromeHeight()
	if budget < 1 {
		return 1
	}

	// Always need 1 line for column header.
	avail := budget - 1

	if col.scrollOff > 0 {
		avail--
	}

	n := b.fitCardsInHeight(col, avail, width)

	if col.scrollOff+n < len(col.tasks) {
		n = max(1, b.fitCardsInHeight(col, avail-1, width))
	}

	return n
}

// ensureVisible adjusts the active column's scroll offset so the
// selected row is within the visible window.
func (b *Board) ensureVisible() {
	col := b.currentColumn()
	if col == nil {
		return
	}
	if b.height == 0 {
		col.scrollOff = 0
		return
	}
	w := b.columnWidth()

	for range len(col.tasks) + 1 {
		maxVis := b.visibleCardsForColumn(col, w)

		switch {
		case b.activeRow >= col.scrollOff+maxVis:
			col.scrollOff = b.activeRow - maxVis + 1
		case b.activeRow < col.scrollOff:
			col.scrollOff = b.activeRow
		default:
			return
		}
	}
}

func (b *Board) fitCardsInHeight(col *column, avail, width int) int {
	if len(col.tasks) == 0 || avail < 1 {
		return 1
	}

	used := 0
	count := 0
	for i := col.scrollOff; i < len(col.tasks); i++ {
		cardLines := b.cardHeight(col.tasks[i], width)
		if count > 0 && used+cardLines > avail {
			break
		}
		count++
		used += cardLines
		if used >= avail {
			break
		}
	}

	return max(1, count)
}

// WatchPaths returns the files whose changes the TUI reacts to.
func (b *Board) WatchPaths() []string {
	if b.cfg.Dir() == "" {
		return nil
	}
	return []string{b.cfg.ConfigPath(), b.cfg.SeedPath()}
}

// --- Messages ---

// ConfigChangedMsg is sent by the file watcher after the config file
// changed. Err is set when the new config could not be loaded.
type ConfigChangedMsg struct {
	Config *config.Config
	Err    error
}

// SeedChangedMsg is sent by the file watcher after the seed file changed.
// The board is not replaced until the user reseeds.
type SeedChangedMsg struct{}

// ErrMsg reports a background failure, such as a watcher error, in the
// status bar.
type ErrMsg struct{ Err error }

// isBlankTitle reports whether err is the blank title rejection.
func isBlankTitle(err error) bool {
	return errors.Is(err, board.ErrBlankTitle)
}
