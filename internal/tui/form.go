package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

type formMode int

const (
	formCreate formMode = iota
	formEdit
)

const (
	fieldTitle = iota
	fieldDescription
)

const (
	formDescLines  = 5
	formMinWidth   = 20
	formMaxWidth   = 72
	formWidthRatio = 2 // dialog takes at most 1/N of the terminal beyond the minimum
)

// form is the create/edit dialog: a one-line title and a multi-line
// description.
type form struct {
	mode        formMode
	column      string
	columnTitle string
	taskID      string
	title       textinput.Model
	desc        textarea.Model
	field       int
	err         string
	width       int
}

func newForm(mode formMode, width int) form {
	f := form{mode: mode}

	f.title = textinput.New()
	f.title.Prompt = ""
	f.title.Placeholder = "Title"
	f.title.CharLimit = 200

	f.desc = textarea.New()
	f.desc.Prompt = ""
	f.desc.Placeholder = "Description"
	f.desc.ShowLineNumbers = false
	f.desc.SetHeight(formDescLines)

	f.resize(width)
	return f
}

// resize fits the inputs to the terminal width.
func (f *form) resize(width int) {
	w := max(formMinWidth, min(formMaxWidth, width-width/formWidthRatio))
	if width == 0 {
		w = formMaxWidth
	}
	f.width = w
	f.title.Width = w
	f.desc.SetWidth(w)
}

// focus focuses the active field and blurs the other.
func (f *form) focus() tea.Cmd {
	f.title.Blur()
	f.desc.Blur()
	if f.field == fieldDescription {
		return f.desc.Focus()
	}
	return f.title.Focus()
}

func (b *Board) openCreateForm(columnID, columnTitle string) {
	b.form = newForm(formCreate, b.width)
	b.form.column = columnID
	b.form.columnTitle = columnTitle
	b.view = viewForm
}

func (b *Board) openEditForm(t *task.Task) {
	b.form = newForm(formEdit, b.width)
	b.form.taskID = t.ID
	b.form.column = t.Status
	b.form.title.SetValue(t.Title)
	b.form.desc.SetValue(t.Description)
	b.view = viewForm
}

func (b *Board) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &b.form
	switch msg.String() {
	case keyEsc:
		b.view = viewBoard
		return b, nil
	case keyTab, "shift+tab":
		f.field = 1 - f.field
		return b, f.focus()
	case "ctrl+s":
		b.submitForm()
		return b, nil
	case keyEnter:
		if f.field == fieldTitle {
			b.submitForm()
			return b, nil
		}
	}

	var cmd tea.Cmd
	if f.field == fieldTitle {
		f.title, cmd = f.title.Update(msg)
	} else {
		f.desc, cmd = f.desc.Update(msg)
	}
	return b, cmd
}

// submitForm applies the dialog. A blank title on create keeps the dialog
// open with its input.
func (b *Board) submitForm() {
	f := &b.form
	title, desc := f.title.Value(), f.desc.Value()

	if f.mode == formCreate {
		t, err := b.board.AddTask(f.column, title, desc)
		if isBlankTitle(err) {
			f.err = "title is required"
			f.field = fieldTitle
			f.focus()
			return
		}
		b.closeForm(t.ID, err)
		return
	}

	t, err := b.board.EditTask(f.taskID, title, desc)
	b.closeForm(t.ID, err)
}

func (b *Board) closeForm(taskID string, err error) {
	b.view = viewBoard
	b.err = err
	b.refresh()
	if err == nil {
		b.selectTask(taskID)
	}
}

func (b *Board) viewForm() string {
	f := &b.form

	heading := "Edit task"
	if f.mode == formCreate {
		heading = "New task in " + f.columnTitle
	}

	label := func(name string, field int) string {
		if f.field == field {
			return b.styles.selected.Render(name)
		}
		return b.styles.dim.Render(name)
	}

	parts := []string{
		b.styles.title.Bold(true).Render(heading),
		"",
		label("Title", fieldTitle),
		f.title.View(),
		"",
		label("Description", fieldDescription),
		f.desc.View(),
	}
	if f.err != "" {
		parts = append(parts, "", b.styles.err.Render(f.err))
	}
	parts = append(parts, "", b.styles.dim.Render(strings.Join([]string{
		"tab:switch field", "enter:save (title)", "ctrl+s:save", "esc:cancel",
	}, "  ")))

	return b.styles.dialog.Width(f.width + dialogPadX*2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
