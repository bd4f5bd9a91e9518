package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

const detailChrome = 2 // blank line + key help

// detail is the full-screen view of one task.
type detail struct {
	taskID string
	vp     viewport.Model
}

func (b *Board) openDetail(t *task.Task) {
	h := max(1, b.height-detailChrome)
	b.detail = detail{taskID: t.ID, vp: viewport.New(b.width, h)}
	b.detail.vp.SetContent(b.md.render(taskMarkdown(t, b.columnTitle(t.Status)), b.width, b.cfg.Theme.Mode))
	b.view = viewDetail
}

func (b *Board) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc, "q", keyEnter:
		b.view = viewBoard
		return b, nil
	case "e":
		if t := b.selectedTask(); t != nil && t.ID == b.detail.taskID {
			b.openEditForm(t)
			return b, b.form.focus()
		}
		return b, nil
	case "y":
		b.copySelectedID()
		return b, nil
	}

	var cmd tea.Cmd
	b.detail.vp, cmd = b.detail.vp.Update(msg)
	return b, cmd
}

func (b *Board) viewDetail() string {
	help := b.styles.dim.Render("j/k:scroll e:edit y:copy id esc:back")
	if b.err != nil {
		help = b.styles.err.Render(truncate("Error: "+b.err.Error(), b.width)) + "\n" + help
	} else if b.notice != "" {
		help = b.styles.notice.Render(truncate(b.notice, b.width)) + "\n" + help
	}
	return b.detail.vp.View() + "\n\n" + help
}

func (b *Board) columnTitle(id string) string {
	for _, c := range b.columns {
		if c.id == id {
			return c.title
		}
	}
	return task.DefaultTitle(id)
}

// taskMarkdown renders a task as a markdown document.
func taskMarkdown(t *task.Task, columnTitle string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", strings.TrimSpace(t.Title))

	meta := []string{
		"**Status:** " + columnTitle,
		"**Priority:** " + t.Priority,
		"**Assignee:** " + t.Assignee,
	}
	if !t.Date.IsZero() {
		meta = append(meta, "**Date:** "+t.Date.String())
	}
	sb.WriteString(strings.Join(meta, " · ") + "\n\n")
	fmt.Fprintf(&sb, "`%s`\n\n", t.ID)

	if d := strings.TrimSpace(t.Description); d != "" {
		sb.WriteString("---\n\n" + d + "\n")
	} else {
		sb.WriteString("_No description._\n")
	}
	return sb.String()
}
