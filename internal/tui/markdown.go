package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/twiced-technology-gmbh/deskboard/internal/config"
)

const minWrapWidth = 24

// markdownRenderer renders markdown for the detail view and recreates the
// glamour renderer when the wrap width or theme mode changes.
type markdownRenderer struct {
	width    int
	style    string
	renderer *glamour.TermRenderer
}

// render converts markdown into ANSI-styled terminal text. On renderer
// failure the raw markdown is returned.
func (r *markdownRenderer) render(markdown string, width int, mode string) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}

	wrapWidth := max(width, minWrapWidth)
	style := "dark"
	if mode == config.ThemeLight {
		style = "light"
	}

	if r.renderer == nil || r.width != wrapWidth || r.style != style {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wrapWidth),
			glamour.WithPreservedNewLines(),
		)
		if err != nil {
			return markdown
		}
		r.renderer = renderer
		r.width = wrapWidth
		r.style = style
	}

	rendered, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, "\n")
}
