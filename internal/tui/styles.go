package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/deskboard/internal/config"
	"github.com/twiced-technology-gmbh/deskboard/internal/task"
)

// styles holds every style derived from the configured theme. It is rebuilt
// when the config changes so the palette updates live.
type styles struct {
	columnHeader       lipgloss.Style
	activeColumnHeader lipgloss.Style
	dropColumnHeader   lipgloss.Style
	card               lipgloss.Style
	activeCard         lipgloss.Style
	draggedCard        lipgloss.Style
	statusBar          lipgloss.Style
	notice             lipgloss.Style
	err                lipgloss.Style
	dim                lipgloss.Style
	title              lipgloss.Style
	dialog             lipgloss.Style
	selected           lipgloss.Style
	tableHeader        lipgloss.Style
	priority           map[string]lipgloss.Style
}

const (
	dialogPadY = 1
	dialogPadX = 2
)

func newStyles(theme config.ThemeConfig) styles {
	primary := lipgloss.Color(orDefault(theme.Primary, config.DefaultPrimary))
	secondary := lipgloss.Color(orDefault(theme.Secondary, config.DefaultSecondary))

	text, muted, headerBg := lipgloss.Color("252"), lipgloss.Color("241"), lipgloss.Color("236")
	if theme.Mode == config.ThemeLight {
		text, muted, headerBg = lipgloss.Color("235"), lipgloss.Color("244"), lipgloss.Color("254")
	}

	border := func(c lipgloss.TerminalColor) lipgloss.Style {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c).
			Padding(0, 1)
	}

	return styles{
		columnHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(text).
			Background(headerBg).
			Padding(0, 1),
		activeColumnHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(primary).
			Padding(0, 1),
		dropColumnHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(secondary).
			Padding(0, 1),
		card:        border(lipgloss.Color("240")),
		activeCard:  border(primary),
		draggedCard: border(secondary),
		statusBar:   lipgloss.NewStyle().Foreground(muted),
		notice:      lipgloss.NewStyle().Foreground(secondary).Bold(true),
		err: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		dim:   lipgloss.NewStyle().Foreground(muted),
		title: lipgloss.NewStyle().Foreground(text),
		dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(dialogPadY, dialogPadX),
		selected:    lipgloss.NewStyle().Foreground(primary).Bold(true),
		tableHeader: lipgloss.NewStyle().Bold(true).Foreground(primary),
		priority: map[string]lipgloss.Style{
			task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		},
	}
}

func (s styles) priorityStyle(p string) lipgloss.Style {
	if st, ok := s.priority[p]; ok {
		return st
	}
	return s.dim
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
