package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.AdaptiveColor{Light: "162", Dark: "205"}
	subtle  = lipgloss.AdaptiveColor{Light: "245", Dark: "240"}
	success = lipgloss.AdaptiveColor{Light: "28", Dark: "42"}
	warning = lipgloss.AdaptiveColor{Light: "166", Dark: "214"}
	danger  = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			Padding(0, 1)

	progressStyle  = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)
	barFilledStyle = lipgloss.NewStyle().Foreground(success)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(subtle)
	allDoneStyle   = lipgloss.NewStyle().Foreground(success).Bold(true).Padding(0, 1)

	dangerStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(warning).Italic(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)
