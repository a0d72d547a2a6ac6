package cli

import "github.com/charmbracelet/lipgloss"

// Output styles shared by the commands. Colors are dropped automatically
// when stdout is not a terminal.
var (
	HeadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)
