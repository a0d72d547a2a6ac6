package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const barWidth = 20

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case stateAddHabit:
		content = docStyle.Render(m.form.View())
	default:
		content = m.checklist.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	title := "habitual"
	if !m.day.Date.IsZero() {
		title += " · " + m.day.Date.In(time.UTC).Format("Mon Jan 2")
	}

	parts := []string{titleStyle.Render(title)}
	if m.day.Total > 0 {
		parts = append(parts,
			progressStyle.Render(fmt.Sprintf("%d/%d done (%d%%)", m.day.Completed, m.day.Total, m.day.Percent)),
			progressBar(m.day.Percent, barWidth),
		)
	}
	if m.day.AllDone {
		parts = append(parts, allDoneStyle.Render("All done for today!"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render("Error: " + m.err.Error())
	}
	return statusStyle.Render(m.status)
}

// progressBar renders percent as a bar of width cells.
func progressBar(percent, width int) string {
	filled := min(max(percent*width/100, 0), width)
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}
