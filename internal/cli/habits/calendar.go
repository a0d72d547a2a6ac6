package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/calendar"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/stats"
)

// cellWidth is the width of one day in the month grid.
const cellWidth = 4

type CalendarCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Month string `help:"Month in YYYY-MM format (default: current month)." default:""`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Tracker.FindHabit(ctx.UserID, c.Habit)
	if err != nil {
		return err
	}

	today := ctx.Tracker.Today()
	year, month := today.Year, today.Month
	if c.Month != "" {
		t, err := time.Parse("2006-01", strings.TrimSpace(c.Month))
		if err != nil {
			return fmt.Errorf("invalid month %q (expected YYYY-MM)", c.Month)
		}
		year, month = t.Year(), t.Month()
	}

	completions, err := ctx.Store.ListCompletions(ctx.UserID, habit.ID)
	if err != nil {
		return err
	}
	cells := stats.MonthGrid(completions, year, month)

	done := 0
	for _, cell := range cells {
		if cell.Completed {
			done++
		}
	}

	ctx.Printf("%s  %s\n\n", cli.HeadingStyle.Render(fmt.Sprintf("%s %d", month, year)), habit.Name)
	ctx.Print(renderMonth(cells, ctx.Settings.FirstWeekday(), today))
	ctx.Printf("\nCompleted %d of %d days\n", done, len(cells))
	return nil
}

// renderMonth lays the cells out in week rows starting on first. Completed
// days carry a check mark and today a dot.
func renderMonth(cells []stats.DayCell, first time.Weekday, today calendar.Date) string {
	var b strings.Builder
	for i := 0; i < 7; i++ {
		name := calendar.WeekdayName(time.Weekday((int(first) + i) % 7))
		b.WriteString(fmt.Sprintf("%*s", cellWidth, strings.ToUpper(name[:1])+name[1:2]))
	}
	b.WriteString("\n")
	if len(cells) == 0 {
		return b.String()
	}

	col := (int(cells[0].Date.Weekday()) - int(first) + 7) % 7
	b.WriteString(strings.Repeat(" ", col*cellWidth))
	for _, cell := range cells {
		text := fmt.Sprintf("%*d", cellWidth-1, cell.Date.Day)
		switch {
		case cell.Completed:
			text = cli.SuccessStyle.Render(text + "✓")
		case cell.Date.Equal(today):
			text = cli.WarningStyle.Render(text + "·")
		default:
			text += " "
		}
		b.WriteString(text)

		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}
	return b.String()
}
