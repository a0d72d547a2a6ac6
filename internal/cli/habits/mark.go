package habits

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
)

type MarkCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Count int    `short:"n" help:"Number of repetitions performed." default:"1"`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Undo  bool   `help:"Remove the latest completion of that day instead."`
}

func (c *MarkCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Tracker.FindHabit(ctx.UserID, c.Habit)
	if err != nil {
		return err
	}

	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	today := ctx.Tracker.Today()
	if day.After(today) {
		return fmt.Errorf("cannot mark %s: date is in the future", day)
	}

	if c.Undo {
		if err := ctx.Tracker.UndoLatest(ctx.UserID, habit.ID, day); err != nil {
			return err
		}
		ctx.Printf("Removed latest completion of %s on %s\n", habit.Name, day)
		return nil
	}

	completion, err := ctx.Tracker.MarkComplete(ctx.UserID, habit.ID, day, c.Count)
	if err != nil {
		return err
	}
	if completion.Count > 1 {
		ctx.Printf("✓ Marked %s done ×%d on %s\n", habit.Name, completion.Count, completion.Date)
	} else {
		ctx.Printf("✓ Marked %s done on %s\n", habit.Name, completion.Date)
	}

	stats, err := ctx.Tracker.HabitStatistics(ctx.UserID, habit.ID, today)
	if err != nil {
		return err
	}
	ctx.Printf("  Current streak: %s\n", days(stats.CurrentStreak))
	return nil
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
