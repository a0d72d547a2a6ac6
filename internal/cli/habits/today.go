package habits

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
)

type TodayCmd struct {
	Date string `help:"Show the checklist of another day (YYYY-MM-DD)." default:""`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	list, err := ctx.Tracker.Checklist(ctx.UserID, day)
	if err != nil {
		return err
	}

	ctx.Printf("%s  %s\n\n",
		cli.HeadingStyle.Render(day.In(time.UTC).Format("Monday, Jan 2 2006")),
		cli.MutedStyle.Render(fmt.Sprintf("%d/%d done (%d%%)", list.Completed, list.Total, list.Percent)))

	if list.Total == 0 {
		ctx.Println("No habits due today.")
		return nil
	}

	for _, item := range list.Items {
		switch {
		case item.Completed && item.Count > 1:
			ctx.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ %s ×%d", item.Habit.Name, item.Count)))
		case item.Completed:
			ctx.Println(cli.SuccessStyle.Render("✓ " + item.Habit.Name))
		default:
			ctx.Println("○ " + item.Habit.Name)
		}
	}

	if list.AllDone {
		ctx.Println()
		ctx.Println(cli.SuccessStyle.Render("All done for today!"))
	}
	return nil
}
