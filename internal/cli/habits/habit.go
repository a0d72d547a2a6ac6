package habits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/recurrence"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/tui"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Edit    HabitEditCmd    `cmd:"" help:"Edit an existing habit."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit (soft delete)."`
	Restore HabitRestoreCmd `cmd:"" help:"Restore a deleted habit."`
}

type HabitAddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name. Opens a form when omitted."`
	Category    string `help:"Category label."`
	Description string `help:"Free-form description."`
	Color       string `help:"Display color."`
	Type        string `short:"t" help:"Recurrence: daily, weekly or date." enum:"daily,weekly,date" default:"daily"`
	Days        string `help:"Weekdays for weekly habits, e.g. mon,wed,fri."`
	Date        string `help:"Date for one-off habits (YYYY-MM-DD)."`
	Interactive bool   `short:"i" help:"Fill in the habit with an interactive form."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	var in tracker.HabitInput
	if c.Interactive || strings.TrimSpace(c.Name) == "" {
		fm := &tui.HabitFormModel{
			Name:        c.Name,
			Category:    c.Category,
			Description: c.Description,
			Color:       c.Color,
			Type:        constants.RecurrenceType(c.Type),
			Days:        c.Days,
			Date:        c.Date,
		}
		if err := tui.NewHabitForm(fm).Run(); err != nil {
			return err
		}
		parsed, err := fm.Input()
		if err != nil {
			return err
		}
		in = parsed
	} else {
		rec, err := recurrence.Parse(c.Type, c.Days, c.Date)
		if err != nil {
			return err
		}
		in = tracker.HabitInput{
			Name:        c.Name,
			Category:    c.Category,
			Description: c.Description,
			Color:       c.Color,
			Recurrence:  rec,
		}
	}

	habit, err := ctx.Tracker.CreateHabit(ctx.UserID, in)
	if err != nil {
		return err
	}
	ctx.Printf("Added habit: %s (%s)\n", habit.Name, recurrence.Describe(habit.Recurrence))
	return nil
}

type HabitListCmd struct {
	Deleted bool `help:"Include deleted habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.ListAllHabits(ctx.UserID, c.Deleted)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		status := ""
		if !h.Active {
			status = " [DELETED]"
		}
		category := ""
		if h.Category != "" {
			category = fmt.Sprintf(" [%s]", h.Category)
		}
		ctx.Printf("%s%s%s  %s  %s\n", h.Name, category, status,
			recurrence.Describe(h.Recurrence), cli.MutedStyle.Render(h.ID))
	}
	return nil
}

type HabitEditCmd struct {
	Habit       string  `arg:"" help:"Habit name or id."`
	Name        *string `help:"New name."`
	Category    *string `help:"New category."`
	Description *string `help:"New description."`
	Color       *string `help:"New display color."`
	Type        *string `short:"t" help:"New recurrence: daily, weekly or date."`
	Days        *string `help:"New weekdays for weekly habits."`
	Date        *string `help:"New date for one-off habits (YYYY-MM-DD)."`
	Interactive bool    `short:"i" help:"Edit the habit with an interactive form."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Tracker.FindHabit(ctx.UserID, c.Habit)
	if err != nil {
		return err
	}

	fm := tui.FormFromHabit(habit)
	if c.Interactive {
		if err := tui.NewHabitForm(fm).Run(); err != nil {
			return err
		}
	} else {
		if !c.changed() {
			ctx.Println("No changes specified. Use flags or --interactive to edit the habit.")
			return nil
		}
		apply(&fm.Name, c.Name)
		apply(&fm.Category, c.Category)
		apply(&fm.Description, c.Description)
		apply(&fm.Color, c.Color)
		apply(&fm.Days, c.Days)
		apply(&fm.Date, c.Date)
		if c.Type != nil {
			fm.Type = constants.RecurrenceType(strings.ToLower(strings.TrimSpace(*c.Type)))
		}
		// An unreadable stored rule must be replaced explicitly
		if _, ok := habit.Recurrence.(models.Unrecognized); ok && c.Type == nil {
			return fmt.Errorf("%w: habit %q has an unknown recurrence, set --type", models.ErrInvalidRecurrence, habit.Name)
		}
	}

	in, err := fm.Input()
	if err != nil {
		return err
	}
	updated, err := ctx.Tracker.UpdateHabit(ctx.UserID, habit.ID, in)
	if err != nil {
		return err
	}
	ctx.Printf("Updated habit: %s (%s)\n", updated.Name, recurrence.Describe(updated.Recurrence))
	return nil
}

func (c *HabitEditCmd) changed() bool {
	for _, v := range []*string{c.Name, c.Category, c.Description, c.Color, c.Type, c.Days, c.Date} {
		if v != nil {
			return true
		}
	}
	return false
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Tracker.FindHabit(ctx.UserID, c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.DeleteHabit(ctx.UserID, habit.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", habit.Name)
	ctx.Printf("Restore it with: habitual habit restore %s\n", habit.ID)
	return nil
}

type HabitRestoreCmd struct {
	Habit string `arg:"" help:"Id or name of the deleted habit."`
}

func (c *HabitRestoreCmd) Run(ctx *cli.Context) error {
	habit, err := findDeleted(ctx, c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.RestoreHabit(ctx.UserID, habit.ID); err != nil {
		return err
	}
	ctx.Printf("Restored habit: %s\n", habit.Name)
	return nil
}

// findDeleted resolves a deleted habit by id, or by name picking the most
// recently created match.
func findDeleted(ctx *cli.Context, ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	habit, err := ctx.Store.GetHabit(ctx.UserID, ref)
	if err == nil {
		if habit.Active {
			return models.Habit{}, fmt.Errorf("habit %q is not deleted", habit.Name)
		}
		return habit, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, err
	}

	all, err := ctx.Store.ListAllHabits(ctx.UserID, true)
	if err != nil {
		return models.Habit{}, err
	}
	// ListAllHabits is newest first
	for _, h := range all {
		if !h.Active && h.Name == ref {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("deleted habit %q: %w", ref, storage.ErrNotFound)
}
