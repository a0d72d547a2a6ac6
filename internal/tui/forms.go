package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/calendar"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/recurrence"
	"github.com/julianstephens/habitual/internal/tracker"
)

// HabitFormModel holds the values bound to the habit form.
type HabitFormModel struct {
	Name        string
	Category    string
	Description string
	Color       string
	Type        constants.RecurrenceType
	Days        string // comma-separated weekdays
	Date        string
}

// FormFromHabit prefills the form with an existing habit.
func FormFromHabit(h models.Habit) *HabitFormModel {
	fm := &HabitFormModel{
		Name:        h.Name,
		Category:    h.Category,
		Description: h.Description,
		Color:       h.Color,
		Type:        constants.RecurrenceDaily,
	}
	switch r := h.Recurrence.(type) {
	case models.WeeklyOn:
		fm.Type = constants.RecurrenceWeekly
		fm.Days = strings.Join(r.Days, ",")
	case models.OnDate:
		fm.Type = constants.RecurrenceDate
		fm.Date = r.Date.String()
	}
	return fm
}

// Input converts the form values into a habit input.
func (fm *HabitFormModel) Input() (tracker.HabitInput, error) {
	rec, err := recurrence.Parse(string(fm.Type), fm.Days, fm.Date)
	if err != nil {
		return tracker.HabitInput{}, err
	}
	return tracker.HabitInput{
		Name:        fm.Name,
		Category:    fm.Category,
		Description: fm.Description,
		Color:       fm.Color,
		Recurrence:  rec,
	}, nil
}

// NewHabitForm creates a form for adding or editing a habit
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	if fm.Type == "" {
		fm.Type = constants.RecurrenceDaily
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Category").
				Value(&fm.Category),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewInput().
				Title("Color").
				Description("Any label or hex value, used for display only").
				Value(&fm.Color),
			huh.NewSelect[constants.RecurrenceType]().
				Title("Frequency").
				Options(
					huh.NewOption("Every day", constants.RecurrenceDaily),
					huh.NewOption("Weekly on selected days", constants.RecurrenceWeekly),
					huh.NewOption("On one date", constants.RecurrenceDate),
				).
				Value(&fm.Type),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Weekdays").
				Description("Comma-separated, e.g. mon,wed,fri").
				Value(&fm.Days).
				Validate(func(s string) error {
					_, err := recurrence.ParseDays(s)
					return err
				}),
		).WithHideFunc(func() bool { return fm.Type != constants.RecurrenceWeekly }),
		huh.NewGroup(
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(func(s string) error {
					_, err := calendar.Parse(s)
					return err
				}),
		).WithHideFunc(func() bool { return fm.Type != constants.RecurrenceDate }),
	).WithTheme(huh.ThemeDracula())
}
