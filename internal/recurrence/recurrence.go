package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/calendar"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// IsDueToday determines if a habit is due on the given day based on its
// recurrence rule. Unknown or incomplete rules are never due.
func IsDueToday(habit models.Habit, today calendar.Date) bool {
	switch rec := habit.Recurrence.(type) {
	case models.EveryDay:
		return true
	case models.WeeklyOn:
		name := today.WeekdayName()
		for _, day := range rec.Days {
			if strings.ToLower(strings.TrimSpace(day)) == name {
				return true
			}
		}
		return false
	case models.OnDate:
		if rec.Date.IsZero() {
			return false
		}
		return rec.Date.Equal(today)
	default:
		return false
	}
}

// ParseDays parses a comma-separated list of weekdays into canonical
// lowercase full names, in week order and without duplicates.
func ParseDays(s string) ([]string, error) {
	var seen [7]bool
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		wd, ok := calendar.ParseWeekday(part)
		if !ok {
			return nil, fmt.Errorf("invalid weekday: %s", strings.TrimSpace(part))
		}
		seen[wd] = true
	}

	var days []string
	for i, ok := range seen {
		if ok {
			days = append(days, calendar.WeekdayName(time.Weekday(i)))
		}
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: weekly recurrence needs at least one weekday", models.ErrInvalidRecurrence)
	}
	return days, nil
}

// Parse builds a recurrence from its CLI representation: a type tag plus
// the comma-separated days (weekly) or the date (date).
func Parse(kind, days, date string) (models.Recurrence, error) {
	switch constants.RecurrenceType(strings.ToLower(strings.TrimSpace(kind))) {
	case constants.RecurrenceDaily, "":
		return models.EveryDay{}, nil
	case constants.RecurrenceWeekly:
		parsed, err := ParseDays(days)
		if err != nil {
			return nil, err
		}
		return models.WeeklyOn{Days: parsed}, nil
	case constants.RecurrenceDate:
		d, err := calendar.Parse(date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrInvalidRecurrence, err)
		}
		return models.OnDate{Date: d}, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q (expected daily, weekly or date)", models.ErrInvalidRecurrence, kind)
	}
}

// Validate checks that a recurrence can be stored on a habit.
func Validate(rec models.Recurrence) error {
	switch r := rec.(type) {
	case models.EveryDay:
		return nil
	case models.WeeklyOn:
		if len(r.Days) == 0 {
			return fmt.Errorf("%w: weekly recurrence needs at least one weekday", models.ErrInvalidRecurrence)
		}
		for _, day := range r.Days {
			if _, ok := calendar.ParseWeekday(day); !ok {
				return fmt.Errorf("%w: invalid weekday %q", models.ErrInvalidRecurrence, day)
			}
		}
		return nil
	case models.OnDate:
		if r.Date.IsZero() {
			return fmt.Errorf("%w: date recurrence needs a date", models.ErrInvalidRecurrence)
		}
		return nil
	case models.Unrecognized:
		return fmt.Errorf("%w: unknown type %q", models.ErrInvalidRecurrence, r.Tag)
	default:
		return fmt.Errorf("%w: missing recurrence", models.ErrInvalidRecurrence)
	}
}

// Describe formats a recurrence rule into a human-readable string
func Describe(rec models.Recurrence) string {
	switch r := rec.(type) {
	case models.EveryDay:
		return "every day"
	case models.WeeklyOn:
		if len(r.Days) == 0 {
			return "weekly"
		}
		if len(r.Days) == 7 {
			return "every day (weekly)"
		}
		short := make([]string, 0, len(r.Days))
		for _, day := range r.Days {
			if len(day) >= 3 {
				day = day[:3]
			}
			short = append(short, day)
		}
		return fmt.Sprintf("weekly on %s", strings.Join(short, ","))
	case models.OnDate:
		if r.Date.IsZero() {
			return "specific date"
		}
		return fmt.Sprintf("on %s", r.Date.In(time.UTC).Format("Jan 2, 2006"))
	default:
		return "unknown"
	}
}
