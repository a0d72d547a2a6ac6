// Package stats derives streaks, totals and completion rates from a habit's
// completion history. Every function is pure; callers pass today explicitly.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/habitual/internal/calendar"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// DayCell is one day of a month grid
type DayCell struct {
	Date      calendar.Date
	Completed bool
	Count     int // sum of the counts of that day's completions
}

// Compute returns the statistics of a habit as of today.
// Completions whose date does not parse are ignored by the streak and rate
// calculations but still contribute to TotalCompletions.
func Compute(habit models.Habit, completions []models.Completion, today calendar.Date) models.HabitStatistics {
	dates := ParseDates(completions)
	days := DaySet(dates)

	return models.HabitStatistics{
		CurrentStreak:    CurrentStreak(days, habit.CreatedOn, today),
		LongestStreak:    LongestStreak(days),
		TotalCompletions: len(completions),
		CompletionRate:   CompletionRate(dates, today),
	}
}

// ParseDates returns the parsed date of every completion record, skipping
// records with malformed dates. Duplicates are kept.
func ParseDates(completions []models.Completion) []calendar.Date {
	dates := make([]calendar.Date, 0, len(completions))
	for _, c := range completions {
		d, err := calendar.Parse(c.Date)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

// Malformed counts the completions whose date cannot be parsed.
func Malformed(completions []models.Completion) int {
	n := 0
	for _, c := range completions {
		if _, err := calendar.Parse(c.Date); err != nil {
			n++
		}
	}
	return n
}

// DaySet collapses dates into the set of distinct days.
func DaySet(dates []calendar.Date) map[calendar.Date]struct{} {
	set := make(map[calendar.Date]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}

// CurrentStreak walks backward from today counting consecutive completed
// days, stopping at the first missed day. Today itself not being completed
// yet is not a miss. Days before createdOn are never examined.
func CurrentStreak(days map[calendar.Date]struct{}, createdOn, today calendar.Date) int {
	streak := 0
	for cursor := today; !cursor.Before(createdOn); cursor = cursor.AddDays(-1) {
		if _, ok := days[cursor]; ok {
			streak++
			continue
		}
		if cursor.Equal(today) {
			continue
		}
		break
	}
	return streak
}

// LongestStreak returns the length of the longest run of consecutive
// calendar days in the set.
func LongestStreak(days map[calendar.Date]struct{}) int {
	if len(days) == 0 {
		return 0
	}

	sorted := make([]calendar.Date, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].AddDays(1).Equal(sorted[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// CompletionRate is the percentage of the trailing window (today and the
// 29 days before it) covered by completion records. Each record counts,
// so same-day duplicates can push the result past 100.
func CompletionRate(dates []calendar.Date, today calendar.Date) int {
	windowStart := today.AddDays(-(constants.RateWindowDays - 1))
	recent := 0
	for _, d := range dates {
		if d.Before(windowStart) || d.After(today) {
			continue
		}
		recent++
	}
	return int(math.Round(float64(recent) / constants.RateWindowDays * 100))
}

// MonthGrid returns one cell per day of the given month, marking the days
// that have at least one completion.
func MonthGrid(completions []models.Completion, year int, month time.Month) []DayCell {
	counts := make(map[calendar.Date]int)
	for _, c := range completions {
		d, err := calendar.Parse(c.Date)
		if err != nil || d.Year != year || d.Month != month {
			continue
		}
		counts[d] += c.Count
	}

	days := calendar.MonthDays(year, month)
	cells := make([]DayCell, len(days))
	for i, d := range days {
		count, ok := counts[d]
		cells[i] = DayCell{Date: d, Completed: ok, Count: count}
	}
	return cells
}
