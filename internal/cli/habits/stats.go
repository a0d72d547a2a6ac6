package habits

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/recurrence"
	"github.com/julianstephens/habitual/internal/tracker"
)

type StatsCmd struct {
	Habit string `arg:"" optional:"" help:"Show a single habit (name or id)."`
	JSON  bool   `help:"Print statistics as JSON."`
}

type habitStatsJSON struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Recurrence       string `json:"recurrence"`
	DueToday         bool   `json:"due_today"`
	CurrentStreak    int    `json:"current_streak"`
	LongestStreak    int    `json:"longest_streak"`
	TotalCompletions int    `json:"total_completions"`
	CompletionRate   int    `json:"completion_rate"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	today := ctx.Tracker.Today()

	results, err := ctx.Tracker.Statistics(context.Background(), ctx.UserID, today)
	if err != nil {
		return err
	}
	if c.Habit != "" {
		habit, err := ctx.Tracker.FindHabit(ctx.UserID, c.Habit)
		if err != nil {
			return err
		}
		results = filterHabit(results, habit.ID)
	}

	if c.JSON {
		out := make([]habitStatsJSON, 0, len(results))
		for _, r := range results {
			out = append(out, habitStatsJSON{
				ID:               r.Habit.ID,
				Name:             r.Habit.Name,
				Recurrence:       string(r.Habit.Recurrence.Type()),
				DueToday:         r.Due,
				CurrentStreak:    r.Stats.CurrentStreak,
				LongestStreak:    r.Stats.LongestStreak,
				TotalCompletions: r.Stats.TotalCompletions,
				CompletionRate:   r.Stats.CompletionRate,
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode statistics: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		ctx.Println("No habits found. Add one with 'habitual habit add'.")
		return nil
	}
	ctx.Println(renderStats(results))
	return nil
}

func filterHabit(results []tracker.HabitWithStats, id string) []tracker.HabitWithStats {
	for _, r := range results {
		if r.Habit.ID == id {
			return []tracker.HabitWithStats{r}
		}
	}
	return nil
}

func renderStats(results []tracker.HabitWithStats) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		due := ""
		if r.Due {
			due = "•"
		}
		rows = append(rows, []string{
			r.Habit.Name,
			recurrence.Describe(r.Habit.Recurrence),
			due,
			strconv.Itoa(r.Stats.CurrentStreak),
			strconv.Itoa(r.Stats.LongestStreak),
			strconv.Itoa(r.Stats.TotalCompletions),
			strconv.Itoa(r.Stats.CompletionRate) + "%",
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(cli.MutedStyle).
		Headers("HABIT", "SCHEDULE", "DUE", "STREAK", "BEST", "TOTAL", "30 DAYS").
		Rows(rows...).
		String()
}
