package models

import (
	"time"

	"github.com/julianstephens/habitual/internal/calendar"
)

// Habit represents a recurring practice to track
type Habit struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Name        string        `json:"name"`
	Category    string        `json:"category,omitempty"`
	Description string        `json:"description,omitempty"`
	Color       string        `json:"color,omitempty"`
	Recurrence  Recurrence    `json:"-"`
	CreatedOn   calendar.Date `json:"created_on"` // first day that can count toward the current streak
	CreatedAt   time.Time     `json:"created_at"`
	Active      bool          `json:"active"`
}

// Completion records that a habit was performed on a calendar day.
// Several completions may exist for the same habit and day.
type Completion struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"` // YYYY-MM-DD, the day the action was performed
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

// HabitStatistics is derived from a habit's completion history on every read
type HabitStatistics struct {
	CurrentStreak    int `json:"current_streak"`
	LongestStreak    int `json:"longest_streak"`
	TotalCompletions int `json:"total_completions"`
	CompletionRate   int `json:"completion_rate"` // percent of the trailing window; may exceed 100 with same-day duplicates
}
