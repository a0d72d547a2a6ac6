package storage

import (
	"errors"

	"github.com/julianstephens/habitual/internal/models"
)

// ErrNotFound is returned when a requested row does not exist for the user.
var ErrNotFound = errors.New("not found")

// Provider is implemented by every storage backend. All per-user methods
// scope reads and writes to the given user id.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(userID, id string) (models.Habit, error)
	GetHabitByName(userID, name string) (models.Habit, error)
	// ListHabits returns the user's active habits, newest first.
	ListHabits(userID string) ([]models.Habit, error)
	ListAllHabits(userID string, includeInactive bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// DeleteHabit deactivates a habit. Its completions are kept.
	DeleteHabit(userID, id string) error
	RestoreHabit(userID, id string) error

	// Completions
	RecordCompletion(models.Completion) error
	ListCompletions(userID, habitID string) ([]models.Completion, error)
	ListCompletionsForDay(userID, day string) ([]models.Completion, error)
	DeleteCompletion(userID, id string) error

	// Journal
	AddJournalEntry(models.JournalEntry) error
	UpdateJournalEntry(models.JournalEntry) error
	ListJournalEntries(userID string) ([]models.JournalEntry, error)
	GetJournalEntryByDate(userID, day string) (models.JournalEntry, error)
}
