// Package tracker combines storage with the pure recurrence and statistics
// rules to answer the questions the CLI and TUI ask.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/habitual/internal/calendar"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/recurrence"
	"github.com/julianstephens/habitual/internal/stats"
	"github.com/julianstephens/habitual/internal/storage"
)

// maxConcurrentLoads bounds the per-habit completion queries in Statistics.
const maxConcurrentLoads = 8

var (
	ErrNameRequired  = errors.New("habit name is required")
	ErrDuplicateName = errors.New("an active habit with this name already exists")
	ErrInvalidCount  = errors.New("completion count must be positive")
	ErrInactiveHabit = errors.New("habit is deleted")
	ErrEmptyJournal  = errors.New("journal entry is empty")
)

// HabitWithStats pairs a habit with its statistics as of a given day.
type HabitWithStats struct {
	Habit models.Habit
	Stats models.HabitStatistics
	Due   bool
}

type ChecklistItem struct {
	Habit     models.Habit
	Completed bool
	Count     int // summed count of the day's completions
}

// Checklist is the list of habits due on one day and how far along it is.
type Checklist struct {
	Date      calendar.Date
	Items     []ChecklistItem
	Completed int
	Total     int
	Percent   int
	AllDone   bool
}

// HabitInput holds the user-editable fields of a habit.
type HabitInput struct {
	Name        string
	Category    string
	Description string
	Color       string
	Recurrence  models.Recurrence
}

type Service struct {
	store storage.Provider
	loc   *time.Location
	now   func() time.Time
	newID func() string
}

// New returns a Service that resolves "today" in loc.
func New(store storage.Provider, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store: store,
		loc:   loc,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Today returns the current calendar day in the service's timezone.
func (s *Service) Today() calendar.Date {
	return calendar.FromTime(s.now(), s.loc)
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// Statistics computes statistics for every active habit of the user. The
// completion histories are loaded concurrently; the result keeps the order
// of ListHabits.
func (s *Service) Statistics(ctx context.Context, userID string, today calendar.Date) ([]HabitWithStats, error) {
	habits, err := s.store.ListHabits(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	results := make([]HabitWithStats, len(habits))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)

	for i, habit := range habits {
		i, habit := i, habit
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			completions, err := s.store.ListCompletions(userID, habit.ID)
			if err != nil {
				return fmt.Errorf("failed to load completions for %q: %w", habit.Name, err)
			}
			if n := stats.Malformed(completions); n > 0 {
				logger.Warn("skipping completions with malformed dates", "habit", habit.ID, "count", n)
			}
			results[i] = HabitWithStats{
				Habit: habit,
				Stats: stats.Compute(habit, completions, today),
				Due:   recurrence.IsDueToday(habit, today),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// HabitStatistics computes statistics for one habit.
func (s *Service) HabitStatistics(userID, habitID string, today calendar.Date) (models.HabitStatistics, error) {
	habit, err := s.store.GetHabit(userID, habitID)
	if err != nil {
		return models.HabitStatistics{}, err
	}
	completions, err := s.store.ListCompletions(userID, habitID)
	if err != nil {
		return models.HabitStatistics{}, err
	}
	return stats.Compute(habit, completions, today), nil
}

// Checklist returns the habits due on day with their completion state.
func (s *Service) Checklist(userID string, day calendar.Date) (Checklist, error) {
	habits, err := s.store.ListHabits(userID)
	if err != nil {
		return Checklist{}, fmt.Errorf("failed to list habits: %w", err)
	}
	completions, err := s.store.ListCompletionsForDay(userID, day.String())
	if err != nil {
		return Checklist{}, fmt.Errorf("failed to load completions: %w", err)
	}

	counts := make(map[string]int)
	done := make(map[string]bool)
	for _, c := range completions {
		done[c.HabitID] = true
		counts[c.HabitID] += c.Count
	}

	list := Checklist{Date: day, Items: []ChecklistItem{}}
	for _, h := range habits {
		if !recurrence.IsDueToday(h, day) {
			continue
		}
		item := ChecklistItem{Habit: h, Completed: done[h.ID], Count: counts[h.ID]}
		list.Items = append(list.Items, item)
		if item.Completed {
			list.Completed++
		}
	}

	list.Total = len(list.Items)
	if list.Total > 0 {
		list.Percent = int(math.Round(float64(list.Completed) * 100 / float64(list.Total)))
		list.AllDone = list.Completed == list.Total
	}
	return list, nil
}

// MarkComplete records that the habit was performed on day. A count of 0
// means 1.
func (s *Service) MarkComplete(userID, habitID string, day calendar.Date, count int) (models.Completion, error) {
	if count == 0 {
		count = 1
	}
	if count < 0 {
		return models.Completion{}, ErrInvalidCount
	}

	habit, err := s.store.GetHabit(userID, habitID)
	if err != nil {
		return models.Completion{}, err
	}
	if !habit.Active {
		return models.Completion{}, fmt.Errorf("%q: %w", habit.Name, ErrInactiveHabit)
	}

	c := models.Completion{
		ID:        s.newID(),
		HabitID:   habit.ID,
		UserID:    userID,
		Date:      day.String(),
		Count:     count,
		CreatedAt: s.now(),
	}
	if err := s.store.RecordCompletion(c); err != nil {
		return models.Completion{}, err
	}
	logger.Debug("completion recorded", "habit", habit.ID, "date", c.Date, "count", count)
	return c, nil
}

// UndoLatest removes the most recently recorded completion of a habit on day.
func (s *Service) UndoLatest(userID, habitID string, day calendar.Date) error {
	completions, err := s.store.ListCompletionsForDay(userID, day.String())
	if err != nil {
		return err
	}
	var latest *models.Completion
	for i := range completions {
		c := &completions[i]
		if c.HabitID == habitID && (latest == nil || c.CreatedAt.After(latest.CreatedAt)) {
			latest = c
		}
	}
	if latest == nil {
		return fmt.Errorf("no completion on %s: %w", day, storage.ErrNotFound)
	}
	return s.store.DeleteCompletion(userID, latest.ID)
}

// FindHabit resolves a habit by id, then by active name.
func (s *Service) FindHabit(userID, ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	if h, err := s.store.GetHabit(userID, ref); err == nil {
		return h, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, err
	}
	return s.store.GetHabitByName(userID, ref)
}

func (s *Service) CreateHabit(userID string, in HabitInput) (models.Habit, error) {
	if err := s.validate(userID, "", in); err != nil {
		return models.Habit{}, err
	}

	now := s.now()
	habit := models.Habit{
		ID:          s.newID(),
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Color:       strings.TrimSpace(in.Color),
		Recurrence:  in.Recurrence,
		CreatedOn:   calendar.FromTime(now, s.loc),
		CreatedAt:   now,
		Active:      true,
	}
	if err := s.store.AddHabit(habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// UpdateHabit replaces the editable fields of an existing habit.
func (s *Service) UpdateHabit(userID, habitID string, in HabitInput) (models.Habit, error) {
	habit, err := s.store.GetHabit(userID, habitID)
	if err != nil {
		return models.Habit{}, err
	}
	if err := s.validate(userID, habit.ID, in); err != nil {
		return models.Habit{}, err
	}

	habit.Name = strings.TrimSpace(in.Name)
	habit.Category = strings.TrimSpace(in.Category)
	habit.Description = strings.TrimSpace(in.Description)
	habit.Color = strings.TrimSpace(in.Color)
	habit.Recurrence = in.Recurrence
	if err := s.store.UpdateHabit(habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (s *Service) DeleteHabit(userID, habitID string) error {
	return s.store.DeleteHabit(userID, habitID)
}

// RestoreHabit reactivates a deleted habit unless its name has been reused.
func (s *Service) RestoreHabit(userID, habitID string) error {
	habit, err := s.store.GetHabit(userID, habitID)
	if err != nil {
		return err
	}
	if other, err := s.store.GetHabitByName(userID, habit.Name); err == nil && other.ID != habit.ID {
		return fmt.Errorf("%q: %w", habit.Name, ErrDuplicateName)
	}
	return s.store.RestoreHabit(userID, habitID)
}

func (s *Service) validate(userID, selfID string, in HabitInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ErrNameRequired
	}
	if err := recurrence.Validate(in.Recurrence); err != nil {
		return err
	}
	existing, err := s.store.GetHabitByName(userID, name)
	if err == nil && existing.ID != selfID {
		return fmt.Errorf("%q: %w", name, ErrDuplicateName)
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

// WriteJournal creates the entry for day, or replaces the content of the
// existing one.
func (s *Service) WriteJournal(userID string, day calendar.Date, content, mood string) (models.JournalEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.JournalEntry{}, ErrEmptyJournal
	}

	now := s.now()
	entry, err := s.store.GetJournalEntryByDate(userID, day.String())
	switch {
	case err == nil:
		entry.Content = content
		entry.Mood = strings.TrimSpace(mood)
		entry.UpdatedAt = now
		if err := s.store.UpdateJournalEntry(entry); err != nil {
			return models.JournalEntry{}, err
		}
		return entry, nil
	case errors.Is(err, storage.ErrNotFound):
		entry = models.JournalEntry{
			ID:        s.newID(),
			UserID:    userID,
			Date:      day.String(),
			Content:   content,
			Mood:      strings.TrimSpace(mood),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.store.AddJournalEntry(entry); err != nil {
			return models.JournalEntry{}, err
		}
		return entry, nil
	default:
		return models.JournalEntry{}, err
	}
}
