package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitual/internal/calendar"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

const habitColumns = `id, user_id, name, category, description, color,
	recurrence_type, recurrence_days, recurrence_date, created_on, created_at, active`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var rec storage.RecurrenceColumns
	var createdOn, createdAt string
	var active int

	err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Category, &h.Description, &h.Color,
		&rec.Type, &rec.Days, &rec.Date, &createdOn, &createdAt, &active)
	if err != nil {
		return models.Habit{}, err
	}

	h.Recurrence = storage.DecodeRecurrence(rec)
	h.Active = active == 1
	if h.CreatedOn, err = calendar.Parse(createdOn); err != nil {
		return models.Habit{}, fmt.Errorf("habit %s: %w", h.ID, err)
	}
	if h.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.Habit{}, fmt.Errorf("habit %s: %w", h.ID, err)
	}
	return h, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (s *Store) AddHabit(habit models.Habit) error {
	rec, err := storage.EncodeRecurrence(habit.Recurrence)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.UserID, habit.Name, habit.Category, habit.Description, habit.Color,
		rec.Type, rec.Days, rec.Date, habit.CreatedOn.String(), formatTime(habit.CreatedAt), boolToInt(habit.Active))
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}
	return nil
}

func (s *Store) GetHabit(userID, id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ? AND user_id = ?`, id, userID)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) GetHabitByName(userID, name string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+habitColumns+` FROM habits
		WHERE user_id = ? AND name = ? AND active = 1`, userID, name)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %q: %w", name, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) ListHabits(userID string) ([]models.Habit, error) {
	return s.ListAllHabits(userID, false)
}

func (s *Store) ListAllHabits(userID string, includeInactive bool) ([]models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = ?`
	if !includeInactive {
		query += ` AND active = 1`
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	rec, err := storage.EncodeRecurrence(habit.Recurrence)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE habits SET name = ?, category = ?, description = ?, color = ?,
			recurrence_type = ?, recurrence_days = ?, recurrence_date = ?, active = ?
		WHERE id = ? AND user_id = ?`,
		habit.Name, habit.Category, habit.Description, habit.Color,
		rec.Type, rec.Days, rec.Date, boolToInt(habit.Active),
		habit.ID, habit.UserID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return requireRow(res, "habit", habit.ID)
}

func (s *Store) DeleteHabit(userID, id string) error {
	res, err := s.db.Exec(`UPDATE habits SET active = 0 WHERE id = ? AND user_id = ? AND active = 1`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res, "habit", id)
}

func (s *Store) RestoreHabit(userID, id string) error {
	res, err := s.db.Exec(`UPDATE habits SET active = 1 WHERE id = ? AND user_id = ? AND active = 0`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to restore habit: %w", err)
	}
	return requireRow(res, "deleted habit", id)
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
