package postgres

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
	var createdOn string

	err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Category, &h.Description, &h.Color,
		&rec.Type, &rec.Days, &rec.Date, &createdOn, &h.CreatedAt, &h.Active)
	if err != nil {
		return models.Habit{}, err
	}

	h.Recurrence = storage.DecodeRecurrence(rec)
	if h.CreatedOn, err = calendar.Parse(createdOn); err != nil {
		return models.Habit{}, fmt.Errorf("habit %s: %w", h.ID, err)
	}
	return h, nil
}

func (s *Store) AddHabit(habit models.Habit) error {
	rec, err := storage.EncodeRecurrence(habit.Recurrence)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		habit.ID, habit.UserID, habit.Name, habit.Category, habit.Description, habit.Color,
		rec.Type, rec.Days, rec.Date, habit.CreatedOn.String(), habit.CreatedAt, habit.Active)
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}
	return nil
}

func (s *Store) GetHabit(userID, id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = $1 AND user_id = $2`, id, userID)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) GetHabitByName(userID, name string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+habitColumns+` FROM habits
		WHERE user_id = $1 AND name = $2 AND active`, userID, name)
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
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = $1`
	if !includeInactive {
		query += ` AND active`
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
		UPDATE habits SET name = $1, category = $2, description = $3, color = $4,
			recurrence_type = $5, recurrence_days = $6, recurrence_date = $7, active = $8
		WHERE id = $9 AND user_id = $10`,
		habit.Name, habit.Category, habit.Description, habit.Color,
		rec.Type, rec.Days, rec.Date, habit.Active,
		habit.ID, habit.UserID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return requireRow(res, "habit", habit.ID)
}

func (s *Store) DeleteHabit(userID, id string) error {
	res, err := s.db.Exec(`UPDATE habits SET active = FALSE WHERE id = $1 AND user_id = $2 AND active`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res, "habit", id)
}

func (s *Store) RestoreHabit(userID, id string) error {
	res, err := s.db.Exec(`UPDATE habits SET active = TRUE WHERE id = $1 AND user_id = $2 AND NOT active`, id, userID)
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
