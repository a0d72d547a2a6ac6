package sqlite

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/models"
)

func (s *Store) RecordCompletion(c models.Completion) error {
	_, err := s.db.Exec(`
		INSERT INTO completions (id, habit_id, user_id, date, count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.HabitID, c.UserID, c.Date, c.Count, formatTime(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}
	return nil
}

func (s *Store) ListCompletions(userID, habitID string) ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT id, habit_id, user_id, date, count, created_at FROM completions
		WHERE user_id = ? AND habit_id = ?
		ORDER BY date, created_at`, userID, habitID)
}

func (s *Store) ListCompletionsForDay(userID, day string) ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT id, habit_id, user_id, date, count, created_at FROM completions
		WHERE user_id = ? AND date = ?
		ORDER BY created_at`, userID, day)
}

func (s *Store) queryCompletions(query string, args ...interface{}) ([]models.Completion, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completions := []models.Completion{}
	for rows.Next() {
		var c models.Completion
		var createdAt string
		if err := rows.Scan(&c.ID, &c.HabitID, &c.UserID, &c.Date, &c.Count, &createdAt); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, fmt.Errorf("completion %s: %w", c.ID, err)
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

func (s *Store) DeleteCompletion(userID, id string) error {
	res, err := s.db.Exec(`DELETE FROM completions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res, "completion", id)
}
