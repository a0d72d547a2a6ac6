package postgres

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/models"
)

func (s *Store) RecordCompletion(c models.Completion) error {
	_, err := s.db.Exec(`
		INSERT INTO completions (id, habit_id, user_id, date, count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.HabitID, c.UserID, c.Date, c.Count, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}
	return nil
}

func (s *Store) ListCompletions(userID, habitID string) ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT id, habit_id, user_id, date, count, created_at FROM completions
		WHERE user_id = $1 AND habit_id = $2
		ORDER BY date, created_at`, userID, habitID)
}

func (s *Store) ListCompletionsForDay(userID, day string) ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT id, habit_id, user_id, date, count, created_at FROM completions
		WHERE user_id = $1 AND date = $2
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
		if err := rows.Scan(&c.ID, &c.HabitID, &c.UserID, &c.Date, &c.Count, &c.CreatedAt); err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

func (s *Store) DeleteCompletion(userID, id string) error {
	res, err := s.db.Exec(`DELETE FROM completions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res, "completion", id)
}
