package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

const journalColumns = `id, user_id, date, content, mood, created_at, updated_at`

func (s *Store) AddJournalEntry(e models.JournalEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO journal_entries (`+journalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.UserID, e.Date, e.Content, e.Mood, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to add journal entry: %w", err)
	}
	return nil
}

func (s *Store) UpdateJournalEntry(e models.JournalEntry) error {
	res, err := s.db.Exec(`
		UPDATE journal_entries SET content = $1, mood = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5`,
		e.Content, e.Mood, e.UpdatedAt, e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}
	return requireRow(res, "journal entry", e.ID)
}

func (s *Store) ListJournalEntries(userID string) ([]models.JournalEntry, error) {
	rows, err := s.db.Query(`
		SELECT `+journalColumns+` FROM journal_entries
		WHERE user_id = $1 ORDER BY date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Content, &e.Mood, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) GetJournalEntryByDate(userID, day string) (models.JournalEntry, error) {
	var e models.JournalEntry
	err := s.db.QueryRow(`
		SELECT `+journalColumns+` FROM journal_entries
		WHERE user_id = $1 AND date = $2`, userID, day).
		Scan(&e.ID, &e.UserID, &e.Date, &e.Content, &e.Mood, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.JournalEntry{}, fmt.Errorf("journal entry for %s: %w", day, storage.ErrNotFound)
	}
	if err != nil {
		return models.JournalEntry{}, err
	}
	return e, nil
}
