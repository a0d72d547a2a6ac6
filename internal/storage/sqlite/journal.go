package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

func (s *Store) AddJournalEntry(e models.JournalEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO journal_entries (id, user_id, date, content, mood, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Date, e.Content, e.Mood, formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to add journal entry: %w", err)
	}
	return nil
}

func (s *Store) UpdateJournalEntry(e models.JournalEntry) error {
	res, err := s.db.Exec(`
		UPDATE journal_entries SET content = ?, mood = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		e.Content, e.Mood, formatTime(e.UpdatedAt), e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}
	return requireRow(res, "journal entry", e.ID)
}

func (s *Store) ListJournalEntries(userID string) ([]models.JournalEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, date, content, mood, created_at, updated_at
		FROM journal_entries WHERE user_id = ?
		ORDER BY date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) GetJournalEntryByDate(userID, day string) (models.JournalEntry, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, date, content, mood, created_at, updated_at
		FROM journal_entries WHERE user_id = ? AND date = ?`, userID, day)
	e, err := scanJournalEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.JournalEntry{}, fmt.Errorf("journal entry for %s: %w", day, storage.ErrNotFound)
	}
	return e, err
}

func scanJournalEntry(row rowScanner) (models.JournalEntry, error) {
	var e models.JournalEntry
	var createdAt, updatedAt string
	if err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.Content, &e.Mood, &createdAt, &updatedAt); err != nil {
		return models.JournalEntry{}, err
	}
	var err error
	if e.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.JournalEntry{}, err
	}
	if e.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.JournalEntry{}, err
	}
	return e, nil
}
