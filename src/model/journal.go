package model

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ankitkhedar12/trading-journal/src/models"
)

// CreateJournalEntry inserts one journal entry for a user. Tags are stored
// as a JSON array in a TEXT column.
func CreateJournalEntry(db *sql.DB, e *models.JournalEntry) error {
	if e.Tags == nil {
		e.Tags = []string{}
	}
	tagsJSON, err := json.Marshal(e.Tags)
	if err != nil {
		return fmt.Errorf("encoding journal tags: %w", err)
	}
	res, err := db.Exec(`
		INSERT INTO journal_entries (user_id, date, subject, text, tags)
		VALUES (?, ?, ?, ?, ?)`,
		e.UserID, e.Date.UTC().Format(time.RFC3339), e.Subject, e.Text, string(tagsJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}
	e.ID, _ = res.LastInsertId()
	return nil
}

// ListJournalEntries returns a user's entries, newest first.
func ListJournalEntries(db *sql.DB, userID int64) ([]models.JournalEntry, error) {
	rows, err := db.Query(`
		SELECT id, user_id, date, subject, text, tags, created_at
		FROM journal_entries
		WHERE user_id = ?
		ORDER BY date DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var date, tagsJSON, createdAt string
		if err := rows.Scan(&e.ID, &e.UserID, &date, &e.Subject, &e.Text, &tagsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		if e.Date, err = parseDBTime(date); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = parseDBTime(createdAt)
		if err := json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
			e.Tags = []string{}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal rows: %w", err)
	}
	return entries, nil
}
