package models

import "time"

// JournalEntry is a free-form note a user attaches to a trading day.
type JournalEntry struct {
	ID        int64     `json:"id,omitempty"`
	UserID    int64     `json:"-"`
	Date      time.Time `json:"date"`
	Subject   string    `json:"subject"`
	Text      string    `json:"text"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
