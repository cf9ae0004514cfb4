package entities

import (
	"time"
)

// Entry represents a persisted handwriting transcription belonging to an
// identity. ID and CreatedAt are server-assigned on insert.
type Entry struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
