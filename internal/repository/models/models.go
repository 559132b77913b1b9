package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Profile represents a principal row in the profiles table.
type Profile struct {
	ID                string         `db:"id"` // ULID
	GoogleID          string         `db:"google_id"`
	Email             string         `db:"email"`
	Name              sql.NullString `db:"name"`
	ProfilePictureURL sql.NullString `db:"profile_picture_url"`
	CoinBalance       int            `db:"coin_balance"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
	DeletedAt         sql.NullTime   `db:"deleted_at"`
}

// Chat represents a conversation row. History is the full ordered message
// array stored as JSONB.
type Chat struct {
	ID        string          `db:"id"` // ULID
	UserID    string          `db:"user_id"`
	Title     string          `db:"title"`
	History   json.RawMessage `db:"history"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// QuizSet represents a saved quiz row. Questions and Settings are JSONB.
type QuizSet struct {
	ID        string          `db:"id"` // ULID
	CreatorID string          `db:"creator_id"`
	Title     string          `db:"title"`
	Questions json.RawMessage `db:"questions"`
	Settings  json.RawMessage `db:"settings"`
	Status    string          `db:"status"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// QuizAttempt represents a participant attempt row.
type QuizAttempt struct {
	ID               string          `db:"id"` // ULID
	QuizSetID        string          `db:"quiz_set_id"`
	UserID           sql.NullString  `db:"user_id"`
	ParticipantName  string          `db:"participant_name"`
	Score            int             `db:"score"`
	SubmittedAnswers json.RawMessage `db:"submitted_answers"`
	CreatedAt        time.Time       `db:"created_at"`
}
