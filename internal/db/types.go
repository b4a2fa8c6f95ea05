package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents a stored user account. PasswordHash never leaves this
// package's callers; API responses use types.User instead.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Resume represents one stored parsed résumé upload.
type Resume struct {
	ID         uuid.UUID `json:"id"`
	UserID     int64     `json:"user_id"`
	ParsedText string    `json:"parsed_text"`
	Skills     []string  `json:"skills"`
	CreatedAt  time.Time `json:"created_at"`
}
