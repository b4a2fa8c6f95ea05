package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Resume Methods
// -----------------------------------------------------------------------------

// SaveResume persists one parsed résumé for a user and returns its ID.
func (db *DB) SaveResume(ctx context.Context, userID int64, parsedText string, skills []string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO resumes (id, user_id, parsed_text, skills)
		 VALUES ($1, $2, $3, $4)`,
		id, userID, parsedText, skills,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return id, nil
}

// GetResumesForUser returns a user's stored résumés, newest first.
func (db *DB) GetResumesForUser(ctx context.Context, userID int64) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, parsed_text, skills, created_at
		 FROM resumes WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		var r Resume
		if err := rows.Scan(&r.ID, &r.UserID, &r.ParsedText, &r.Skills, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	return resumes, rows.Err()
}
