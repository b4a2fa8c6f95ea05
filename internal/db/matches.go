package db

import (
	"context"
	"fmt"

	"github.com/jonathan/internship-matcher/internal/types"
)

// -----------------------------------------------------------------------------
// Match Methods
// -----------------------------------------------------------------------------

// SaveMatch appends one match row. Each row is a single INSERT, so the write
// is atomic per row and concurrent runs for different users cannot
// interfere. Company and title are stored denormalized so reading matches
// back never depends on the catalog still being loaded.
func (db *DB) SaveMatch(ctx context.Context, m types.MatchResult) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO matches (user_id, posting_id, company, title, score, cluster)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.UserID, m.PostingID, m.Company, m.Title, m.Score, m.Cluster,
	)
	if err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}
	return nil
}

// GetMatchesForUser returns every stored match row for a user, ordered by
// score descending.
func (db *DB) GetMatchesForUser(ctx context.Context, userID int64) ([]types.MatchResult, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT user_id, posting_id, company, title, score, cluster
		 FROM matches WHERE user_id = $1
		 ORDER BY score DESC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []types.MatchResult
	for rows.Next() {
		var m types.MatchResult
		if err := rows.Scan(&m.UserID, &m.PostingID, &m.Company, &m.Title, &m.Score, &m.Cluster); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
