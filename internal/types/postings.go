// Package types provides type definitions for structured data used throughout the internship-matcher system.
package types

// PostingRecord represents one validated internship catalog entry.
// Records are loaded as an immutable batch per pipeline run; derived fields
// (skill match, final score, cluster) live on RankedMatch, never here.
type PostingRecord struct {
	// ID is the zero-based ordinal of the row in the source catalog. It is
	// the key used for match persistence.
	ID int64 `json:"id"`

	Title       string `json:"title" validate:"required"`
	Company     string `json:"company,omitempty"`
	Description string `json:"description"`

	// RequiredSkillsRaw is the comma-delimited column as loaded.
	RequiredSkillsRaw string `json:"required_skills"`

	// RequiredSkills is the normalized (lower-cased, trimmed, deduplicated)
	// token list derived from RequiredSkillsRaw. Empty when the raw column
	// was blank or unparseable.
	RequiredSkills []string `json:"required_skills_list,omitempty"`

	// Link is the external application link, normalized from whichever
	// link-style column the catalog carried. Empty when absent.
	Link string `json:"link,omitempty"`
}

// MatchResult is one persisted match row for a user. Rows are append-only:
// every pipeline run inserts fresh rows and never updates old ones.
type MatchResult struct {
	UserID    int64   `json:"user_id"`
	PostingID int64   `json:"posting_id"`
	Company   string  `json:"company"`
	Title     string  `json:"title"`
	Score     float64 `json:"score"`
	Cluster   int     `json:"cluster"`
}

// RankedMatch is one row of the ranked table returned to the caller.
type RankedMatch struct {
	PostingID     int64   `json:"posting_id"`
	Company       string  `json:"company"`
	Title         string  `json:"title"`
	FinalScore    float64 `json:"final_score"`
	Cluster       int     `json:"cluster"`
	SkillMatchPct float64 `json:"skill_match_pct"`
	Link          string  `json:"link,omitempty"`
}
