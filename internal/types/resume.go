package types

// ResumeDocument holds the extracted text of one uploaded résumé plus the
// skill tokens derived from it. A ResumeDocument is created once per upload,
// is immutable afterwards, and is owned by exactly one pipeline invocation.
type ResumeDocument struct {
	Text   string   `json:"text"`
	Skills []string `json:"skills"`
}

// NewResumeDocument builds a ResumeDocument from raw text and a skill list.
// Skills are expected to be pre-normalized (see skills.Normalize); duplicates
// are dropped here while the first-seen order is preserved.
func NewResumeDocument(text string, skills []string) *ResumeDocument {
	seen := make(map[string]bool, len(skills))
	deduped := make([]string, 0, len(skills))
	for _, s := range skills {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		deduped = append(deduped, s)
	}
	return &ResumeDocument{Text: text, Skills: deduped}
}
