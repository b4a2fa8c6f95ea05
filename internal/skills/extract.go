package skills

import "strings"

// keywordList is the curated set of skills the extractor recognizes.
// Matching is plain substring search over lower-cased text; synonyms and
// fuzzy matching are deliberately out of scope.
var keywordList = []string{
	"python", "java", "c++", "machine learning", "deep learning",
	"data analysis", "excel", "sql", "tableau", "pandas",
	"flask", "django", "react", "html", "css", "nlp", "pytorch",
	"tensorflow", "transformers", "analytics", "javascript",
	"docker", "kubernetes", "git", "communication", "teamwork",
}

// Extract returns the normalized skills found in résumé text, in keyword-list
// order, deduplicated. An empty result is valid: the skill-overlap signal is
// simply zero for every posting.
func Extract(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0, 8)
	for _, skill := range keywordList {
		if strings.Contains(lower, skill) {
			found = append(found, skill)
		}
	}
	return NormalizeList(found)
}
