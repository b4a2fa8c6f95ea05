// Package skills provides skill extraction from résumé text and overlap
// scoring between résumé skills and posting requirements.
package skills

import "strings"

// Normalize canonicalizes a single skill token for comparison: lower-cased
// and whitespace-trimmed. Returns "" for blank input.
func Normalize(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// NormalizeList normalizes every token in the list, dropping blanks and
// duplicates while preserving first-seen order.
func NormalizeList(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		normalized := Normalize(s)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}

// SplitRequiredSkills parses a comma-delimited required-skills column into a
// normalized token list. A blank or unparseable column yields an empty list,
// never an error: malformed rows still participate in ranking on the
// remaining signals.
func SplitRequiredSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return NormalizeList(strings.Split(raw, ","))
}
