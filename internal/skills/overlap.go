package skills

import "math"

// Overlap computes the skill-match percentage between a résumé skill set and
// one posting's required-skill list:
//
//	100 × |intersection| / max(1, len(required))
//
// rounded to one decimal place. An empty required list yields 0.0, not NaN.
// Both sides are expected normalized (see Normalize); comparison is exact
// token equality.
func Overlap(resumeSkills, requiredSkills []string) float64 {
	if len(requiredSkills) == 0 {
		return 0.0
	}

	resumeSet := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		resumeSet[s] = true
	}

	matched := 0
	counted := make(map[string]bool, len(requiredSkills))
	for _, s := range requiredSkills {
		if counted[s] {
			continue
		}
		counted[s] = true
		if resumeSet[s] {
			matched++
		}
	}

	pct := 100.0 * float64(matched) / float64(max(1, len(counted)))
	return math.Round(pct*10) / 10
}

// OverlapAll computes the skill-match percentage for every posting's
// required-skill list, in input order.
func OverlapAll(resumeSkills []string, requiredSkills [][]string) []float64 {
	out := make([]float64, len(requiredSkills))
	for i, required := range requiredSkills {
		out[i] = Overlap(resumeSkills, required)
	}
	return out
}
