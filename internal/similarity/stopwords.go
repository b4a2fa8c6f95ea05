package similarity

import "strings"

// stopWords is the uniform English stop-word list applied to every document
// in a feature space. Filtering happens at tokenization time so résumé and
// posting vectors are always built from the same vocabulary rules.
var stopWords = buildStopWords()

func buildStopWords() map[string]bool {
	words := strings.Fields(`
		a about above after again against all am an and any are as at be
		because been before being below between both but by can did do does
		doing down during each few for from further had has have having he
		her here hers herself him himself his how if in into is it its
		itself just me more most my myself no nor not now of off on once
		only or other our ours ourselves out over own same she should so
		some such than that the their theirs them themselves then there
		these they this those through to too under until up very was we
		were what when where which while who whom why will with you your
		yours yourself yourselves
	`)
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// IsStopWord reports whether the lower-cased token is filtered from feature
// spaces.
func IsStopWord(token string) bool {
	return stopWords[token]
}
