// Package similarity builds a shared TF-IDF vector space over one résumé and
// a batch of posting descriptions and scores their pairwise cosine
// similarity.
package similarity

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches word tokens of at least two characters, mirroring the
// tokenizer the catalog descriptions were originally indexed with.
var tokenPattern = regexp.MustCompile(`\w\w+`)

// Vector is a dense, L2-normalized document vector inside one Space. The
// zero-length vector is valid and represents a document with no in-vocabulary
// terms.
type Vector []float64

// Space is the term-weighting vector space for a single pipeline run. It is
// built fresh from the combined corpus ([résumé] + descriptions) on every
// invocation and must never be reused across runs: a résumé vector from a
// stale space is not comparable with current posting vectors.
type Space struct {
	terms []string
	index map[string]int
	idf   []float64
}

// Build constructs the shared space from the résumé text and the N posting
// descriptions (résumé first in the corpus), then returns the résumé vector
// and the N posting vectors in input order.
//
// The construction is fully deterministic: the vocabulary is sorted, vectors
// are dense, and no randomness is involved. Out-of-vocabulary and stop-word
// terms contribute zero weight rather than failing.
func Build(resumeText string, descriptions []string) (*Space, Vector, []Vector) {
	docs := make([][]string, 0, len(descriptions)+1)
	docs = append(docs, tokenize(resumeText))
	for _, d := range descriptions {
		docs = append(docs, tokenize(d))
	}

	space := newSpace(docs)

	resumeVec := space.vectorize(docs[0])
	postingVecs := make([]Vector, len(descriptions))
	for i := range descriptions {
		postingVecs[i] = space.vectorize(docs[i+1])
	}
	return space, resumeVec, postingVecs
}

// Terms returns the sorted vocabulary of the space.
func (s *Space) Terms() []string {
	return s.terms
}

// Index returns the dimension index of a term, or false when the term is out
// of vocabulary.
func (s *Space) Index(term string) (int, bool) {
	i, ok := s.index[term]
	return i, ok
}

// Dim returns the dimensionality of vectors in this space.
func (s *Space) Dim() int {
	return len(s.terms)
}

// Similarities computes cosine similarity between the résumé vector and each
// posting vector, in posting order. Results are clamped to [0,1]; a zero
// vector on either side scores 0, never NaN.
func Similarities(resume Vector, postings []Vector) []float64 {
	out := make([]float64, len(postings))
	for i, p := range postings {
		out[i] = Cosine(resume, p)
	}
	return out
}

// Cosine returns the cosine similarity of two vectors from the same space,
// clamped to [0,1].
func Cosine(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Min(1.0, math.Max(0.0, sim))
}

// tokenize lower-cases the text, extracts word tokens and drops stop words.
func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if IsStopWord(t) {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// newSpace derives the sorted vocabulary and smoothed IDF weights from the
// tokenized corpus.
func newSpace(docs [][]string) *Space {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, t := range doc {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(docs))
	for i, t := range terms {
		index[t] = i
		// Smoothed IDF: every term behaves as if seen in one extra document.
		idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	return &Space{terms: terms, index: index, idf: idf}
}

// vectorize maps one tokenized document into the space: raw term frequency
// scaled by IDF, then L2-normalized.
func (s *Space) vectorize(tokens []string) Vector {
	vec := make(Vector, len(s.terms))
	for _, t := range tokens {
		if i, ok := s.index[t]; ok {
			vec[i]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= s.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
