// Package classifier applies a previously fitted logistic match-probability
// model to posting vectors. Training the model is not part of the runtime
// pipeline; this package only consumes a persisted artifact.
package classifier

import (
	"math"

	"github.com/jonathan/internship-matcher/internal/similarity"
)

// Model is a fitted logistic regression artifact. Weights are keyed by term
// rather than by dimension index so the model can be projected onto the
// feature space of any run: terms absent from the current space simply
// contribute nothing, and space terms the model never saw get zero weight.
type Model struct {
	Bias    float64            `json:"bias"`
	Weights map[string]float64 `json:"weights"`
}

// Probabilities returns the match probability for each posting vector, in
// input order. Every value lies in [0,1].
func (m *Model) Probabilities(space *similarity.Space, vectors []similarity.Vector) []float64 {
	// Project term weights into the run's space once. Iterating the sorted
	// vocabulary keeps the arithmetic order deterministic.
	projected := make([]float64, space.Dim())
	for i, term := range space.Terms() {
		projected[i] = m.Weights[term]
	}

	probs := make([]float64, len(vectors))
	for i, vec := range vectors {
		z := m.Bias
		for j := range vec {
			z += projected[j] * vec[j]
		}
		probs[i] = sigmoid(z)
	}
	return probs
}

// ZeroSignal returns the neutral contribution used when no classifier
// artifact is available: zero probability for every posting.
func ZeroSignal(n int) []float64 {
	return make([]float64, n)
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
