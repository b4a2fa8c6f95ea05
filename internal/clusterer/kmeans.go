// Package clusterer groups posting vectors into K clusters with k-means.
// A persisted artifact gives stable assignments across runs; without one the
// model is fitted on the current batch and its cluster ids are only
// meaningful within that run.
package clusterer

import (
	"math"
	"math/rand"

	"github.com/jonathan/internship-matcher/internal/similarity"
)

const (
	// DefaultClusters is the target cluster count K when none is configured.
	DefaultClusters = 5

	// trainSeed fixes the ad-hoc training RNG so that fitting the same batch
	// twice yields the same assignments.
	trainSeed = 42

	maxIterations = 100
)

// Model is a fitted k-means artifact. Centroids are keyed by term rather
// than by dimension index, so a persisted model projects cleanly onto the
// feature space of any later run.
type Model struct {
	Centroids []map[string]float64 `json:"centroids"`
}

// Clusters returns K, the number of centroids.
func (m *Model) Clusters() int {
	return len(m.Centroids)
}

// Assign maps each posting vector to the id of its nearest centroid
// (squared Euclidean distance). Ids lie in [0, K); ties go to the lowest id.
func (m *Model) Assign(space *similarity.Space, vectors []similarity.Vector) []int {
	if len(m.Centroids) == 0 {
		return make([]int, len(vectors))
	}

	// Project each centroid onto the run's space once. Centroid terms
	// outside the space contribute a constant residual to every distance.
	projected := make([]similarity.Vector, len(m.Centroids))
	residual := make([]float64, len(m.Centroids))
	for c, centroid := range m.Centroids {
		vec := make(similarity.Vector, space.Dim())
		for term, weight := range centroid {
			if i, ok := space.Index(term); ok {
				vec[i] = weight
			} else {
				residual[c] += weight * weight
			}
		}
		projected[c] = vec
	}

	assignments := make([]int, len(vectors))
	for i, v := range vectors {
		best := 0
		bestDist := math.Inf(1)
		for c := range projected {
			d := squaredDistance(v, projected[c]) + residual[c]
			if d < bestDist {
				bestDist = d
				best = c
			}
		}
		assignments[i] = best
	}
	return assignments
}

// Train fits a new k-means model on the current batch of posting vectors.
// K is clamped to the batch size so a small catalog can never trip an
// out-of-range panic in the underlying math; callers see the effective K via
// Model.Clusters. Training is deterministic for a fixed batch.
func Train(space *similarity.Space, vectors []similarity.Vector, k int) *Model {
	n := len(vectors)
	if n == 0 {
		return &Model{}
	}
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}

	rng := rand.New(rand.NewSource(trainSeed))
	centroids := seedCentroids(vectors, k, rng)

	assignments := make([]int, n)
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, v := range vectors {
			best := 0
			bestDist := math.Inf(1)
			for c := range centroids {
				if d := squaredDistance(v, centroids[c]); d < bestDist {
					bestDist = d
					best = c
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}
		recomputeCentroids(centroids, vectors, assignments)
	}

	return modelFromCentroids(space, centroids)
}

// seedCentroids picks k initial centroids with the k-means++ strategy using
// the provided (seeded) RNG.
func seedCentroids(vectors []similarity.Vector, k int, rng *rand.Rand) []similarity.Vector {
	centroids := make([]similarity.Vector, 0, k)
	first := rng.Intn(len(vectors))
	centroids = append(centroids, cloneVector(vectors[first]))

	dists := make([]float64, len(vectors))
	for len(centroids) < k {
		var total float64
		for i, v := range vectors {
			d := math.Inf(1)
			for _, c := range centroids {
				if sd := squaredDistance(v, c); sd < d {
					d = sd
				}
			}
			dists[i] = d
			total += d
		}

		next := 0
		if total > 0 {
			target := rng.Float64() * total
			var cum float64
			for i, d := range dists {
				cum += d
				if cum >= target {
					next = i
					break
				}
			}
		} else {
			// All remaining points coincide with a centroid; any pick works.
			next = rng.Intn(len(vectors))
		}
		centroids = append(centroids, cloneVector(vectors[next]))
	}
	return centroids
}

// recomputeCentroids replaces each centroid with the mean of its members.
// A cluster that lost all members keeps its previous centroid.
func recomputeCentroids(centroids []similarity.Vector, vectors []similarity.Vector, assignments []int) {
	counts := make([]int, len(centroids))
	sums := make([]similarity.Vector, len(centroids))
	for c := range centroids {
		sums[c] = make(similarity.Vector, len(centroids[c]))
	}
	for i, v := range vectors {
		c := assignments[i]
		counts[c]++
		for j := range v {
			sums[c][j] += v[j]
		}
	}
	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		for j := range sums[c] {
			centroids[c][j] = sums[c][j] / float64(counts[c])
		}
	}
}

// modelFromCentroids converts dense centroids back to term-keyed maps,
// keeping only non-zero entries.
func modelFromCentroids(space *similarity.Space, centroids []similarity.Vector) *Model {
	terms := space.Terms()
	out := make([]map[string]float64, len(centroids))
	for c, centroid := range centroids {
		m := make(map[string]float64)
		for i, w := range centroid {
			if w != 0 {
				m[terms[i]] = w
			}
		}
		out[c] = m
	}
	return &Model{Centroids: out}
}

func squaredDistance(a, b similarity.Vector) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func cloneVector(v similarity.Vector) similarity.Vector {
	out := make(similarity.Vector, len(v))
	copy(out, v)
	return out
}
