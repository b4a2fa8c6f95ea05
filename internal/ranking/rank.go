// Package ranking blends the pipeline's signals into one final score per
// posting, ranks the catalog, truncates to the top N and persists the
// retained rows.
package ranking

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/internship-matcher/internal/types"
)

// Blend weights for the final score. The remaining 0.2 is reserved headroom
// for future signals; unused signals contribute zero without changing the
// weights.
const (
	SimilarityWeight  = 0.5
	ProbabilityWeight = 0.3
)

// DefaultTopN is the number of rows retained when none is configured.
const DefaultTopN = 5

// MatchSaver persists one retained match row. Each call is an independent,
// atomic append; rows may be written in any order.
type MatchSaver interface {
	SaveMatch(ctx context.Context, m types.MatchResult) error
}

// Inputs carries the per-posting signal sequences for one combine-and-rank
// pass. All slices are posting-ordered and must have the same length as
// Postings.
type Inputs struct {
	UserID        int64
	Postings      []types.PostingRecord
	Similarities  []float64
	Probabilities []float64
	Clusters      []int
	SkillMatch    []float64
	TopN          int
}

// PersistFailure records one match row whose persistence attempt failed. The
// row's ranked presentation still succeeds; failures are reported as partial
// metadata.
type PersistFailure struct {
	PostingID int64
	Err       error
}

// Outcome is the ranked table plus persistence metadata.
type Outcome struct {
	Matches         []types.RankedMatch
	PersistFailures []PersistFailure
}

// Rank combines the signals (final = 0.5·similarity + 0.3·probability),
// sorts descending with a stable tie-break on catalog order, truncates to
// TopN and issues exactly one SaveMatch per retained row. A nil saver skips
// persistence entirely.
func Rank(ctx context.Context, in Inputs, saver MatchSaver) (*Outcome, error) {
	n := len(in.Postings)
	if len(in.Similarities) != n || len(in.Probabilities) != n ||
		len(in.Clusters) != n || len(in.SkillMatch) != n {
		return nil, fmt.Errorf("signal length mismatch: %d postings, %d/%d/%d/%d signals",
			n, len(in.Similarities), len(in.Probabilities), len(in.Clusters), len(in.SkillMatch))
	}

	topN := in.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	finals := make([]float64, n)
	for i := range finals {
		finals[i] = SimilarityWeight*in.Similarities[i] + ProbabilityWeight*in.Probabilities[i]
	}

	// Stable sort keeps the original catalog order for equal scores, which
	// makes repeated runs reproducible row for row.
	sort.SliceStable(order, func(a, b int) bool {
		return finals[order[a]] > finals[order[b]]
	})

	if len(order) > topN {
		order = order[:topN]
	}

	matches := make([]types.RankedMatch, len(order))
	for i, idx := range order {
		p := in.Postings[idx]
		matches[i] = types.RankedMatch{
			PostingID:     p.ID,
			Company:       p.Company,
			Title:         p.Title,
			FinalScore:    finals[idx],
			Cluster:       in.Clusters[idx],
			SkillMatchPct: in.SkillMatch[idx],
			Link:          p.Link,
		}
	}

	outcome := &Outcome{Matches: matches}
	if saver != nil {
		outcome.PersistFailures = persist(ctx, in, matches, saver)
	}
	return outcome, nil
}

// persist appends the retained rows. Writes are independent, so they run
// concurrently; every row is attempted even when some fail.
func persist(ctx context.Context, in Inputs, matches []types.RankedMatch, saver MatchSaver) []PersistFailure {
	errs := make([]error, len(matches))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range matches {
		i, m := i, m
		g.Go(func() error {
			errs[i] = saver.SaveMatch(gctx, types.MatchResult{
				UserID:    in.UserID,
				PostingID: m.PostingID,
				Company:   m.Company,
				Title:     m.Title,
				Score:     m.FinalScore,
				Cluster:   m.Cluster,
			})
			return nil
		})
	}
	_ = g.Wait()

	var failures []PersistFailure
	for i, err := range errs {
		if err != nil {
			failures = append(failures, PersistFailure{PostingID: matches[i].PostingID, Err: err})
		}
	}
	return failures
}
