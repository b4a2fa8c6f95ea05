// Package pipeline provides the high-level orchestration for one résumé
// matching run: a single linear pass of Parse → Vectorize → Score → Combine →
// Persist → Return. A Pipeline holds no cross-run state; the catalog and the
// persisted model artifacts are read-only within a run.
package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jonathan/internship-matcher/internal/classifier"
	"github.com/jonathan/internship-matcher/internal/clusterer"
	"github.com/jonathan/internship-matcher/internal/ranking"
	"github.com/jonathan/internship-matcher/internal/similarity"
	"github.com/jonathan/internship-matcher/internal/skills"
	"github.com/jonathan/internship-matcher/internal/types"
)

// PostingSource provides the posting catalog for a run.
type PostingSource interface {
	Postings(ctx context.Context) ([]types.PostingRecord, error)
}

// ModelSource loads the optional trained artifacts. The boolean return is
// the availability of the artifact, never an error.
type ModelSource interface {
	LoadClassifier() (*classifier.Model, bool)
	LoadClusterer() (*clusterer.Model, bool)
}

// VectorizeFunc builds the shared feature space for a run and returns the
// résumé vector plus the posting vectors.
type VectorizeFunc func(resumeText string, descriptions []string) (*similarity.Space, similarity.Vector, []similarity.Vector)

// SimilarityFunc scores the résumé vector against each posting vector.
type SimilarityFunc func(resume similarity.Vector, postings []similarity.Vector) []float64

// Options wires a Pipeline's collaborators. Postings and Models are
// required; Saver may be nil to skip persistence. Vectorize and Similarity
// default to the TF-IDF implementation and exist so tests can substitute
// fakes without touching process-wide state.
type Options struct {
	Postings   PostingSource
	Models     ModelSource
	Saver      ranking.MatchSaver
	TopN       int
	Clusters   int
	Vectorize  VectorizeFunc
	Similarity SimilarityFunc
	Log        zerolog.Logger
}

// Pipeline runs résumé-to-posting matching. Construct once per process and
// share freely: invocations are independent and safe to run concurrently.
type Pipeline struct {
	postings   PostingSource
	models     ModelSource
	saver      ranking.MatchSaver
	topN       int
	clusters   int
	vectorize  VectorizeFunc
	similarity SimilarityFunc
	log        zerolog.Logger
}

// Result is the outcome of one run: the ranked table plus the degradation
// flags an operator needs to interpret it.
type Result struct {
	Matches []types.RankedMatch `json:"matches"`

	// ClassifierUsed is false when no classifier artifact was available and
	// the ranking fell back to similarity alone.
	ClassifierUsed bool `json:"classifier_used"`

	// ClustererPersisted is false when the clusterer was fitted ad hoc on
	// this batch; cluster ids are then only comparable within this run.
	ClustererPersisted bool `json:"clusterer_persisted"`

	// PersistFailures lists retained rows whose persistence attempt failed.
	// The ranked rows themselves are unaffected.
	PersistFailures []ranking.PersistFailure `json:"-"`
}

// New constructs a Pipeline from its collaborators.
func New(opts Options) *Pipeline {
	p := &Pipeline{
		postings:   opts.Postings,
		models:     opts.Models,
		saver:      opts.Saver,
		topN:       opts.TopN,
		clusters:   opts.Clusters,
		vectorize:  opts.Vectorize,
		similarity: opts.Similarity,
		log:        opts.Log,
	}
	if p.topN <= 0 {
		p.topN = ranking.DefaultTopN
	}
	if p.clusters <= 0 {
		p.clusters = clusterer.DefaultClusters
	}
	if p.vectorize == nil {
		p.vectorize = similarity.Build
	}
	if p.similarity == nil {
		p.similarity = similarity.Similarities
	}
	return p
}

// Run matches one résumé against the catalog for the given user and returns
// the ranked table. A missing catalog is the only fatal condition; an empty
// catalog returns an empty table with zero persistence calls.
func (p *Pipeline) Run(ctx context.Context, resume *types.ResumeDocument, userID int64) (*Result, error) {
	postings, err := p.postings.Postings(ctx)
	if err != nil {
		return nil, err
	}
	if len(postings) == 0 {
		p.log.Info().Int64("user_id", userID).Msg("posting catalog is empty, nothing to rank")
		return &Result{Matches: []types.RankedMatch{}}, nil
	}

	descriptions := make([]string, len(postings))
	requiredSkills := make([][]string, len(postings))
	for i, rec := range postings {
		descriptions[i] = rec.Description
		requiredSkills[i] = rec.RequiredSkills
	}

	// The feature space is rebuilt from [résumé] + descriptions on every
	// run; résumé and posting vectors are always comparable.
	space, resumeVec, postingVecs := p.vectorize(resume.Text, descriptions)
	sims := p.similarity(resumeVec, postingVecs)

	probs, classifierUsed := p.matchProbabilities(space, postingVecs)
	assignments, clustererPersisted := p.clusterAssignments(space, postingVecs)
	skillPct := skills.OverlapAll(resume.Skills, requiredSkills)

	outcome, err := ranking.Rank(ctx, ranking.Inputs{
		UserID:        userID,
		Postings:      postings,
		Similarities:  sims,
		Probabilities: probs,
		Clusters:      assignments,
		SkillMatch:    skillPct,
		TopN:          p.topN,
	}, p.saver)
	if err != nil {
		return nil, err
	}

	for _, failure := range outcome.PersistFailures {
		p.log.Error().Err(failure.Err).
			Int64("user_id", userID).
			Int64("posting_id", failure.PostingID).
			Msg("match row persistence failed")
	}

	return &Result{
		Matches:            outcome.Matches,
		ClassifierUsed:     classifierUsed,
		ClustererPersisted: clustererPersisted,
		PersistFailures:    outcome.PersistFailures,
	}, nil
}

// matchProbabilities applies the persisted classifier when available and
// otherwise degrades to a zero signal for every posting.
func (p *Pipeline) matchProbabilities(space *similarity.Space, vectors []similarity.Vector) ([]float64, bool) {
	model, ok := p.models.LoadClassifier()
	if !ok {
		p.log.Info().Msg("classifier unavailable, ranking on similarity and skill match only")
		return classifier.ZeroSignal(len(vectors)), false
	}
	return model.Probabilities(space, vectors), true
}

// clusterAssignments uses the persisted clusterer when available and
// otherwise fits one on the current batch with a fixed seed.
func (p *Pipeline) clusterAssignments(space *similarity.Space, vectors []similarity.Vector) ([]int, bool) {
	model, ok := p.models.LoadClusterer()
	if !ok {
		p.log.Info().Int("clusters", p.clusters).
			Msg("clusterer unavailable, fitting on current batch; cluster ids are run-local")
		model = clusterer.Train(space, vectors, p.clusters)
	}
	return model.Assign(space, vectors), ok
}
