package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRanksCloserDescriptionsHigher(t *testing.T) {
	resume := "python machine learning data analysis projects with pandas"
	descriptions := []string{
		"python developer internship building backend services",
		"marketing outreach coordinating social media campaigns",
		"machine learning internship using python for data analysis",
	}

	_, resumeVec, postingVecs := Build(resume, descriptions)
	require.Len(t, postingVecs, 3)

	sims := Similarities(resumeVec, postingVecs)
	require.Len(t, sims, 3)

	for i, s := range sims {
		assert.GreaterOrEqual(t, s, 0.0, "similarity %d below range", i)
		assert.LessOrEqual(t, s, 1.0, "similarity %d above range", i)
	}

	// The description sharing several resume terms outranks the one sharing a
	// single term, which outranks the unrelated one.
	assert.Greater(t, sims[2], sims[0])
	assert.Greater(t, sims[0], sims[1])
	assert.Equal(t, 0.0, sims[1])
}

func TestBuildIsDeterministic(t *testing.T) {
	resume := "software engineering with go and distributed systems"
	descriptions := []string{
		"backend engineering internship in go",
		"frontend internship with react and javascript",
	}

	space1, resumeVec1, postingVecs1 := Build(resume, descriptions)
	space2, resumeVec2, postingVecs2 := Build(resume, descriptions)

	require.Equal(t, space1.Terms(), space2.Terms())
	require.Equal(t, resumeVec1, resumeVec2)
	require.Equal(t, postingVecs1, postingVecs2)
}

func TestBuildDropsStopWords(t *testing.T) {
	space, _, _ := Build("the quick brown fox and the lazy dog", []string{"with or without you"})

	for _, term := range space.Terms() {
		assert.False(t, IsStopWord(term), "stop word %q leaked into vocabulary", term)
	}
	assert.Contains(t, space.Terms(), "quick")
	assert.NotContains(t, space.Terms(), "the")
	assert.NotContains(t, space.Terms(), "with")
}

func TestBuildIgnoresSingleCharacterTokens(t *testing.T) {
	space, _, _ := Build("a b c golang", []string{"x y golang"})

	assert.Equal(t, []string{"golang"}, space.Terms())
}

func TestSimilaritiesZeroVectorScoresZero(t *testing.T) {
	// A description made entirely of stop words vectorizes to zero; its
	// similarity must be 0, never NaN.
	_, resumeVec, postingVecs := Build("python data analysis", []string{"and the with or"})
	require.Len(t, postingVecs, 1)

	sims := Similarities(resumeVec, postingVecs)
	assert.Equal(t, 0.0, sims[0])
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector
		want float64
	}{
		{name: "identical", a: Vector{1, 0}, b: Vector{1, 0}, want: 1.0},
		{name: "orthogonal", a: Vector{1, 0}, b: Vector{0, 1}, want: 0.0},
		{name: "zero vector", a: Vector{0, 0}, b: Vector{1, 1}, want: 0.0},
		{name: "length mismatch", a: Vector{1}, b: Vector{1, 1}, want: 0.0},
		{name: "empty", a: Vector{}, b: Vector{}, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-12)
		})
	}
}

func TestIndexReportsOutOfVocabulary(t *testing.T) {
	space, _, _ := Build("golang concurrency", []string{"golang channels"})

	_, ok := space.Index("golang")
	assert.True(t, ok)
	_, ok = space.Index("cobol")
	assert.False(t, ok)
	assert.Equal(t, len(space.Terms()), space.Dim())
}
