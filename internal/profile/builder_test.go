package profile

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/careerconnect/internal/types"
)

type fakeExtractor struct {
	result *types.StructuredResume
	err    error
	called bool
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) (*types.StructuredResume, error) {
	f.called = true
	return f.result, f.err
}

func seedUser() *types.CandidateContext {
	return &types.CandidateContext{
		Name:     "Jane Doe",
		Role:     types.RoleJobSeeker,
		Bio:      "Full-stack developer",
		Location: "Bangalore",
		Skills:   []string{"React", "Node.js"},
		Experience: []types.ExperienceEntry{
			{Company: "Acme Corp", Role: "Frontend Developer", Duration: "3 years"},
			{Company: "Globex", Role: "Web Developer", Duration: "2 yrs"},
		},
		Education: []types.EducationEntry{
			{Institution: "IIT Delhi", Degree: "BTech"},
		},
	}
}

func TestBuild_UsesExtractionWhenAvailable(t *testing.T) {
	extractor := &fakeExtractor{result: &types.StructuredResume{
		Skills:          []string{"Go", "Kubernetes"},
		ExperienceYears: 7,
		JobTitles:       []string{"Platform Engineer"},
	}}
	builder := NewBuilder(extractor, zap.NewNop())

	prof := builder.Build(context.Background(), seedUser(), "resume body text")

	assert.Equal(t, []string{"Go", "Kubernetes"}, prof.Skills)
	assert.Equal(t, 7.0, prof.ExperienceYears)
	assert.Equal(t, "resume body text", prof.RawProfileText)
}

func TestBuild_ExtractionFailureFallsBack(t *testing.T) {
	extractor := &fakeExtractor{err: fmt.Errorf("provider down")}
	builder := NewBuilder(extractor, zap.NewNop())

	prof := builder.Build(context.Background(), seedUser(), "resume body text")

	// Fallback keeps stored skills and sums the first integer of each duration.
	assert.Equal(t, []string{"React", "Node.js"}, prof.Skills)
	assert.Equal(t, 5.0, prof.ExperienceYears)
	assert.Equal(t, []string{"Frontend Developer", "Web Developer"}, prof.JobTitles)
	// Resume text still wins for the raw profile text.
	assert.Equal(t, "resume body text", prof.RawProfileText)
}

func TestBuild_NoResumeSkipsExtractor(t *testing.T) {
	extractor := &fakeExtractor{result: &types.StructuredResume{Skills: []string{"Go"}}}
	builder := NewBuilder(extractor, zap.NewNop())

	prof := builder.Build(context.Background(), seedUser(), "")

	assert.False(t, extractor.called)
	assert.Equal(t, []string{"React", "Node.js"}, prof.Skills)
}

func TestBuild_SynthesizedProfileText(t *testing.T) {
	builder := NewBuilder(nil, zap.NewNop())

	prof := builder.Build(context.Background(), seedUser(), "")

	assert.Equal(t,
		"Full-stack developer React Node.js Frontend Developer at Acme Corp Web Developer at Globex BTech from IIT Delhi",
		prof.RawProfileText)
}

func TestBuild_EmptyEverything(t *testing.T) {
	builder := NewBuilder(nil, zap.NewNop())

	prof := builder.Build(context.Background(), &types.CandidateContext{Role: types.RoleJobSeeker}, "")

	assert.Empty(t, prof.RawProfileText)
	assert.Empty(t, prof.Skills)
	assert.Zero(t, prof.ExperienceYears)
}

func TestBuild_MatchTermsUnion(t *testing.T) {
	extractor := &fakeExtractor{result: &types.StructuredResume{
		Skills:    []string{"React", "TypeScript"},
		JobTitles: []string{"Frontend Developer"},
	}}
	builder := NewBuilder(extractor, zap.NewNop())

	prof := builder.Build(context.Background(), seedUser(), "resume text")

	// Structured skills, then explicit profile skills, then structured titles,
	// deduplicated case-insensitively in discovery order.
	assert.Equal(t,
		[]string{"React", "TypeScript", "Node.js", "Frontend Developer"},
		prof.MatchTerms)
}

func TestDurationYears(t *testing.T) {
	tests := []struct {
		duration string
		want     float64
	}{
		{"3 years", 3},
		{"about 10 yrs", 10},
		{"2019-2022", 2019}, // first integer wins, matching the stored-profile heuristic
		{"", 0},
		{"ongoing", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, durationYears(tt.duration), "duration %q", tt.duration)
	}
}

func TestBuildPastBehavior(t *testing.T) {
	idx := BuildPastBehavior([]types.PastApplication{
		{JobTitle: "Frontend Developer", CompanyName: "Acme Corp", Category: "Engineering"},
		{JobTitle: "", CompanyName: "  ", Category: "engineering"},
	})

	require.NotNil(t, idx)
	assert.True(t, idx.HasTitle("frontend developer"))
	assert.True(t, idx.HasCompany("ACME Corp"))
	assert.Len(t, idx.Categories, 1)
	assert.Len(t, idx.Titles, 1)
	assert.Len(t, idx.Companies, 1)
}
