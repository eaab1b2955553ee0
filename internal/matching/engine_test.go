package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/careerconnect/internal/profile"
	"github.com/jonathan/careerconnect/internal/types"
)

type fakeUsers struct {
	user *types.CandidateContext
	apps []types.PastApplication
	err  error
}

func (f *fakeUsers) Candidate(ctx context.Context, userID uuid.UUID) (*types.CandidateContext, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUsers) PastApplications(ctx context.Context, userID uuid.UUID) ([]types.PastApplication, error) {
	return f.apps, nil
}

type fakePool struct {
	jobs []types.JobRecord
	err  error
}

func (f *fakePool) Aggregate(ctx context.Context, prof *types.CandidateProfile, user *types.CandidateContext, past []types.PastApplication) ([]types.JobRecord, error) {
	return f.jobs, f.err
}

type fakeResumes struct {
	text string
	err  error
	ref  string
}

func (f *fakeResumes) ResumeText(ctx context.Context, ref string) (string, error) {
	f.ref = ref
	return f.text, f.err
}

func newTestEngine(users UserSource, pool PoolSource, resumes ResumeTextSource, embedder Embedder) *Engine {
	builder := profile.NewBuilder(nil, zap.NewNop())
	return NewEngine(users, pool, resumes, builder, embedder, zap.NewNop(), nil)
}

// The degraded-mode scenario: embeddings unavailable, a candidate with
// React/Node.js and 5 years at Acme Corp, scored against two postings.
func TestRecommendDegradedScoring(t *testing.T) {
	users := &fakeUsers{
		user: &types.CandidateContext{
			UserID: uuid.New(),
			Role:   types.RoleJobSeeker,
			Skills: []string{"React", "Node.js"},
			Experience: []types.ExperienceEntry{
				{Company: "Acme Corp", Role: "Frontend Developer", Duration: "5 years"},
			},
		},
		apps: []types.PastApplication{
			{JobTitle: "Frontend Developer", CompanyName: "Acme Corp", Category: "Engineering"},
		},
	}
	jobA := types.InternalJob{
		PostingID:   uuid.New(),
		RoleTitle:   "Frontend Developer",
		CompanyName: "Acme Corp",
		JobCategory: "Frontend",
		Body:        "Build rich UIs, 3+ years React experience",
		City:        "Pune",
		Country:     "India",
	}
	jobB := types.InternalJob{
		PostingID:   uuid.New(),
		RoleTitle:   "Backend Developer",
		CompanyName: "Globex",
		JobCategory: "Backend",
		Body:        "Design APIs, Node.js skills a plus",
	}
	pool := &fakePool{jobs: []types.JobRecord{jobA, jobB}}

	engine := newTestEngine(users, pool, nil, nil)
	results, err := engine.Recommend(context.Background(), users.user.UserID)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// JobA: skill 0.5, experience 1, title 1, boost capped at 0.05 -> 70.
	assert.Equal(t, jobA.JobID(), results[0].JobID)
	assert.Equal(t, 70, results[0].Score)
	assert.Equal(t, "Pune, India", results[0].Location)
	assert.False(t, results[0].IsExternal)

	// JobB: skill 0.5, experience 0.5, title 0.5, no boost -> 48.
	assert.Equal(t, jobB.JobID(), results[1].JobID)
	assert.Equal(t, 48, results[1].Score)

	// Matched terms are substrings of each job's text.
	assert.Equal(t, []string{"React", "Frontend Developer"}, results[0].MatchedSkills)
	assert.Equal(t, []string{"Node.js"}, results[1].MatchedSkills)
}

func TestRecommendSemanticMode(t *testing.T) {
	users := &fakeUsers{
		user: &types.CandidateContext{
			UserID: uuid.New(),
			Role:   types.RoleJobSeeker,
			Bio:    "frontend developer",
			Skills: []string{"React"},
		},
	}
	job := types.InternalJob{
		PostingID:   uuid.New(),
		RoleTitle:   "Frontend Developer",
		CompanyName: "Acme",
		Body:        "React work",
	}
	pool := &fakePool{jobs: []types.JobRecord{job}}
	embedder := &fakeEmbedder{}

	engine := newTestEngine(users, pool, nil, embedder)
	results, err := engine.Recommend(context.Background(), users.user.UserID)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Profile embedding plus one call per job.
	assert.Equal(t, 2, embedder.calls)
	// Identical fake vectors: semantic=1, skill=1, experience=0.5, title=1.
	// 0.4 + 0.3 + 0.075 + 0.1 lands just under 0.875 in float64, so the
	// rounded score is 87.
	assert.Equal(t, 87, results[0].Score)
}

func TestRecommendEmptyPool(t *testing.T) {
	users := &fakeUsers{user: &types.CandidateContext{UserID: uuid.New(), Role: types.RoleJobSeeker, Skills: []string{"Go"}}}
	engine := newTestEngine(users, &fakePool{}, nil, nil)

	prof, results, err := engine.RecommendWithProfile(context.Background(), users.user.UserID)
	require.NoError(t, err)
	assert.Empty(t, results)

	// The derived profile is still returned for an empty pool.
	require.NotNil(t, prof)
	assert.Contains(t, prof.Skills, "Go")
}

func TestRecommendResumeFetchFailureDegrades(t *testing.T) {
	users := &fakeUsers{
		user: &types.CandidateContext{
			UserID:    uuid.New(),
			Role:      types.RoleJobSeeker,
			Skills:    []string{"Go"},
			ResumeRef: "https://cdn.example.com/resume.txt",
		},
	}
	job := types.InternalJob{PostingID: uuid.New(), RoleTitle: "Go Developer", CompanyName: "Initech", Body: "Go services"}
	resumes := &fakeResumes{err: errors.New("404")}

	engine := newTestEngine(users, &fakePool{jobs: []types.JobRecord{job}}, resumes, nil)
	results, err := engine.Recommend(context.Background(), users.user.UserID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, users.user.ResumeRef, resumes.ref)
	assert.Positive(t, results[0].Score)
}

func TestRecommendStoreFailureAborts(t *testing.T) {
	users := &fakeUsers{err: errors.New("connection refused")}
	engine := newTestEngine(users, &fakePool{}, nil, nil)

	_, err := engine.Recommend(context.Background(), uuid.New())
	require.Error(t, err)
}

func TestRecommendPoolFailureAborts(t *testing.T) {
	users := &fakeUsers{user: &types.CandidateContext{UserID: uuid.New(), Role: types.RoleJobSeeker}}
	engine := newTestEngine(users, &fakePool{err: errors.New("catalog down")}, nil, nil)

	_, err := engine.Recommend(context.Background(), users.user.UserID)
	require.Error(t, err)
}
