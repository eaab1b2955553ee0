package matching

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/careerconnect/internal/parsing"
	"github.com/jonathan/careerconnect/internal/profile"
	"github.com/jonathan/careerconnect/internal/types"
)

// DefaultConcurrency caps concurrent per-job embedding calls.
const DefaultConcurrency = 10

// DefaultEmbedTimeout bounds a single embedding call.
const DefaultEmbedTimeout = 10 * time.Second

// DefaultExtractTimeout bounds resume retrieval plus structured
// extraction.
const DefaultExtractTimeout = 20 * time.Second

// UserSource supplies the stored candidate record and application history.
type UserSource interface {
	Candidate(ctx context.Context, userID uuid.UUID) (*types.CandidateContext, error)
	PastApplications(ctx context.Context, userID uuid.UUID) ([]types.PastApplication, error)
}

// PoolSource assembles the job pool for a candidate.
type PoolSource interface {
	Aggregate(ctx context.Context, prof *types.CandidateProfile, user *types.CandidateContext, past []types.PastApplication) ([]types.JobRecord, error)
}

// ResumeTextSource resolves a stored resume reference to plain text.
type ResumeTextSource interface {
	ResumeText(ctx context.Context, ref string) (string, error)
}

// ProfileBuilder derives the candidate profile from the stored record and
// resume text.
type ProfileBuilder interface {
	Build(ctx context.Context, user *types.CandidateContext, resumeText string) *types.CandidateProfile
}

// Options tunes engine concurrency and external-call timeouts.
type Options struct {
	Concurrency    int
	EmbedTimeout   time.Duration
	ExtractTimeout time.Duration
}

func (o *Options) withDefaults() Options {
	opts := Options{
		Concurrency:    DefaultConcurrency,
		EmbedTimeout:   DefaultEmbedTimeout,
		ExtractTimeout: DefaultExtractTimeout,
	}
	if o == nil {
		return opts
	}
	if o.Concurrency > 0 {
		opts.Concurrency = o.Concurrency
	}
	if o.EmbedTimeout > 0 {
		opts.EmbedTimeout = o.EmbedTimeout
	}
	if o.ExtractTimeout > 0 {
		opts.ExtractTimeout = o.ExtractTimeout
	}
	return opts
}

// Engine produces ranked recommendations for one candidate per call. It
// holds no per-request state; every collaborator failure degrades a
// signal instead of aborting the ranking.
type Engine struct {
	users    UserSource
	pool     PoolSource
	resumes  ResumeTextSource
	builder  ProfileBuilder
	embedder Embedder
	computer *SignalComputer
	log      *zap.Logger
	opts     Options
}

// NewEngine wires the recommendation engine. resumes and embedder may be
// nil; the corresponding inputs degrade to absence.
func NewEngine(users UserSource, pool PoolSource, resumes ResumeTextSource, builder ProfileBuilder, embedder Embedder, log *zap.Logger, opts *Options) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		users:    users,
		pool:     pool,
		resumes:  resumes,
		builder:  builder,
		embedder: embedder,
		computer: NewSignalComputer(embedder, log),
		log:      log,
		opts:     opts.withDefaults(),
	}
}

// Recommend runs the full pipeline for one candidate: profile derivation,
// pool aggregation, concurrent signal computation, scoring, and ranking.
// Store failures abort the request; collaborator failures only degrade
// signals.
func (e *Engine) Recommend(ctx context.Context, userID uuid.UUID) ([]types.MatchResult, error) {
	_, results, err := e.RecommendWithProfile(ctx, userID)
	return results, err
}

// RecommendWithProfile is Recommend plus the derived candidate profile,
// for callers that surface the profile alongside the ranking.
func (e *Engine) RecommendWithProfile(ctx context.Context, userID uuid.UUID) (*types.CandidateProfile, []types.MatchResult, error) {
	user, err := e.users.Candidate(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	apps, err := e.users.PastApplications(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	resumeText := e.resumeText(ctx, user)

	buildCtx, cancel := context.WithTimeout(ctx, e.opts.ExtractTimeout)
	prof := e.builder.Build(buildCtx, user, resumeText)
	cancel()

	past := profile.BuildPastBehavior(apps)

	jobs, err := e.pool.Aggregate(ctx, prof, user, apps)
	if err != nil {
		return nil, nil, err
	}
	if len(jobs) == 0 {
		return prof, []types.MatchResult{}, nil
	}

	profileVec := e.profileEmbedding(ctx, prof)
	profileTokens := parsing.TokenSet(prof.RawProfileText)

	results := make([]types.MatchResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			jobCtx, cancel := context.WithTimeout(gctx, e.opts.EmbedTimeout)
			defer cancel()

			signals := e.computer.Compute(jobCtx, prof, profileVec, profileTokens, past, job)
			results[i] = types.MatchResult{
				JobID:         job.JobID(),
				Title:         job.JobTitle(),
				CompanyName:   job.Company(),
				Location:      job.Location(),
				Category:      job.Category(),
				Score:         Combine(signals),
				MatchedSkills: signals.MatchedTerms,
				IsExternal:    job.IsExternal(),
				Link:          job.Link(),
				Source:        job.Source(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return prof, Rank(results), nil
}

// resumeText resolves the candidate's resume reference. Absence or any
// retrieval failure yields empty text and leaves profile derivation to
// the stored record.
func (e *Engine) resumeText(ctx context.Context, user *types.CandidateContext) string {
	if e.resumes == nil || user.ResumeRef == "" {
		return ""
	}
	fetchCtx, cancel := context.WithTimeout(ctx, e.opts.ExtractTimeout)
	defer cancel()

	text, err := e.resumes.ResumeText(fetchCtx, user.ResumeRef)
	if err != nil {
		e.log.Warn("resume text retrieval failed, using stored profile",
			zap.String("userId", user.UserID.String()), zap.Error(err))
		return ""
	}
	return text
}

// profileEmbedding embeds the profile text once per request. Failure or a
// blank profile leaves the semantic signal disabled for every job.
func (e *Engine) profileEmbedding(ctx context.Context, prof *types.CandidateProfile) []float32 {
	if e.embedder == nil || strings.TrimSpace(prof.RawProfileText) == "" {
		return nil
	}
	embedCtx, cancel := context.WithTimeout(ctx, e.opts.EmbedTimeout)
	defer cancel()

	vec, err := e.embedder.Embed(embedCtx, prof.RawProfileText)
	if err != nil {
		e.log.Warn("profile embedding unavailable, semantic signal disabled", zap.Error(err))
		return nil
	}
	return vec
}
