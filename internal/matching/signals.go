// Package matching scores candidates against the job pool and ranks the
// results.
package matching

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/careerconnect/internal/embedding"
	"github.com/jonathan/careerconnect/internal/parsing"
	"github.com/jonathan/careerconnect/internal/types"
)

// Embedder produces a vector for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// neutralExperience is the experience signal when a posting states no
// requirement.
const neutralExperience = 0.5

// Boost increments for past-application affinity, applied before the cap
// in the combiner.
const (
	boostPastTitle    = 0.15
	boostPastCompany  = 0.12
	boostPastCategory = 0.08
)

// experienceRe finds a stated years-of-experience requirement in a posting
// body ("3+ years", "5 Years").
var experienceRe = regexp.MustCompile(`(?i)(\d+)\+?\s*years?`)

// Signals holds the five independent match signals for one job, each in
// [0,1] except Boost which is capped later.
type Signals struct {
	Semantic   float64
	Skill      float64
	Experience float64
	Title      float64
	Boost      float64

	// MatchedTerms are the profile terms found verbatim in the job text,
	// surfaced for transparency alongside the score.
	MatchedTerms []string
}

// SignalComputer computes per-job signals for one candidate. Signal
// computation never fails: every degraded input collapses to a neutral or
// zero signal with a log line.
type SignalComputer struct {
	embedder Embedder
	log      *zap.Logger
}

// NewSignalComputer creates a signal computer. embedder may be nil, which
// disables the semantic signal entirely.
func NewSignalComputer(embedder Embedder, log *zap.Logger) *SignalComputer {
	if log == nil {
		log = zap.NewNop()
	}
	return &SignalComputer{embedder: embedder, log: log}
}

// Compute derives every signal for one job. profileVec is the candidate's
// profile embedding, nil when embedding is unavailable; profileTokens is
// the token set of the candidate's profile text.
func (c *SignalComputer) Compute(ctx context.Context, prof *types.CandidateProfile, profileVec []float32, profileTokens map[string]bool, past *types.PastBehaviorIndex, job types.JobRecord) Signals {
	jobText := types.JobText(job)

	return Signals{
		Semantic:     c.semantic(ctx, profileVec, job, jobText),
		Skill:        skillSignal(prof.Skills, profileTokens, jobText),
		Experience:   experienceSignal(job.Description(), prof.ExperienceYears),
		Title:        titleSignal(job.JobTitle(), profileTokens),
		Boost:        boostSignal(past, job),
		MatchedTerms: matchedTerms(prof.MatchTerms, jobText),
	}
}

// semantic embeds the job text and takes cosine similarity against the
// profile vector. Any failure yields 0, which also flips the combiner into
// its keyword-centric policy.
func (c *SignalComputer) semantic(ctx context.Context, profileVec []float32, job types.JobRecord, jobText string) float64 {
	if c.embedder == nil || len(profileVec) == 0 {
		return 0
	}

	jobVec, err := c.embedder.Embed(ctx, jobText)
	if err != nil {
		c.log.Warn("job embedding unavailable, semantic signal zeroed",
			zap.String("jobId", job.JobID()), zap.Error(err))
		return 0
	}

	sim, err := embedding.Cosine(profileVec, jobVec)
	if err != nil {
		c.log.Warn("embedding dimensions mismatch, semantic signal zeroed",
			zap.String("jobId", job.JobID()), zap.Error(err))
		return 0
	}
	return sim
}

// skillSignal is the fraction of the candidate's skills that appear as
// substrings of the job text. With no skills on file it degrades to token
// overlap: matched job tokens over total distinct job tokens.
func skillSignal(skills []string, profileTokens map[string]bool, jobText string) float64 {
	if len(skills) > 0 {
		jobLower := strings.ToLower(jobText)
		matched := 0
		for _, skill := range skills {
			if skill != "" && strings.Contains(jobLower, strings.ToLower(skill)) {
				matched++
			}
		}
		return float64(matched) / float64(len(skills))
	}

	jobTokens := distinctTokens(jobText)
	if len(jobTokens) == 0 {
		return 0
	}
	matched := 0
	for _, t := range jobTokens {
		if profileTokens[t] {
			matched++
		}
	}
	return float64(matched) / float64(len(jobTokens))
}

// experienceSignal compares the candidate's total years against the first
// requirement the posting body states. No stated requirement is neutral.
func experienceSignal(description string, candidateYears float64) float64 {
	match := experienceRe.FindStringSubmatch(description)
	if match == nil {
		return neutralExperience
	}
	required, err := strconv.Atoi(match[1])
	if err != nil || required <= 0 {
		return neutralExperience
	}
	if candidateYears >= float64(required) {
		return 1
	}
	return candidateYears / float64(required)
}

// titleSignal is the fraction of the job title's tokens present in the
// candidate's profile text.
func titleSignal(title string, profileTokens map[string]bool) float64 {
	titleTokens := parsing.Tokenize(title)
	if len(titleTokens) == 0 {
		return 0
	}
	matched := 0
	for _, t := range titleTokens {
		if profileTokens[t] {
			matched++
		}
	}
	return float64(matched) / float64(len(titleTokens))
}

// boostSignal sums the past-application affinity increments. Exact
// case-insensitive equality only; near-duplicate titles do not boost.
func boostSignal(past *types.PastBehaviorIndex, job types.JobRecord) float64 {
	var boost float64
	if past.HasTitle(job.JobTitle()) {
		boost += boostPastTitle
	}
	if past.HasCompany(job.Company()) {
		boost += boostPastCompany
	}
	if past.HasCategory(job.Category()) {
		boost += boostPastCategory
	}
	return boost
}

// matchedTerms filters the candidate's match terms down to those appearing
// verbatim (case-insensitive) in the job text.
func matchedTerms(terms []string, jobText string) []string {
	jobLower := strings.ToLower(jobText)
	var matched []string
	for _, term := range terms {
		if term != "" && strings.Contains(jobLower, strings.ToLower(term)) {
			matched = append(matched, term)
		}
	}
	return matched
}

// distinctTokens tokenizes text preserving first-occurrence order.
func distinctTokens(text string) []string {
	tokens := parsing.Tokenize(text)
	seen := make(map[string]bool, len(tokens))
	distinct := tokens[:0]
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			distinct = append(distinct, t)
		}
	}
	return distinct
}
