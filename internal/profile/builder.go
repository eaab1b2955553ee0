// Package profile builds the structured candidate representation the
// matching engine scores against.
package profile

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/careerconnect/internal/types"
)

// Extractor is the structured-extraction collaborator. A nil extractor or
// any extraction failure degrades to the stored-profile fallback.
type Extractor interface {
	Extract(ctx context.Context, resumeText string) (*types.StructuredResume, error)
}

// firstIntegerRe finds the first integer in a free-text duration field.
var firstIntegerRe = regexp.MustCompile(`\d+`)

// Builder derives a CandidateProfile from a stored user record plus
// optional resume text.
type Builder struct {
	extractor Extractor
	log       *zap.Logger
}

// NewBuilder creates a profile builder. extractor may be nil when no
// extraction collaborator is configured.
func NewBuilder(extractor Extractor, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{extractor: extractor, log: log}
}

// Build derives the candidate profile. Pure given its inputs and
// collaborator responses; extraction failures are logged and absorbed.
func (b *Builder) Build(ctx context.Context, user *types.CandidateContext, resumeText string) *types.CandidateProfile {
	structured := b.extractStructured(ctx, resumeText)
	if structured == nil {
		structured = fallbackFromContext(user)
	}

	return &types.CandidateProfile{
		Skills:          structured.Skills,
		JobTitles:       structured.JobTitles,
		ExperienceYears: structured.ExperienceYears,
		RawProfileText:  profileText(user, resumeText),
		MatchTerms:      matchTerms(structured, user),
	}
}

// extractStructured delegates to the extraction collaborator, treating any
// failure as absence.
func (b *Builder) extractStructured(ctx context.Context, resumeText string) *types.StructuredResume {
	if b.extractor == nil || strings.TrimSpace(resumeText) == "" {
		return nil
	}
	structured, err := b.extractor.Extract(ctx, resumeText)
	if err != nil {
		b.log.Warn("structured resume extraction unavailable", zap.Error(err))
		return nil
	}
	return structured
}

// fallbackFromContext synthesizes a structured result from the stored user
// record when extraction is unavailable.
func fallbackFromContext(user *types.CandidateContext) *types.StructuredResume {
	titles := make([]string, 0, len(user.Experience))
	var years float64
	for _, exp := range user.Experience {
		if exp.Role != "" {
			titles = append(titles, exp.Role)
		}
		years += durationYears(exp.Duration)
	}

	return &types.StructuredResume{
		Skills:          user.Skills,
		ExperienceYears: years,
		JobTitles:       titles,
		Summary:         user.Bio,
	}
}

// durationYears parses the first integer out of a free-text duration
// ("3 years", "2019-2022 (3 yrs)"); entries without digits contribute 0.
func durationYears(duration string) float64 {
	match := firstIntegerRe.FindString(duration)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return float64(n)
}

// profileText is the full text the engine embeds and tokenizes: the resume
// text when present, otherwise a synthesis of the stored profile fields.
// Empty only when every input field is empty.
func profileText(user *types.CandidateContext, resumeText string) string {
	if strings.TrimSpace(resumeText) != "" {
		return resumeText
	}

	var parts []string
	if user.Bio != "" {
		parts = append(parts, user.Bio)
	}
	for _, skill := range user.Skills {
		if skill != "" {
			parts = append(parts, skill)
		}
	}
	for _, exp := range user.Experience {
		if exp.Role != "" || exp.Company != "" {
			parts = append(parts, fmt.Sprintf("%s at %s", exp.Role, exp.Company))
		}
	}
	for _, edu := range user.Education {
		if edu.Degree != "" || edu.Institution != "" {
			parts = append(parts, fmt.Sprintf("%s from %s", edu.Degree, edu.Institution))
		}
	}
	return strings.Join(parts, " ")
}

// matchTerms unions structured skills, explicit profile skills, and
// structured job titles in discovery order, deduplicated case-insensitively.
func matchTerms(structured *types.StructuredResume, user *types.CandidateContext) []string {
	seen := make(map[string]bool)
	var terms []string
	add := func(term string) {
		key := strings.ToLower(strings.TrimSpace(term))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		terms = append(terms, term)
	}

	for _, s := range structured.Skills {
		add(s)
	}
	for _, s := range user.Skills {
		add(s)
	}
	for _, t := range structured.JobTitles {
		add(t)
	}
	return terms
}
