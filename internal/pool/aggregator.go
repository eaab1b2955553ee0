// Package pool assembles the unified job pool a candidate is scored
// against: the curated internal catalog plus externally harvested listings.
package pool

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/careerconnect/internal/harvest"
	"github.com/jonathan/careerconnect/internal/types"
)

// DefaultKeyword is harvested when nothing in the profile yields a search
// term.
const DefaultKeyword = "Software Engineer"

// DefaultLocation is used when the candidate has no stored location.
const DefaultLocation = "India"

// maxSearchKeywords bounds how many derived keywords are actually
// harvested per request.
const maxSearchKeywords = 2

// maxSkillKeywords bounds how many skills from each skill list feed the
// keyword set.
const maxSkillKeywords = 3

// CatalogSource supplies active postings from the internal catalog.
type CatalogSource interface {
	ActiveJobs(ctx context.Context) ([]types.JobRecord, error)
}

// Aggregator builds the job pool for one recommendation request.
type Aggregator struct {
	catalog         CatalogSource
	harvesters      []harvest.Harvester
	defaultLocation string
	log             *zap.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithDefaultLocation overrides the fallback search location used when
// the candidate has no stored one. An empty value keeps the default.
func WithDefaultLocation(location string) Option {
	return func(a *Aggregator) {
		if location != "" {
			a.defaultLocation = location
		}
	}
}

// NewAggregator creates an aggregator. harvesters may be empty, in which
// case the pool is the internal catalog alone.
func NewAggregator(catalog CatalogSource, harvesters []harvest.Harvester, log *zap.Logger, opts ...Option) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Aggregator{
		catalog:         catalog,
		harvesters:      harvesters,
		defaultLocation: DefaultLocation,
		log:             log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate returns the job pool in deterministic order: every internal
// posting first, then harvested listings in keyword order. A catalog
// failure aborts the request; harvester failures only shrink the external
// portion.
func (a *Aggregator) Aggregate(ctx context.Context, profile *types.CandidateProfile, user *types.CandidateContext, past []types.PastApplication) ([]types.JobRecord, error) {
	internal, err := a.catalog.ActiveJobs(ctx)
	if err != nil {
		return nil, err
	}

	keywords := DeriveKeywords(profile, user.Skills, past)
	if len(keywords) > maxSearchKeywords {
		keywords = keywords[:maxSearchKeywords]
	}

	location := user.Location
	if location == "" {
		location = a.defaultLocation
	}

	pool := internal
	for _, keyword := range keywords {
		for _, h := range a.harvesters {
			if ctx.Err() != nil {
				return pool, ctx.Err()
			}
			listings, err := h.Search(ctx, keyword, location)
			if err != nil {
				a.log.Warn("external harvest failed, continuing without it",
					zap.String("provider", h.Name()),
					zap.String("keyword", keyword),
					zap.Error(err))
				continue
			}
			pool = append(pool, listings...)
		}
	}
	return pool, nil
}

// DeriveKeywords builds the search keyword list in priority order:
// structured job titles, then up to three structured skills, then past
// application titles, then up to three explicit profile skills. Entries
// deduplicate case-insensitively, keeping first occurrence. When nothing
// yields a keyword the generic default is returned.
func DeriveKeywords(profile *types.CandidateProfile, explicitSkills []string, past []types.PastApplication) []string {
	seen := make(map[string]bool)
	var keywords []string
	add := func(term string) {
		key := strings.ToLower(strings.TrimSpace(term))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		keywords = append(keywords, strings.TrimSpace(term))
	}

	if profile != nil {
		for _, t := range profile.JobTitles {
			add(t)
		}
		for i, s := range profile.Skills {
			if i >= maxSkillKeywords {
				break
			}
			add(s)
		}
	}
	for _, app := range past {
		add(app.JobTitle)
	}
	for i, s := range explicitSkills {
		if i >= maxSkillKeywords {
			break
		}
		add(s)
	}

	if len(keywords) == 0 {
		keywords = append(keywords, DefaultKeyword)
	}
	return keywords
}
