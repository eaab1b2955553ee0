// Package types provides type definitions for structured data used throughout the careerconnect system.
package types

import (
	"strings"

	"github.com/google/uuid"
)

// Role constants for platform accounts.
const (
	RoleJobSeeker = "Job Seeker"
	RoleEmployer  = "Employer"
)

// EducationEntry is one education record from a stored user profile.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year,omitempty"`
}

// ExperienceEntry is one employment record from a stored user profile.
// Duration is free text (e.g. "3 years", "2019-2022"); only the first
// integer in it is meaningful to the engine.
type ExperienceEntry struct {
	Company  string `json:"company"`
	Role     string `json:"role"`
	Duration string `json:"duration,omitempty"`
}

// CandidateContext is the stored profile record for a job seeker, as
// persisted outside the engine. The engine treats it as read-only input.
type CandidateContext struct {
	UserID     uuid.UUID
	Name       string
	Role       string
	Bio        string
	Location   string
	Skills     []string
	Education  []EducationEntry
	Experience []ExperienceEntry
	ResumeRef  string // URL of the stored resume, empty when none uploaded
}

// StructuredResume is the output of the structured-extraction collaborator
// (or the profile-derived fallback when extraction is unavailable).
type StructuredResume struct {
	Skills          []string `json:"skills"`
	ExperienceYears float64  `json:"experienceYears"`
	Education       []string `json:"education"`
	JobTitles       []string `json:"jobTitles"`
	Summary         string   `json:"summary"`
}

// CandidateProfile is the structured representation of a job seeker the
// engine scores against. It is derived once per request and read-only for
// the request's duration.
//
// RawProfileText is never empty if either resume text or any profile field
// was non-empty; when it is empty all text-based signals default to 0.
type CandidateProfile struct {
	Skills          []string // case-preserved, compared case-insensitively
	JobTitles       []string
	ExperienceYears float64
	RawProfileText  string

	// MatchTerms is the deduplicated union of structured skills, explicit
	// profile skills, and structured job titles, in discovery order. Used
	// only for transparency output, never for scoring.
	MatchTerms []string
}

// PastApplication is one historical application record for a candidate.
type PastApplication struct {
	JobTitle    string
	CompanyName string
	Category    string
}

// PastBehaviorIndex holds lower-cased lookup sets derived once per request
// from a candidate's historical applications.
type PastBehaviorIndex struct {
	Titles     map[string]bool
	Companies  map[string]bool
	Categories map[string]bool
}

// HasTitle reports whether the candidate previously applied to a job with
// this exact title (case-insensitive).
func (p *PastBehaviorIndex) HasTitle(title string) bool {
	return p != nil && p.Titles[strings.ToLower(title)]
}

// HasCompany reports whether the candidate previously applied at this company.
func (p *PastBehaviorIndex) HasCompany(company string) bool {
	return p != nil && p.Companies[strings.ToLower(company)]
}

// HasCategory reports whether the candidate previously applied in this category.
func (p *PastBehaviorIndex) HasCategory(category string) bool {
	return p != nil && p.Categories[strings.ToLower(category)]
}
