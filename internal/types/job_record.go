package types

import (
	"strings"

	"github.com/google/uuid"
)

// JobRecord is the shared surface over the two job posting variants:
// curated internal catalog postings and externally harvested listings.
// Modeling the variants as distinct types keeps the optional fields of
// each source explicit instead of collapsing both shapes into one record.
type JobRecord interface {
	JobID() string
	JobTitle() string
	Company() string
	Category() string
	// Description returns the posting body, or "" when the source does not
	// provide one (common for harvested listings).
	Description() string
	Location() string
	TechStack() []string
	IsExternal() bool
	// Source names the provider: "Internal" for catalog postings, the
	// harvester name (e.g. "LinkedIn") otherwise.
	Source() string
	// Link is the outbound URL for external listings, "" for internal ones.
	Link() string
}

// InternalJob is a posting from the curated internal catalog.
type InternalJob struct {
	PostingID   uuid.UUID
	RoleTitle   string
	CompanyName string
	JobCategory string
	Body        string
	City        string
	Country     string
	Stack       []string
}

func (j InternalJob) JobID() string       { return j.PostingID.String() }
func (j InternalJob) JobTitle() string    { return j.RoleTitle }
func (j InternalJob) Company() string     { return j.CompanyName }
func (j InternalJob) Category() string    { return j.JobCategory }
func (j InternalJob) Description() string { return j.Body }
func (j InternalJob) TechStack() []string { return j.Stack }
func (j InternalJob) IsExternal() bool    { return false }
func (j InternalJob) Source() string      { return "Internal" }
func (j InternalJob) Link() string        { return "" }

// Location joins city and country the way the catalog displays them.
func (j InternalJob) Location() string {
	switch {
	case j.City == "":
		return j.Country
	case j.Country == "":
		return j.City
	default:
		return j.City + ", " + j.Country
	}
}

// ExternalJob is a listing surfaced by an external harvester. It carries
// the keyword that surfaced it as its category and has no guaranteed
// description or tech stack.
type ExternalJob struct {
	ListingID   string
	RoleTitle   string
	CompanyName string
	Keyword     string
	Summary     string
	Where       string
	ListingURL  string
	Provider    string
	PostedAt    string
}

func (j ExternalJob) JobID() string       { return j.ListingID }
func (j ExternalJob) JobTitle() string    { return j.RoleTitle }
func (j ExternalJob) Company() string     { return j.CompanyName }
func (j ExternalJob) Category() string    { return j.Keyword }
func (j ExternalJob) Description() string { return j.Summary }
func (j ExternalJob) Location() string    { return j.Where }
func (j ExternalJob) TechStack() []string { return nil }
func (j ExternalJob) IsExternal() bool    { return true }
func (j ExternalJob) Source() string      { return j.Provider }
func (j ExternalJob) Link() string        { return j.ListingURL }

// JobText builds the scoring text for a job: title, description (falling
// back to the title when absent), company, and category, space-joined.
func JobText(j JobRecord) string {
	desc := j.Description()
	if desc == "" {
		desc = j.JobTitle()
	}
	parts := make([]string, 0, 4)
	for _, p := range []string{j.JobTitle(), desc, j.Company(), j.Category()} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// MatchResult is one scored recommendation. Results are created fresh per
// request, never persisted, and immutable once produced.
type MatchResult struct {
	JobID         string   `json:"jobId"`
	Title         string   `json:"title"`
	CompanyName   string   `json:"companyName"`
	Location      string   `json:"location"`
	Category      string   `json:"category"`
	Score         int      `json:"score"`
	MatchedSkills []string `json:"matchedSkills"`
	IsExternal    bool     `json:"isExternal"`
	Link          string   `json:"link,omitempty"`
	Source        string   `json:"source"`
}
