package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestInternalJob_Accessors(t *testing.T) {
	id := uuid.New()
	job := InternalJob{
		PostingID:   id,
		RoleTitle:   "Backend Engineer",
		CompanyName: "Initech",
		JobCategory: "Engineering",
		Body:        "Build services",
		City:        "Austin",
		Country:     "USA",
		Stack:       []string{"Go", "Postgres"},
	}

	assert.Equal(t, id.String(), job.JobID())
	assert.Equal(t, "Backend Engineer", job.JobTitle())
	assert.Equal(t, "Austin, USA", job.Location())
	assert.False(t, job.IsExternal())
	assert.Equal(t, "Internal", job.Source())
	assert.Empty(t, job.Link())
}

func TestInternalJob_LocationPartial(t *testing.T) {
	assert.Equal(t, "USA", InternalJob{Country: "USA"}.Location())
	assert.Equal(t, "Austin", InternalJob{City: "Austin"}.Location())
	assert.Equal(t, "", InternalJob{}.Location())
}

func TestExternalJob_Accessors(t *testing.T) {
	job := ExternalJob{
		ListingID:   "ext-42",
		RoleTitle:   "Data Engineer",
		CompanyName: "Globex",
		Keyword:     "Data Engineer",
		Where:       "Remote",
		ListingURL:  "https://example.com/jobs/42",
		Provider:    "LinkedIn",
	}

	assert.True(t, job.IsExternal())
	assert.Equal(t, "LinkedIn", job.Source())
	assert.Equal(t, "https://example.com/jobs/42", job.Link())
	assert.Empty(t, job.Description())
	assert.Nil(t, job.TechStack())
}

func TestJobText_DescriptionFallsBackToTitle(t *testing.T) {
	job := ExternalJob{
		RoleTitle:   "Frontend Developer",
		CompanyName: "Acme",
		Keyword:     "React",
		Provider:    "LinkedIn",
	}

	assert.Equal(t, "Frontend Developer Frontend Developer Acme React", JobText(job))
}

func TestJobText_WithDescription(t *testing.T) {
	job := InternalJob{
		RoleTitle:   "SRE",
		Body:        "Keep the lights on",
		CompanyName: "Initech",
		JobCategory: "Ops",
	}

	assert.Equal(t, "SRE Keep the lights on Initech Ops", JobText(job))
}

func TestPastBehaviorIndex_CaseInsensitive(t *testing.T) {
	idx := &PastBehaviorIndex{
		Titles:     map[string]bool{"frontend developer": true},
		Companies:  map[string]bool{"acme corp": true},
		Categories: map[string]bool{"engineering": true},
	}

	assert.True(t, idx.HasTitle("Frontend Developer"))
	assert.True(t, idx.HasCompany("ACME CORP"))
	assert.True(t, idx.HasCategory("Engineering"))
	assert.False(t, idx.HasTitle("Sr. Frontend Developer"))
}

func TestPastBehaviorIndex_NilSafe(t *testing.T) {
	var idx *PastBehaviorIndex
	assert.False(t, idx.HasTitle("anything"))
	assert.False(t, idx.HasCompany("anything"))
	assert.False(t, idx.HasCategory("anything"))
}
