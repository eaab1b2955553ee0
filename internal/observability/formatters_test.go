package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/careerconnect/internal/types"
)

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(&types.CandidateProfile{
		Skills:          []string{"React", "Node.js", "TypeScript", "GraphQL", "CSS", "HTML"},
		JobTitles:       []string{"Frontend Developer"},
		ExperienceYears: 5,
		RawProfileText:  "some profile text",
	})

	out := buf.String()
	assert.Contains(t, out, "CANDIDATE PROFILE")
	assert.Contains(t, out, "5.0 years")
	assert.Contains(t, out, "+1 more")
	assert.Contains(t, out, "Frontend Developer")
}

func TestPrintProfileWrapsLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	// Six skills render wider than the box; the line must wrap, not
	// truncate, and the omitted-items note must stay intact.
	p.PrintProfile(&types.CandidateProfile{
		Skills: []string{"React", "Node.js", "TypeScript", "GraphQL", "CSS", "HTML"},
	})

	out := buf.String()
	assert.Contains(t, out, "(+1 more)")
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "line does not fit the box: %q", line)
	}
}

func TestPrintProfileNil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRecommendations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations([]types.MatchResult{
		{Title: "Frontend Developer", CompanyName: "Acme Corp", Score: 70},
		{Title: "Backend Developer", CompanyName: "Globex", Score: 48, IsExternal: true, Source: "LinkedIn"},
	})

	out := buf.String()
	assert.Contains(t, out, "RECOMMENDATIONS (2)")
	assert.Contains(t, out, "[ 70]")
	assert.Contains(t, out, "LinkedIn")
}

func TestPrintRecommendationsEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRecommendations(nil)
	assert.Contains(t, buf.String(), "No matching jobs found.")
}
