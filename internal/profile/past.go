package profile

import (
	"strings"

	"github.com/jonathan/careerconnect/internal/types"
)

// BuildPastBehavior derives the lower-cased lookup sets from a candidate's
// historical applications. Derived once per request.
func BuildPastBehavior(apps []types.PastApplication) *types.PastBehaviorIndex {
	idx := &types.PastBehaviorIndex{
		Titles:     make(map[string]bool),
		Companies:  make(map[string]bool),
		Categories: make(map[string]bool),
	}

	for _, app := range apps {
		if title := strings.ToLower(strings.TrimSpace(app.JobTitle)); title != "" {
			idx.Titles[title] = true
		}
		if company := strings.ToLower(strings.TrimSpace(app.CompanyName)); company != "" {
			idx.Companies[company] = true
		}
		if category := strings.ToLower(strings.TrimSpace(app.Category)); category != "" {
			idx.Categories[category] = true
		}
	}
	return idx
}
