package matching

import (
	"sort"

	"github.com/jonathan/careerconnect/internal/types"
)

// maxResults is the length the ranked list is truncated to.
const maxResults = 50

// Rank orders results by score descending and truncates to the top 50.
// The sort is stable so equal scores keep their pool order: internal
// catalog postings ahead of harvested listings, each in aggregation order.
func Rank(results []types.MatchResult) []types.MatchResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}
