package matching

import (
	"fmt"
	"math"
)

// Weighting when the semantic signal is available.
const (
	weightSemantic   = 0.40
	weightSkill      = 0.30
	weightExperience = 0.15
	weightTitle      = 0.10
)

// Weighting when the semantic signal is zero and scoring is keyword
// centric.
const (
	degradedWeightSkill      = 0.60
	degradedWeightExperience = 0.20
	degradedWeightTitle      = 0.15
)

// maxBoost caps the past-application boost contribution to the final
// score.
const maxBoost = 0.05

// Combine folds the signals into a final integer score on the 0..100
// scale. The weighting policy switches on whether a semantic signal was
// obtained: with it, semantic similarity dominates; without it the skill
// signal carries most of the weight.
func Combine(s Signals) int {
	boost := math.Min(s.Boost, maxBoost)

	var raw float64
	if s.Semantic > 0 {
		raw = weightSemantic*s.Semantic +
			weightSkill*s.Skill +
			weightExperience*s.Experience +
			weightTitle*s.Title +
			boost
	} else {
		raw = degradedWeightSkill*s.Skill +
			degradedWeightExperience*s.Experience +
			degradedWeightTitle*s.Title +
			boost
	}

	score := int(math.Round(raw * 100))
	if score < 0 || score > 100 {
		panic(fmt.Sprintf("combined score %d outside [0,100] for signals %+v", score, s))
	}
	return score
}
