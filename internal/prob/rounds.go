package prob

import (
	"math"

	"github.com/yourusername/fight-odds/internal/models"
)

// DefaultTotalRounds is the championship fight length.
const DefaultTotalRounds = 5

// fatigueFloor caps how far the round decay can cut into a weight.
const fatigueFloor = 0.5

// FatigueFactor models cardio decay across rounds from a fighter's average
// fight time. Endurance is normalized against a 15-minute (3x5) fight; the
// factor starts at 1.0 in round one and never drops below 0.5, which also
// guards fighters with near-zero average fight time against a runaway
// penalty.
func FatigueFactor(f models.FighterStats, round int) float64 {
	baseEndurance := f.AFTMinutes / 15.0
	decay := 1.0 - float64(round-1)*0.15/(baseEndurance+EPS)
	return math.Max(fatigueFloor, decay)
}

// RoundAdjustedWeights derives a round-specific weight map from base
// (the default model when base is nil). Rounds 1-2 boost the grappling
// terms; rounds 3+ shift weight toward durability and striking volume.
//
// Only f1's fatigue factor scales the adjustments, so argument order
// matters: f1 must be the fighter whose win probability the adjusted map
// will score. f2 is accepted to keep the call shape aligned with
// WinProbability and for a future symmetric treatment.
//
// base is never mutated; the result is always a fresh copy.
func RoundAdjustedWeights(round int, f1, f2 models.FighterStats, base map[string]float64) map[string]float64 {
	if base == nil {
		base = defaultWeights
	}
	w := CopyWeights(base)

	f1Fatigue := FatigueFactor(f1, round)
	_ = f2

	if round <= 2 {
		w["td_control_delta"] *= 1.3 * f1Fatigue
		w["td_vs_tdd_interaction"] *= 1.3 * f1Fatigue
		w["sub_delta"] *= 1.3 * f1Fatigue
	} else {
		w["durability_delta"] *= 1.5 * f1Fatigue
		w["strike_output_delta"] *= 1.3 * f1Fatigue
		w["strike_safety_delta"] *= 1.2 * f1Fatigue
	}
	return w
}

// RoundWinProbabilities scores f1 against f2 once per round with
// round-adjusted default weights and returns the probability trajectory.
// totalRounds <= 0 selects the championship distance.
func RoundWinProbabilities(f1, f2 models.FighterStats, totalRounds int) []float64 {
	if totalRounds <= 0 {
		totalRounds = DefaultTotalRounds
	}
	probs := make([]float64, 0, totalRounds)
	for round := 1; round <= totalRounds; round++ {
		w := RoundAdjustedWeights(round, f1, f2, nil)
		p, _ := WinProbability(f1, f2, w)
		probs = append(probs, p)
	}
	return probs
}
