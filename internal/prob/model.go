package prob

import (
	"math"
	"sort"

	"github.com/yourusername/fight-odds/internal/models"
)

// WinProbability predicts P(a beats b) with a logistic model over matchup
// features. A nil weights map selects the default model.
//
// The returned contributions map holds each feature's weighted value.
// Summing them in ascending key order reconstructs the pre-sigmoid score
// exactly, so Sigmoid(sum) equals the returned probability bit for bit.
// The probability is strictly inside (0,1).
func WinProbability(a, b models.FighterStats, weights map[string]float64) (float64, map[string]float64) {
	if weights == nil {
		weights = defaultWeights
	}
	feats := MatchupFeatures(a, b)
	z := dot(weights, feats)
	p := Sigmoid(z)

	contributions := make(map[string]float64, len(feats))
	for k, v := range feats {
		contributions[k] = v * weights[k]
	}
	return p, contributions
}

// Sigmoid is the numerically stable logistic function. The two branches
// avoid overflow of exp for large |z|.
func Sigmoid(z float64) float64 {
	if z >= 0 {
		return 1.0 / (1.0 + math.Exp(-z))
	}
	ez := math.Exp(z)
	return ez / (1.0 + ez)
}

// dot sums w[k]*x[k] over the union of keys, walking them in sorted order.
// Map iteration order is randomized in Go; a fixed order keeps repeated
// calls and the contribution decomposition summing in the same sequence.
func dot(w, x map[string]float64) float64 {
	keys := make([]string, 0, len(w)+len(x))
	for k := range w {
		keys = append(keys, k)
	}
	for k := range x {
		if _, ok := w[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	z := 0.0
	for _, k := range keys {
		z += w[k] * x[k]
	}
	return z
}
