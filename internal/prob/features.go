// Package prob implements the matchup win-probability model: feature
// construction from raw fighter statistics, a logistic scoring function with
// per-feature contributions, gradient-descent weight calibration, bootstrap
// uncertainty estimation and round-by-round weight adjustment.
//
// All operations are pure functions of their inputs (plus an explicit seed
// for the bootstrap), so independent matchups can be scored concurrently
// without coordination.
package prob

import (
	"github.com/yourusername/fight-odds/internal/models"
)

// EPS is added to every divisor so ratio features stay finite.
const EPS = 1e-9

// maxFightMinutes is the domain ceiling for average fight time (5x5 rounds).
const maxFightMinutes = 25.0

// FighterIndices computes per-fighter primitive indices from raw stats.
// durability doubles as a cardio proxy: fighters with long average fights
// score high, fast finishers score low.
func FighterIndices(f models.FighterStats) map[string]float64 {
	durability := clamp(f.AFTMinutes/maxFightMinutes, 0, 1)
	return map[string]float64{
		"strike_output":     f.SLpM,
		"strike_pressure":   f.SLpM * (1.0 - durability),
		"strike_efficiency": f.StrikeAcc * safeDiv(f.SLpM, f.SApM+1.0),
		"strike_safety":     f.StrikeDef * safeDiv(1.0, f.SApM+1.0),
		"td_pressure":       f.TDAvg15 * f.TDAcc,
		"sub_pressure":      f.SubAvg15,
		"kd_threat":         f.KDAvg,
		"durability":        durability,
	}
}

// MatchupFeatures builds the feature vector for fighter a against fighter b.
// The vector is specific to the ordered pair: a's offense is matched against
// b's defense and vice versa, so the delta terms negate under a swap.
//
// td_vs_tdd_interaction repeats td_control_delta on purpose. It is a second
// grappling term carrying its own coefficient in the default weights, and
// the calibrated relative importances depend on both being present.
func MatchupFeatures(a, b models.FighterStats) map[string]float64 {
	fa := FighterIndices(a)
	fb := FighterIndices(b)

	// Expected landed takedowns discounted by the opponent's defense.
	aTDEffective := a.TDAvg15 * a.TDAcc * (1.0 - b.TDDef)
	bTDEffective := b.TDAvg15 * b.TDAcc * (1.0 - a.TDDef)

	return map[string]float64{
		"bias":                  1.0,
		"strike_eff_delta":      fa["strike_efficiency"] - fb["strike_efficiency"],
		"strike_safety_delta":   fa["strike_safety"] - fb["strike_safety"],
		"strike_output_delta":   fa["strike_output"] - fb["strike_output"],
		"kd_delta":              fa["kd_threat"] - fb["kd_threat"],
		"td_control_delta":      aTDEffective - bTDEffective,
		"sub_delta":             fa["sub_pressure"] - fb["sub_pressure"],
		"durability_delta":      fa["durability"] - fb["durability"],
		"td_vs_tdd_interaction": aTDEffective - bTDEffective,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func safeDiv(a, b float64) float64 {
	return a / (b + EPS)
}
