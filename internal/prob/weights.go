package prob

// weightScale is the common factor applied to every default coefficient.
const weightScale = 0.115

// defaultWeights is the canonical domain-informed model. It is never handed
// out directly and never mutated; callers only ever see copies.
var defaultWeights = map[string]float64{
	"bias":                  0.0,
	"td_control_delta":      2.2 * weightScale,
	"td_vs_tdd_interaction": 1.6 * weightScale,
	"strike_eff_delta":      1.2 * weightScale,
	"strike_safety_delta":   1.0 * weightScale,
	"strike_output_delta":   0.5 * weightScale,
	"kd_delta":              0.7 * weightScale,
	"sub_delta":             0.8 * weightScale,
	"durability_delta":      0.3 * weightScale,
}

// featureKeys is the canonical column ordering for design matrices.
var featureKeys = []string{
	"bias",
	"strike_eff_delta",
	"strike_safety_delta",
	"strike_output_delta",
	"kd_delta",
	"td_control_delta",
	"sub_delta",
	"durability_delta",
	"td_vs_tdd_interaction",
}

// DefaultWeights returns a fresh copy of the default weight map.
func DefaultWeights() map[string]float64 {
	return CopyWeights(defaultWeights)
}

// FeatureKeys returns the canonical feature ordering used to build design
// matrices for calibration. The returned slice is a copy.
func FeatureKeys() []string {
	keys := make([]string, len(featureKeys))
	copy(keys, featureKeys)
	return keys
}

// CopyWeights returns a shallow copy of a weight map. Adjusted weight maps
// are always derived copies; no caller mutates a map it did not create.
func CopyWeights(w map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}
