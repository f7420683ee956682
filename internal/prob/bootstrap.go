package prob

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/yourusername/fight-odds/internal/models"
)

// BootstrapOptions configures the input-perturbation resampling loop.
type BootstrapOptions struct {
	Iterations int
	Noise      float64 // proportional stddev of the multiplicative jitter
	Seed       int64
}

// DefaultBootstrapOptions mirrors the reference settings: 1000 resamples
// with 3% noise.
func DefaultBootstrapOptions() BootstrapOptions {
	return BootstrapOptions{Iterations: 1000, Noise: 0.03, Seed: 42}
}

// Interval is a roughly-90%-coverage empirical probability interval. It
// comes from rescoring perturbed inputs, not from a sampling distribution,
// so it is not a formal confidence interval.
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// BootstrapProbability perturbs both fighters' stats with multiplicative
// gaussian noise and rescores the matchup opts.Iterations times. It returns
// the mean of the resampled probabilities and the empirical interval built
// from the 5th and 95th rank positions.
//
// The generator is math/rand seeded with opts.Seed and the stat fields are
// jittered in declaration order, fighter a before fighter b, so identical
// inputs reproduce identical output on any Go build. The loop runs
// sequentially; splitting it across goroutines would change which draws land
// on which iteration and break that reproducibility contract.
func BootstrapProbability(a, b models.FighterStats, weights map[string]float64, opts BootstrapOptions) (float64, Interval, error) {
	if opts.Iterations <= 0 {
		return 0, Interval{}, fmt.Errorf("bootstrap: iterations must be positive, got %d", opts.Iterations)
	}
	if opts.Noise < 0 {
		return 0, Interval{}, fmt.Errorf("bootstrap: noise must be non-negative, got %v", opts.Noise)
	}
	if weights == nil {
		weights = defaultWeights
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	probs := make([]float64, opts.Iterations)
	for i := range probs {
		aa := jitterStats(a, rng, opts.Noise)
		bb := jitterStats(b, rng, opts.Noise)
		p, _ := WinProbability(aa, bb, weights)
		probs[i] = p
	}

	sort.Float64s(probs)
	mean := 0.0
	for _, p := range probs {
		mean += p
	}
	mean /= float64(len(probs))

	n := len(probs)
	lowIdx := int(0.05 * float64(n))
	highIdx := int(0.95*float64(n)) - 1
	if highIdx < 0 {
		highIdx = n - 1
	}
	return mean, Interval{Low: probs[lowIdx], High: probs[highIdx]}, nil
}

// jitterStats returns a perturbed copy: every field v becomes
// max(0, v*(1+N(0,noise))), with the accuracy/defense fractions clamped back
// to [0,1] and average fight time to the 25-minute ceiling.
func jitterStats(f models.FighterStats, rng *rand.Rand, noise float64) models.FighterStats {
	jitter := func(v float64) float64 {
		return math.Max(0.0, v*(1.0+rng.NormFloat64()*noise))
	}
	return models.FighterStats{
		SLpM:       jitter(f.SLpM),
		SApM:       jitter(f.SApM),
		StrikeAcc:  math.Min(1.0, jitter(f.StrikeAcc)),
		StrikeDef:  math.Min(1.0, jitter(f.StrikeDef)),
		TDAvg15:    jitter(f.TDAvg15),
		TDAcc:      math.Min(1.0, jitter(f.TDAcc)),
		TDDef:      math.Min(1.0, jitter(f.TDDef)),
		SubAvg15:   jitter(f.SubAvg15),
		KDAvg:      jitter(f.KDAvg),
		AFTMinutes: math.Min(maxFightMinutes, jitter(f.AFTMinutes)),
	}
}
