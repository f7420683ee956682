package prob

import (
	"math"
	"testing"
)

func TestFatigueFactorProgression(t *testing.T) {
	f := grapplerStats() // aft 6.05 -> endurance 0.4033

	expected := []float64{1.0, 0.6280991744757872, 0.5, 0.5, 0.5}
	for round := 1; round <= 5; round++ {
		got := FatigueFactor(f, round)
		if math.Abs(got-expected[round-1]) > 1e-9 {
			t.Errorf("round %d fatigue = %v, want %v", round, got, expected[round-1])
		}
	}
}

func TestFatigueFactorFlooredAtHalf(t *testing.T) {
	f := grapplerStats()
	f.AFTMinutes = 0 // degenerate endurance must not blow up the decay
	for round := 1; round <= 5; round++ {
		got := FatigueFactor(f, round)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("round %d fatigue not finite: %v", round, got)
		}
		if got < fatigueFloor {
			t.Fatalf("round %d fatigue %v below floor", round, got)
		}
	}
}

func TestRoundAdjustedWeightsEarlyRounds(t *testing.T) {
	base := DefaultWeights()
	lateKeys := []string{"durability_delta", "strike_output_delta", "strike_safety_delta"}
	earlyKeys := []string{"td_control_delta", "td_vs_tdd_interaction", "sub_delta"}

	for _, round := range []int{1, 2} {
		w := RoundAdjustedWeights(round, grapplerStats(), strikerStats(), base)
		for _, k := range lateKeys {
			if w[k] != base[k] {
				t.Errorf("round %d must leave %q unchanged: got %v, want %v", round, k, w[k], base[k])
			}
		}
		fatigue := FatigueFactor(grapplerStats(), round)
		for _, k := range earlyKeys {
			want := base[k] * 1.3 * fatigue
			if math.Abs(w[k]-want) > 1e-12 {
				t.Errorf("round %d %q = %v, want %v", round, k, w[k], want)
			}
		}
	}
}

func TestRoundAdjustedWeightsLateRounds(t *testing.T) {
	base := DefaultWeights()
	earlyKeys := []string{"td_control_delta", "td_vs_tdd_interaction", "sub_delta"}

	for _, round := range []int{3, 4, 5} {
		w := RoundAdjustedWeights(round, grapplerStats(), strikerStats(), base)
		for _, k := range earlyKeys {
			if w[k] != base[k] {
				t.Errorf("round %d must leave %q unchanged: got %v, want %v", round, k, w[k], base[k])
			}
		}
		fatigue := FatigueFactor(grapplerStats(), round)
		scales := map[string]float64{
			"durability_delta":    1.5,
			"strike_output_delta": 1.3,
			"strike_safety_delta": 1.2,
		}
		for k, scale := range scales {
			want := base[k] * scale * fatigue
			if math.Abs(w[k]-want) > 1e-12 {
				t.Errorf("round %d %q = %v, want %v", round, k, w[k], want)
			}
		}
	}
}

func TestRoundAdjustedWeightsDoesNotMutateBase(t *testing.T) {
	base := DefaultWeights()
	before := CopyWeights(base)

	_ = RoundAdjustedWeights(1, grapplerStats(), strikerStats(), base)
	_ = RoundAdjustedWeights(4, grapplerStats(), strikerStats(), base)

	for k, v := range before {
		if base[k] != v {
			t.Fatalf("base weight %q mutated from %v to %v", k, v, base[k])
		}
	}
}

func TestRoundWinProbabilitiesTrajectory(t *testing.T) {
	// Pinned against the reference implementation for the same stat lines.
	expected := []float64{
		0.6920479021674539,
		0.6236292424120001,
		0.6543550685149893,
		0.6543550685149893,
		0.6543550685149893,
	}

	probs := RoundWinProbabilities(grapplerStats(), strikerStats(), 5)
	if len(probs) != 5 {
		t.Fatalf("expected 5 rounds, got %d", len(probs))
	}
	for i, want := range expected {
		if math.Abs(probs[i]-want) > 1e-6 {
			t.Errorf("round %d probability = %.10f, want %.10f", i+1, probs[i], want)
		}
	}
}

func TestRoundWinProbabilitiesDefaultsToChampionshipDistance(t *testing.T) {
	probs := RoundWinProbabilities(grapplerStats(), strikerStats(), 0)
	if len(probs) != DefaultTotalRounds {
		t.Fatalf("expected %d rounds, got %d", DefaultTotalRounds, len(probs))
	}
	for i, p := range probs {
		if !(p > 0 && p < 1) {
			t.Errorf("round %d probability %v outside (0,1)", i+1, p)
		}
	}
}
