package prob

import (
	"fmt"

	"github.com/yourusername/fight-odds/internal/models"
)

// FitOptions configures the gradient-descent calibration run.
type FitOptions struct {
	L2           float64
	LearningRate float64
	Epochs       int
}

// DefaultFitOptions mirrors the reference calibration settings.
func DefaultFitOptions() FitOptions {
	return FitOptions{L2: 1.0, LearningRate: 0.05, Epochs: 1000}
}

// Fit runs batch gradient descent on the L2-regularized logistic loss.
// X is an N-by-D design matrix, y the N binary labels. Weights start at
// zero and the epoch count is fixed, so identical inputs always yield the
// identical weight vector. Convergence is not checked; the caller chooses
// an epoch budget appropriate for the dataset.
func Fit(X [][]float64, y []float64, opts FitOptions) ([]float64, error) {
	n := len(X)
	if n == 0 {
		return nil, fmt.Errorf("calibrate: empty design matrix")
	}
	if len(y) != n {
		return nil, fmt.Errorf("calibrate: %d feature rows but %d labels", n, len(y))
	}
	d := len(X[0])
	for i, row := range X {
		if len(row) != d {
			return nil, fmt.Errorf("calibrate: row %d has %d columns, expected %d", i, len(row), d)
		}
	}
	for i, label := range y {
		if label != 0 && label != 1 {
			return nil, fmt.Errorf("calibrate: label %d is %v, expected 0 or 1", i, label)
		}
	}
	if opts.Epochs <= 0 {
		return nil, fmt.Errorf("calibrate: epochs must be positive, got %d", opts.Epochs)
	}

	w := make([]float64, d)
	grad := make([]float64, d)
	for epoch := 0; epoch < opts.Epochs; epoch++ {
		for j := range grad {
			grad[j] = 0
		}
		for i, row := range X {
			z := 0.0
			for j, v := range row {
				z += v * w[j]
			}
			diff := Sigmoid(z) - y[i]
			for j, v := range row {
				grad[j] += v * diff
			}
		}
		for j := range w {
			g := grad[j]/float64(n) + opts.L2*w[j]/float64(n)
			w[j] -= opts.LearningRate * g
		}
	}
	return w, nil
}

// BuildDesignMatrix expands labeled pairs into feature rows, one column per
// key in the caller-supplied ordering. Fit results must be zipped back
// against the same ordering via WeightsFromVector.
func BuildDesignMatrix(pairs []models.LabeledPair, keys []string) ([][]float64, []float64) {
	rows := make([][]float64, len(pairs))
	labels := make([]float64, len(pairs))
	for i, pair := range pairs {
		feats := MatchupFeatures(pair.FighterA, pair.FighterB)
		row := make([]float64, len(keys))
		for j, k := range keys {
			row[j] = feats[k]
		}
		rows[i] = row
		labels[i] = pair.Label()
	}
	return rows, labels
}

// WeightsFromVector zips a fitted weight vector back against the key
// ordering used to build the design matrix.
func WeightsFromVector(vec []float64, keys []string) (map[string]float64, error) {
	if len(vec) != len(keys) {
		return nil, fmt.Errorf("calibrate: %d weights for %d feature keys", len(vec), len(keys))
	}
	w := make(map[string]float64, len(keys))
	for i, k := range keys {
		w[k] = vec[i]
	}
	return w, nil
}
