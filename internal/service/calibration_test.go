package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/fight-odds/internal/models"
	"github.com/yourusername/fight-odds/internal/prob"
)

// mockWeightsRepo is a testify mock for the model weights repository
type mockWeightsRepo struct {
	mock.Mock
}

func (m *mockWeightsRepo) Create(ctx context.Context, weights *models.ModelWeights) error {
	args := m.Called(ctx, weights)
	return args.Error(0)
}

func (m *mockWeightsRepo) GetLatest(ctx context.Context, name string) (*models.ModelWeights, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModelWeights), args.Error(1)
}

// staticPairSource serves a fixed training set
type staticPairSource struct {
	pairs []models.LabeledPair
	err   error
}

func (s *staticPairSource) Load(ctx context.Context) ([]models.LabeledPair, error) {
	return s.pairs, s.err
}

// separableTrainingSet repeats the grappler-beats-striker outcome in both
// corner orders so the fitted model has a clean signal to find.
func separableTrainingSet(n int) []models.LabeledPair {
	pairs := make([]models.LabeledPair, 0, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			pairs = append(pairs, models.LabeledPair{FighterA: grappler(), FighterB: striker(), AWon: true})
		} else {
			pairs = append(pairs, models.LabeledPair{FighterA: striker(), FighterB: grappler(), AWon: false})
		}
	}
	return pairs
}

func testCalibrationConfig() CalibrationConfig {
	return CalibrationConfig{
		WeightsName: "test-weights",
		FitOpts:     prob.FitOptions{L2: 0.1, LearningRate: 0.1, Epochs: 200},
		MinMatchups: 10,
	}
}

func TestCalibrationRunFitsAndPersists(t *testing.T) {
	repo := &mockWeightsRepo{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(w *models.ModelWeights) bool {
		return w.Name == "test-weights" && w.Samples == 60 && len(w.Weights) > 0
	})).Return(nil).Once()

	source := &staticPairSource{pairs: separableTrainingSet(60)}
	svc := NewCalibrationService(testCalibrationConfig(), source, repo, nil, quietLogger())

	fitted, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, fitted)

	assert.Equal(t, 60, fitted.Samples)
	assert.Equal(t, 200, fitted.Epochs)
	repo.AssertExpectations(t)

	// The fitted model must score the winning side above even money.
	p, _ := prob.WinProbability(grappler(), striker(), fitted.Weights)
	assert.Greater(t, p, 0.5)
}

func TestCalibrationRunRefusesThinData(t *testing.T) {
	source := &staticPairSource{pairs: separableTrainingSet(4)}
	svc := NewCalibrationService(testCalibrationConfig(), source, nil, nil, quietLogger())

	_, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient training data")
}

func TestCalibrationRunPropagatesSourceFailure(t *testing.T) {
	source := &staticPairSource{err: assert.AnError}
	svc := NewCalibrationService(testCalibrationConfig(), source, nil, nil, quietLogger())

	_, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCalibrationRunSwapsAnalyzerWeights(t *testing.T) {
	analyzer := NewAnalyzer(testAnalyzerConfig(), nil, quietLogger())
	source := &staticPairSource{pairs: separableTrainingSet(60)}
	svc := NewCalibrationService(testCalibrationConfig(), source, nil, analyzer, quietLogger())

	fitted, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, fitted.ID.String(), analyzer.ModelVersion())
}

func TestLoadLatestRestoresPersistedWeights(t *testing.T) {
	stored := &models.ModelWeights{
		Name:    "test-weights",
		Weights: prob.DefaultWeights(),
	}
	repo := &mockWeightsRepo{}
	repo.On("GetLatest", mock.Anything, "test-weights").Return(stored, nil).Once()

	analyzer := NewAnalyzer(testAnalyzerConfig(), nil, quietLogger())
	svc := NewCalibrationService(testCalibrationConfig(), nil, repo, analyzer, quietLogger())

	require.NoError(t, svc.LoadLatest(context.Background()))
	assert.Equal(t, stored.ID.String(), analyzer.ModelVersion())
	repo.AssertExpectations(t)
}

func TestLoadLatestToleratesUncalibratedModel(t *testing.T) {
	repo := &mockWeightsRepo{}
	repo.On("GetLatest", mock.Anything, "test-weights").Return(nil, models.ErrModelNotCalibrated).Once()

	analyzer := NewAnalyzer(testAnalyzerConfig(), nil, quietLogger())
	svc := NewCalibrationService(testCalibrationConfig(), nil, repo, analyzer, quietLogger())

	require.NoError(t, svc.LoadLatest(context.Background()))
	assert.Equal(t, "test-v1", analyzer.ModelVersion(), "default weights stay in place")
}
