package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/fight-odds/internal/models"
	"github.com/yourusername/fight-odds/internal/prob"
)

// mockPredictionRepo is a testify mock for the prediction repository
type mockPredictionRepo struct {
	mock.Mock
}

func (m *mockPredictionRepo) Create(ctx context.Context, prediction *models.Prediction) error {
	args := m.Called(ctx, prediction)
	return args.Error(0)
}

func (m *mockPredictionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Prediction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prediction), args.Error(1)
}

func (m *mockPredictionRepo) ListRecent(ctx context.Context, limit int) ([]*models.Prediction, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Prediction), args.Error(1)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		ModelVersion:  "test-v1",
		BootstrapOpts: prob.BootstrapOptions{Iterations: 50, Noise: 0.03, Seed: 42},
		TotalRounds:   3,
		CacheTTL:      time.Minute,
		CacheMaxSize:  10,
	}
}

func grappler() models.FighterStats {
	return models.FighterStats{
		SLpM: 5.36, SApM: 3.25, StrikeAcc: 0.59, StrikeDef: 0.42,
		TDAvg15: 4.31, TDAcc: 0.47, TDDef: 1.00, SubAvg15: 2.77,
		KDAvg: 0.62, AFTMinutes: 6.05,
	}
}

func striker() models.FighterStats {
	return models.FighterStats{
		SLpM: 6.12, SApM: 4.90, StrikeAcc: 0.49, StrikeDef: 0.54,
		TDAvg15: 2.55, TDAcc: 0.50, TDDef: 0.50, SubAvg15: 0.73,
		KDAvg: 0.48, AFTMinutes: 13.75,
	}
}

func TestAnalyzeProducesCompleteResult(t *testing.T) {
	analyzer := NewAnalyzer(testAnalyzerConfig(), nil, quietLogger())

	result, err := analyzer.Analyze(context.Background(), grappler(), striker())
	require.NoError(t, err)

	assert.Equal(t, "test-v1", result.ModelVersion)
	assert.Greater(t, result.Probability, 0.0)
	assert.Less(t, result.Probability, 1.0)
	assert.LessOrEqual(t, result.Interval.Low, result.MeanProbability)
	assert.LessOrEqual(t, result.MeanProbability, result.Interval.High)
	assert.Len(t, result.RoundProbabilities, 3)
	assert.NotEmpty(t, result.Contributions)
	assert.NotEmpty(t, result.Features)
}

func TestAnalyzeRejectsInvalidStats(t *testing.T) {
	analyzer := NewAnalyzer(testAnalyzerConfig(), nil, quietLogger())

	bad := grappler()
	bad.StrikeAcc = 1.4 // fractions must stay in [0,1]

	_, err := analyzer.Analyze(context.Background(), bad, striker())
	require.Error(t, err)

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestAnalyzeCachesByMatchupAndVersion(t *testing.T) {
	analyzer := NewAnalyzer(testAnalyzerConfig(), nil, quietLogger())
	ctx := context.Background()

	first, err := analyzer.Analyze(ctx, grappler(), striker())
	require.NoError(t, err)

	second, err := analyzer.Analyze(ctx, grappler(), striker())
	require.NoError(t, err)
	assert.Same(t, first, second, "expected the cached result on the second call")

	hits, misses, _ := analyzer.cache.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestAnalyzePersistsPrediction(t *testing.T) {
	repo := &mockPredictionRepo{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Prediction) bool {
		return p.ModelVersion == "test-v1" && p.Probability > 0 && p.Probability < 1
	})).Return(nil).Once()

	analyzer := NewAnalyzer(testAnalyzerConfig(), repo, quietLogger())

	_, err := analyzer.Analyze(context.Background(), grappler(), striker())
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAnalyzeSurvivesPersistFailure(t *testing.T) {
	repo := &mockPredictionRepo{}
	repo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	analyzer := NewAnalyzer(testAnalyzerConfig(), repo, quietLogger())

	result, err := analyzer.Analyze(context.Background(), grappler(), striker())
	require.NoError(t, err, "a failed write must not discard a valid score")
	assert.Greater(t, result.Probability, 0.0)
}

func TestSetWeightsInvalidatesPreviousVersion(t *testing.T) {
	analyzer := NewAnalyzer(testAnalyzerConfig(), nil, quietLogger())
	ctx := context.Background()

	first, err := analyzer.Analyze(ctx, grappler(), striker())
	require.NoError(t, err)

	analyzer.SetWeights("test-v2", prob.DefaultWeights())
	assert.Equal(t, "test-v2", analyzer.ModelVersion())

	second, err := analyzer.Analyze(ctx, grappler(), striker())
	require.NoError(t, err)
	assert.NotSame(t, first, second, "expected a fresh score after the weight swap")
	assert.Equal(t, "test-v2", second.ModelVersion)
}

func TestCacheKeyDistinguishesMatchups(t *testing.T) {
	a, b := grappler(), striker()

	k1 := NewCacheKey(a, b, "v1")
	k2 := NewCacheKey(b, a, "v1")
	k3 := NewCacheKey(a, b, "v2")

	assert.NotEqual(t, k1.String(), k2.String(), "matchup order is part of the key")
	assert.NotEqual(t, k1.String(), k3.String(), "model version is part of the key")
	assert.Equal(t, k1.String(), NewCacheKey(a, b, "v1").String())
}
