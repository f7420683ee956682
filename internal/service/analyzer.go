package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/fight-odds/internal/logger"
	"github.com/yourusername/fight-odds/internal/metrics"
	"github.com/yourusername/fight-odds/internal/models"
	"github.com/yourusername/fight-odds/internal/prob"
	"github.com/yourusername/fight-odds/internal/repository"
)

// AnalysisResult is the full output of scoring one matchup: the headline
// probability, its per-feature decomposition, the bootstrap interval and the
// per-round trajectory.
type AnalysisResult struct {
	ModelVersion       string             `json:"model_version"`
	Probability        float64            `json:"probability"`
	MeanProbability    float64            `json:"mean_probability"`
	Interval           prob.Interval      `json:"interval"`
	Contributions      map[string]float64 `json:"contributions"`
	Features           map[string]float64 `json:"features"`
	RoundProbabilities []float64          `json:"round_probabilities"`
}

// AnalyzerConfig configures the matchup analyzer
type AnalyzerConfig struct {
	ModelVersion  string
	Weights       map[string]float64 // nil selects the default model
	BootstrapOpts prob.BootstrapOptions
	TotalRounds   int
	CacheTTL      time.Duration
	CacheMaxSize  int
}

// Analyzer scores matchups end to end: validation, point estimate,
// bootstrap interval, round trajectory, caching and optional persistence.
type Analyzer struct {
	mu            sync.RWMutex
	weights       map[string]float64
	modelVersion  string
	bootstrapOpts prob.BootstrapOptions
	totalRounds   int
	cache         *PredictionCache
	predictions   repository.PredictionRepository // optional
	log           *logrus.Logger
	events        *logger.AnalysisLogger
}

// NewAnalyzer creates a matchup analyzer. predictions may be nil when the
// service runs without a database.
func NewAnalyzer(cfg AnalyzerConfig, predictions repository.PredictionRepository, log *logrus.Logger) *Analyzer {
	if cfg.ModelVersion == "" {
		cfg.ModelVersion = "default"
	}
	if cfg.BootstrapOpts.Iterations == 0 {
		cfg.BootstrapOpts = prob.DefaultBootstrapOptions()
	}
	if cfg.TotalRounds <= 0 {
		cfg.TotalRounds = prob.DefaultTotalRounds
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.CacheMaxSize <= 0 {
		cfg.CacheMaxSize = 1000
	}
	weights := cfg.Weights
	if weights == nil {
		weights = prob.DefaultWeights()
	}

	return &Analyzer{
		weights:       prob.CopyWeights(weights),
		modelVersion:  cfg.ModelVersion,
		bootstrapOpts: cfg.BootstrapOpts,
		totalRounds:   cfg.TotalRounds,
		cache:         NewPredictionCache(cfg.CacheTTL, cfg.CacheMaxSize),
		predictions:   predictions,
		log:           log,
		events:        logger.NewAnalysisLogger(log),
	}
}

// Analyze scores fighter a against fighter b. Results are cached per
// (matchup, model version); a cache hit skips the bootstrap loop entirely.
func (s *Analyzer) Analyze(ctx context.Context, a, b models.FighterStats) (*AnalysisResult, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("fighter a: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("fighter b: %w", err)
	}

	s.mu.RLock()
	weights := s.weights
	modelVersion := s.modelVersion
	s.mu.RUnlock()

	key := NewCacheKey(a, b, modelVersion)
	if cached := s.cache.Get(key); cached != nil {
		s.events.LogMatchupScored(modelVersion, cached.Probability, cached.MeanProbability,
			cached.Interval.Low, cached.Interval.High, true)
		return cached, nil
	}

	p, contributions := prob.WinProbability(a, b, weights)
	metrics.PredictionsTotal.Inc()
	metrics.PredictionProbability.Observe(p)

	mean, interval, err := prob.BootstrapProbability(a, b, weights, s.bootstrapOpts)
	if err != nil {
		return nil, fmt.Errorf("bootstrap failed: %w", err)
	}
	metrics.BootstrapRunsTotal.Inc()
	metrics.BootstrapIntervalWidth.Observe(interval.High - interval.Low)

	result := &AnalysisResult{
		ModelVersion:       modelVersion,
		Probability:        p,
		MeanProbability:    mean,
		Interval:           interval,
		Contributions:      contributions,
		Features:           prob.MatchupFeatures(a, b),
		RoundProbabilities: s.roundTrajectory(a, b, weights),
	}

	s.cache.Set(key, result)
	s.events.LogMatchupScored(modelVersion, p, mean, interval.Low, interval.High, false)

	if s.predictions != nil {
		if err := s.persist(ctx, result); err != nil {
			// A failed write must not discard a valid score.
			s.log.WithError(err).Warn("Failed to persist prediction")
		}
	}

	return result, nil
}

// roundTrajectory scores each round with fatigue-adjusted weights
func (s *Analyzer) roundTrajectory(a, b models.FighterStats, weights map[string]float64) []float64 {
	probs := make([]float64, 0, s.totalRounds)
	for round := 1; round <= s.totalRounds; round++ {
		w := prob.RoundAdjustedWeights(round, a, b, weights)
		p, _ := prob.WinProbability(a, b, w)
		probs = append(probs, p)
	}
	return probs
}

// SetWeights swaps in a freshly calibrated weight map and invalidates every
// cache entry scored by the previous version.
func (s *Analyzer) SetWeights(modelVersion string, weights map[string]float64) {
	s.mu.Lock()
	previous := s.modelVersion
	s.modelVersion = modelVersion
	s.weights = prob.CopyWeights(weights)
	s.mu.Unlock()

	s.cache.InvalidateModelVersion(previous)
	s.log.WithFields(logrus.Fields{
		"previous_version": previous,
		"model_version":    modelVersion,
	}).Info("Model weights updated")
}

// ModelVersion returns the version of the weights currently in use
func (s *Analyzer) ModelVersion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modelVersion
}

func (s *Analyzer) persist(ctx context.Context, result *AnalysisResult) error {
	features, err := json.Marshal(result.Features)
	if err != nil {
		return fmt.Errorf("failed to encode features: %w", err)
	}
	contributions, err := json.Marshal(result.Contributions)
	if err != nil {
		return fmt.Errorf("failed to encode contributions: %w", err)
	}

	return s.predictions.Create(ctx, &models.Prediction{
		ID:              uuid.New(),
		ModelVersion:    result.ModelVersion,
		Probability:     result.Probability,
		MeanProbability: result.MeanProbability,
		IntervalLow:     result.Interval.Low,
		IntervalHigh:    result.Interval.High,
		Features:        features,
		Contributions:   contributions,
		PredictedAt:     time.Now(),
	})
}
