package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/fight-odds/internal/logger"
	"github.com/yourusername/fight-odds/internal/metrics"
	"github.com/yourusername/fight-odds/internal/models"
	"github.com/yourusername/fight-odds/internal/prob"
	"github.com/yourusername/fight-odds/internal/repository"
)

// PairSource supplies labeled historical bouts for calibration. Both the
// matchup repository and the HTTP dataset loader satisfy it.
type PairSource interface {
	Load(ctx context.Context) ([]models.LabeledPair, error)
}

// RepositoryPairSource adapts the matchup repository into a PairSource
type RepositoryPairSource struct {
	Matchups repository.MatchupRepository
	Limit    int
}

// Load fetches the most recent labeled pairs from the database
func (s *RepositoryPairSource) Load(ctx context.Context) ([]models.LabeledPair, error) {
	limit := s.Limit
	if limit <= 0 {
		limit = 10000
	}
	return s.Matchups.ListLabeledPairs(ctx, limit)
}

// CalibrationConfig configures a calibration run
type CalibrationConfig struct {
	WeightsName string
	FitOpts     prob.FitOptions
	MinMatchups int
}

// CalibrationService fits model weights from labeled bouts and publishes
// them to the analyzer and, when a database is configured, to storage.
type CalibrationService struct {
	cfg      CalibrationConfig
	source   PairSource
	weights  repository.ModelWeightsRepository // optional
	analyzer *Analyzer                         // optional
	log      *logrus.Logger
	events   *logger.AnalysisLogger
}

// NewCalibrationService creates a calibration service. weights and analyzer
// may be nil; the run then only returns the fitted map.
func NewCalibrationService(
	cfg CalibrationConfig,
	source PairSource,
	weights repository.ModelWeightsRepository,
	analyzer *Analyzer,
	log *logrus.Logger,
) *CalibrationService {
	if cfg.WeightsName == "" {
		cfg.WeightsName = "fight-odds"
	}
	if cfg.FitOpts.Epochs == 0 {
		cfg.FitOpts = prob.DefaultFitOptions()
	}
	if cfg.MinMatchups <= 0 {
		cfg.MinMatchups = 50
	}

	return &CalibrationService{
		cfg:      cfg,
		source:   source,
		weights:  weights,
		analyzer: analyzer,
		log:      log,
		events:   logger.NewAnalysisLogger(log),
	}
}

// Run executes one full calibration: load labeled pairs, fit weights by
// gradient descent, persist the result and hot-swap the analyzer's model.
func (s *CalibrationService) Run(ctx context.Context) (*models.ModelWeights, error) {
	pairs, err := s.source.Load(ctx)
	if err != nil {
		metrics.CalibrationFailuresTotal.Inc()
		return nil, fmt.Errorf("failed to load training pairs: %w", err)
	}
	if len(pairs) < s.cfg.MinMatchups {
		metrics.CalibrationFailuresTotal.Inc()
		return nil, fmt.Errorf("insufficient training data: %d matchups, need at least %d",
			len(pairs), s.cfg.MinMatchups)
	}

	keys := prob.FeatureKeys()
	X, y := prob.BuildDesignMatrix(pairs, keys)

	vec, err := prob.Fit(X, y, s.cfg.FitOpts)
	if err != nil {
		metrics.CalibrationFailuresTotal.Inc()
		return nil, fmt.Errorf("fit failed: %w", err)
	}

	weightMap, err := prob.WeightsFromVector(vec, keys)
	if err != nil {
		metrics.CalibrationFailuresTotal.Inc()
		return nil, err
	}

	fitted := &models.ModelWeights{
		ID:           uuid.New(),
		Name:         s.cfg.WeightsName,
		Weights:      weightMap,
		Samples:      len(pairs),
		L2:           s.cfg.FitOpts.L2,
		LearningRate: s.cfg.FitOpts.LearningRate,
		Epochs:       s.cfg.FitOpts.Epochs,
		FittedAt:     time.Now(),
	}

	if s.weights != nil {
		if err := s.weights.Create(ctx, fitted); err != nil {
			metrics.CalibrationFailuresTotal.Inc()
			return nil, fmt.Errorf("failed to persist weights: %w", err)
		}
	}

	if s.analyzer != nil {
		s.analyzer.SetWeights(fitted.ID.String(), fitted.Weights)
	}

	metrics.CalibrationRunsTotal.Inc()
	metrics.CalibrationSamples.Set(float64(fitted.Samples))
	s.events.LogCalibrationRun(fitted.Name, fitted.Samples, fitted.Epochs, fitted.L2, fitted.LearningRate)

	return fitted, nil
}

// LoadLatest restores the most recently persisted weights into the analyzer.
// Called at startup so a restart does not fall back to the default model
// when a calibration has already run.
func (s *CalibrationService) LoadLatest(ctx context.Context) error {
	if s.weights == nil || s.analyzer == nil {
		return nil
	}

	latest, err := s.weights.GetLatest(ctx, s.cfg.WeightsName)
	if err == models.ErrModelNotCalibrated {
		s.log.Info("No calibrated weights found, using default model")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load latest weights: %w", err)
	}

	s.analyzer.SetWeights(latest.ID.String(), latest.Weights)
	return nil
}
