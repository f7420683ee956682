// Package repository provides Postgres-backed persistence for fighters,
// historical matchups, predictions and calibrated model weights.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/fight-odds/internal/models"
)

// FighterRepository stores fighter stat records
type FighterRepository interface {
	Create(ctx context.Context, fighter *models.FighterRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.FighterRecord, error)
	GetByName(ctx context.Context, name string) (*models.FighterRecord, error)
	Update(ctx context.Context, fighter *models.FighterRecord) error
	List(ctx context.Context, limit int) ([]*models.FighterRecord, error)
}

// MatchupRepository stores labeled historical bouts
type MatchupRepository interface {
	Create(ctx context.Context, matchup *models.Matchup) error
	ListSince(ctx context.Context, since time.Time, limit int) ([]*models.Matchup, error)
	// ListLabeledPairs joins matchups with both fighters' stats, ready for
	// design-matrix construction.
	ListLabeledPairs(ctx context.Context, limit int) ([]models.LabeledPair, error)
}

// PredictionRepository stores scored matchups
type PredictionRepository interface {
	Create(ctx context.Context, prediction *models.Prediction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Prediction, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Prediction, error)
}

// ModelWeightsRepository stores calibrated weight maps
type ModelWeightsRepository interface {
	Create(ctx context.Context, weights *models.ModelWeights) error
	GetLatest(ctx context.Context, name string) (*models.ModelWeights, error)
}
