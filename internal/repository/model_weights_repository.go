package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/fight-odds/internal/database"
	"github.com/yourusername/fight-odds/internal/models"
)

// PostgresModelWeightsRepository implements ModelWeightsRepository for PostgreSQL
type PostgresModelWeightsRepository struct {
	db *database.DB
}

// NewPostgresModelWeightsRepository creates a new model weights repository
func NewPostgresModelWeightsRepository(db *database.DB) ModelWeightsRepository {
	return &PostgresModelWeightsRepository{db: db}
}

// Create persists a calibrated weight map. Weights are stored as JSONB.
func (r *PostgresModelWeightsRepository) Create(ctx context.Context, weights *models.ModelWeights) error {
	encoded, err := json.Marshal(weights.Weights)
	if err != nil {
		return fmt.Errorf("failed to encode weights: %w", err)
	}

	query := `
		INSERT INTO model_weights (id, name, weights, samples, l2, learning_rate, epochs, fitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.GetPool().Exec(ctx, query,
		weights.ID, weights.Name, encoded, weights.Samples,
		weights.L2, weights.LearningRate, weights.Epochs, weights.FittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create model weights: %w", err)
	}
	return nil
}

// GetLatest retrieves the most recently fitted weight map for the given
// model name. Returns ErrModelNotCalibrated when no calibration has run yet.
func (r *PostgresModelWeightsRepository) GetLatest(ctx context.Context, name string) (*models.ModelWeights, error) {
	query := `
		SELECT id, name, weights, samples, l2, learning_rate, epochs, fitted_at
		FROM model_weights
		WHERE name = $1
		ORDER BY fitted_at DESC
		LIMIT 1
	`

	w := &models.ModelWeights{}
	var encoded []byte
	err := r.db.GetPool().QueryRow(ctx, query, name).Scan(
		&w.ID, &w.Name, &encoded, &w.Samples,
		&w.L2, &w.LearningRate, &w.Epochs, &w.FittedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrModelNotCalibrated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get model weights: %w", err)
	}

	if err := json.Unmarshal(encoded, &w.Weights); err != nil {
		return nil, fmt.Errorf("failed to decode weights: %w", err)
	}
	return w, nil
}
