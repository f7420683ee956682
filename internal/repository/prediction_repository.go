package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/fight-odds/internal/database"
	"github.com/yourusername/fight-odds/internal/models"
)

// PostgresPredictionRepository implements PredictionRepository for PostgreSQL
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new prediction repository
func NewPostgresPredictionRepository(db *database.DB) PredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

// Create persists a scored matchup
func (r *PostgresPredictionRepository) Create(ctx context.Context, prediction *models.Prediction) error {
	query := `
		INSERT INTO predictions (
			id, fighter_a_id, fighter_b_id, model_version,
			probability, mean_probability, interval_low, interval_high,
			features, contributions, predicted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.GetPool().Exec(ctx, query,
		prediction.ID, prediction.FighterAID, prediction.FighterBID, prediction.ModelVersion,
		prediction.Probability, prediction.MeanProbability, prediction.IntervalLow, prediction.IntervalHigh,
		prediction.Features, prediction.Contributions, prediction.PredictedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prediction: %w", err)
	}
	return nil
}

// GetByID retrieves a prediction by ID
func (r *PostgresPredictionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Prediction, error) {
	query := `
		SELECT id, fighter_a_id, fighter_b_id, model_version,
		       probability, mean_probability, interval_low, interval_high,
		       features, contributions, predicted_at
		FROM predictions WHERE id = $1
	`
	prediction, err := scanPrediction(r.db.GetPool().QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	return prediction, nil
}

// ListRecent retrieves the most recent predictions, newest first
func (r *PostgresPredictionRepository) ListRecent(ctx context.Context, limit int) ([]*models.Prediction, error) {
	query := `
		SELECT id, fighter_a_id, fighter_b_id, model_version,
		       probability, mean_probability, interval_low, interval_high,
		       features, contributions, predicted_at
		FROM predictions
		ORDER BY predicted_at DESC
		LIMIT $1
	`
	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*models.Prediction
	for rows.Next() {
		prediction, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, prediction)
	}
	return predictions, rows.Err()
}

func scanPrediction(row pgx.Row) (*models.Prediction, error) {
	p := &models.Prediction{}
	err := row.Scan(
		&p.ID, &p.FighterAID, &p.FighterBID, &p.ModelVersion,
		&p.Probability, &p.MeanProbability, &p.IntervalLow, &p.IntervalHigh,
		&p.Features, &p.Contributions, &p.PredictedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
