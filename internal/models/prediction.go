package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Prediction represents one scored matchup: the headline probability plus
// the bootstrap interval and the feature snapshot it was derived from.
type Prediction struct {
	ID              uuid.UUID       `db:"id" json:"id" validate:"required"`
	FighterAID      *uuid.UUID      `db:"fighter_a_id" json:"fighter_a_id,omitempty"`
	FighterBID      *uuid.UUID      `db:"fighter_b_id" json:"fighter_b_id,omitempty"`
	ModelVersion    string          `db:"model_version" json:"model_version" validate:"required"`
	Probability     float64         `db:"probability" json:"probability" validate:"gte=0,lte=1"`
	MeanProbability float64         `db:"mean_probability" json:"mean_probability" validate:"gte=0,lte=1"`
	IntervalLow     float64         `db:"interval_low" json:"interval_low" validate:"gte=0,lte=1"`
	IntervalHigh    float64         `db:"interval_high" json:"interval_high" validate:"gte=0,lte=1"`
	Features        json.RawMessage `db:"features" json:"features"`
	Contributions   json.RawMessage `db:"contributions" json:"contributions"`
	PredictedAt     time.Time       `db:"predicted_at" json:"predicted_at" validate:"required"`
}

// GetContribution retrieves a single feature's weighted contribution from
// the stored snapshot.
func (p *Prediction) GetContribution(name string) (float64, bool, error) {
	if p.Contributions == nil {
		return 0, false, nil
	}

	var contributions map[string]float64
	if err := json.Unmarshal(p.Contributions, &contributions); err != nil {
		return 0, false, err
	}

	v, ok := contributions[name]
	return v, ok, nil
}

// ModelWeights is a persisted weight map produced by a calibration run.
type ModelWeights struct {
	ID           uuid.UUID          `db:"id" json:"id" validate:"required"`
	Name         string             `db:"name" json:"name" validate:"required"`
	Weights      map[string]float64 `db:"weights" json:"weights" validate:"required"`
	Samples      int                `db:"samples" json:"samples"`
	L2           float64            `db:"l2" json:"l2"`
	LearningRate float64            `db:"learning_rate" json:"learning_rate"`
	Epochs       int                `db:"epochs" json:"epochs"`
	FittedAt     time.Time          `db:"fitted_at" json:"fitted_at"`
}
