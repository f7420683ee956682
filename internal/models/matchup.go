package models

import (
	"time"

	"github.com/google/uuid"
)

// Matchup is a historical bout with a known outcome, used as a labeled
// sample for offline weight calibration.
type Matchup struct {
	ID         uuid.UUID `db:"id" json:"id" validate:"required"`
	FighterAID uuid.UUID `db:"fighter_a_id" json:"fighter_a_id" validate:"required"`
	FighterBID uuid.UUID `db:"fighter_b_id" json:"fighter_b_id" validate:"required"`
	AWon       bool      `db:"a_won" json:"a_won"`
	FoughtAt   time.Time `db:"fought_at" json:"fought_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// LabeledPair is a matchup joined with both fighters' stats, ready for
// design-matrix construction.
type LabeledPair struct {
	FighterA FighterStats
	FighterB FighterStats
	AWon     bool
}

// Label returns the training label: 1 if fighter A won, else 0.
func (p LabeledPair) Label() float64 {
	if p.AWon {
		return 1.0
	}
	return 0.0
}
