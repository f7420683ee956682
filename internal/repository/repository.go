package repository

import (
	"fmt"

	"github.com/yourusername/fight-odds/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Fighter      FighterRepository
	Matchup      MatchupRepository
	Prediction   PredictionRepository
	ModelWeights ModelWeightsRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Fighter:      NewPostgresFighterRepository(db),
		Matchup:      NewPostgresMatchupRepository(db),
		Prediction:   NewPostgresPredictionRepository(db),
		ModelWeights: NewPostgresModelWeightsRepository(db),
	}, nil
}
