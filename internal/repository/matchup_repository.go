package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yourusername/fight-odds/internal/database"
	"github.com/yourusername/fight-odds/internal/models"
)

// PostgresMatchupRepository implements MatchupRepository for PostgreSQL
type PostgresMatchupRepository struct {
	db *database.DB
}

// NewPostgresMatchupRepository creates a new matchup repository
func NewPostgresMatchupRepository(db *database.DB) MatchupRepository {
	return &PostgresMatchupRepository{db: db}
}

// Create inserts a labeled historical bout
func (r *PostgresMatchupRepository) Create(ctx context.Context, matchup *models.Matchup) error {
	query := `
		INSERT INTO matchups (id, fighter_a_id, fighter_b_id, a_won, fought_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.GetPool().Exec(ctx, query,
		matchup.ID, matchup.FighterAID, matchup.FighterBID, matchup.AWon, matchup.FoughtAt, matchup.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create matchup: %w", err)
	}
	return nil
}

// ListSince retrieves matchups fought after the given time
func (r *PostgresMatchupRepository) ListSince(ctx context.Context, since time.Time, limit int) ([]*models.Matchup, error) {
	query := `
		SELECT id, fighter_a_id, fighter_b_id, a_won, fought_at, created_at
		FROM matchups
		WHERE fought_at >= $1
		ORDER BY fought_at DESC
		LIMIT $2
	`
	rows, err := r.db.GetPool().Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query matchups: %w", err)
	}
	defer rows.Close()

	var matchups []*models.Matchup
	for rows.Next() {
		m := &models.Matchup{}
		if err := rows.Scan(&m.ID, &m.FighterAID, &m.FighterBID, &m.AWon, &m.FoughtAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan matchup: %w", err)
		}
		matchups = append(matchups, m)
	}
	return matchups, rows.Err()
}

// ListLabeledPairs joins matchups with both fighters' stats snapshots,
// newest first, ready for design-matrix construction.
func (r *PostgresMatchupRepository) ListLabeledPairs(ctx context.Context, limit int) ([]models.LabeledPair, error) {
	query := `
		SELECT fa.stats, fb.stats, m.a_won
		FROM matchups m
		JOIN fighters fa ON fa.id = m.fighter_a_id
		JOIN fighters fb ON fb.id = m.fighter_b_id
		ORDER BY m.fought_at DESC
		LIMIT $1
	`
	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query labeled pairs: %w", err)
	}
	defer rows.Close()

	var pairs []models.LabeledPair
	for rows.Next() {
		var aStats, bStats []byte
		var pair models.LabeledPair
		if err := rows.Scan(&aStats, &bStats, &pair.AWon); err != nil {
			return nil, fmt.Errorf("failed to scan labeled pair: %w", err)
		}
		if err := json.Unmarshal(aStats, &pair.FighterA); err != nil {
			return nil, fmt.Errorf("failed to decode fighter A stats: %w", err)
		}
		if err := json.Unmarshal(bStats, &pair.FighterB); err != nil {
			return nil, fmt.Errorf("failed to decode fighter B stats: %w", err)
		}
		pairs = append(pairs, pair)
	}
	return pairs, rows.Err()
}
