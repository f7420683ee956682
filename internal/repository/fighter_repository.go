package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/fight-odds/internal/database"
	"github.com/yourusername/fight-odds/internal/models"
)

// PostgresFighterRepository implements FighterRepository for PostgreSQL
type PostgresFighterRepository struct {
	db *database.DB
}

// NewPostgresFighterRepository creates a new fighter repository
func NewPostgresFighterRepository(db *database.DB) FighterRepository {
	return &PostgresFighterRepository{db: db}
}

// Create inserts a new fighter record. Stats are stored as a JSONB document.
func (r *PostgresFighterRepository) Create(ctx context.Context, fighter *models.FighterRecord) error {
	stats, err := json.Marshal(fighter.Stats)
	if err != nil {
		return fmt.Errorf("failed to encode fighter stats: %w", err)
	}

	query := `
		INSERT INTO fighters (id, name, stats, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.GetPool().Exec(ctx, query,
		fighter.ID, fighter.Name, stats, fighter.CreatedAt, fighter.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create fighter: %w", err)
	}
	return nil
}

// GetByID retrieves a fighter by ID
func (r *PostgresFighterRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FighterRecord, error) {
	query := `
		SELECT id, name, stats, created_at, updated_at
		FROM fighters WHERE id = $1
	`
	return r.scanOne(r.db.GetPool().QueryRow(ctx, query, id))
}

// GetByName retrieves a fighter by exact name
func (r *PostgresFighterRepository) GetByName(ctx context.Context, name string) (*models.FighterRecord, error) {
	query := `
		SELECT id, name, stats, created_at, updated_at
		FROM fighters WHERE name = $1
	`
	return r.scanOne(r.db.GetPool().QueryRow(ctx, query, name))
}

// Update replaces a fighter's stats
func (r *PostgresFighterRepository) Update(ctx context.Context, fighter *models.FighterRecord) error {
	stats, err := json.Marshal(fighter.Stats)
	if err != nil {
		return fmt.Errorf("failed to encode fighter stats: %w", err)
	}

	query := `
		UPDATE fighters SET name = $2, stats = $3, updated_at = $4
		WHERE id = $1
	`
	tag, err := r.db.GetPool().Exec(ctx, query, fighter.ID, fighter.Name, stats, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update fighter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// List retrieves up to limit fighters ordered by name
func (r *PostgresFighterRepository) List(ctx context.Context, limit int) ([]*models.FighterRecord, error) {
	query := `
		SELECT id, name, stats, created_at, updated_at
		FROM fighters
		ORDER BY name
		LIMIT $1
	`
	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query fighters: %w", err)
	}
	defer rows.Close()

	var fighters []*models.FighterRecord
	for rows.Next() {
		fighter, err := scanFighter(rows)
		if err != nil {
			return nil, err
		}
		fighters = append(fighters, fighter)
	}
	return fighters, rows.Err()
}

func (r *PostgresFighterRepository) scanOne(row pgx.Row) (*models.FighterRecord, error) {
	fighter, err := scanFighter(row)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fighter: %w", err)
	}
	return fighter, nil
}

func scanFighter(row pgx.Row) (*models.FighterRecord, error) {
	fighter := &models.FighterRecord{}
	var stats []byte
	if err := row.Scan(&fighter.ID, &fighter.Name, &stats, &fighter.CreatedAt, &fighter.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(stats, &fighter.Stats); err != nil {
		return nil, fmt.Errorf("failed to decode fighter stats: %w", err)
	}
	return fighter, nil
}
