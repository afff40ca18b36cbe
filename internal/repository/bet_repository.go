package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/courtside-edge/internal/database"
	"github.com/yourusername/courtside-edge/internal/models"
)

// PostgresBetRepository implements BetRepository for PostgreSQL
type PostgresBetRepository struct {
	db *database.DB
}

// NewPostgresBetRepository creates a new bet repository
func NewPostgresBetRepository(db *database.DB) BetRepository {
	return &PostgresBetRepository{db: db}
}

const betColumns = `id, player_name, stat, line, direction, american_odds, book,
	prediction, probability, implied_prob, expected_value, fair_value_odds, kelly_units, created_at`

// Create inserts one bet candidate
func (r *PostgresBetRepository) Create(ctx context.Context, c *models.BetCandidate) error {
	query := `
		INSERT INTO bet_candidates (` + betColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		c.ID, c.PlayerName, c.Stat, c.Line, c.Direction, c.AmericanOdds, c.Book,
		c.Prediction, c.Probability, c.ImpliedProb, c.ExpectedValue, c.FairValueOdds, c.KellyUnits, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create bet candidate: %w", err)
	}

	return nil
}

// CreateBatch inserts a run of bet candidates in one batch
func (r *PostgresBetRepository) CreateBatch(ctx context.Context, candidates []*models.BetCandidate) error {
	if len(candidates) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO bet_candidates (` + betColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	for _, c := range candidates {
		batch.Queue(query,
			c.ID, c.PlayerName, c.Stat, c.Line, c.Direction, c.AmericanOdds, c.Book,
			c.Prediction, c.Probability, c.ImpliedProb, c.ExpectedValue, c.FairValueOdds, c.KellyUnits, c.CreatedAt,
		)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for range candidates {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to batch insert bet candidates: %w", err)
		}
	}

	return nil
}

// GetTopByEV retrieves the best candidates generated since the cutoff
func (r *PostgresBetRepository) GetTopByEV(ctx context.Context, since time.Time, limit int) ([]*models.BetCandidate, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bet_candidates
		WHERE created_at >= $1
		ORDER BY expected_value DESC
		LIMIT $2
	`

	rows, err := r.db.GetPool().Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query bet candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*models.BetCandidate
	for rows.Next() {
		c := &models.BetCandidate{}
		err := rows.Scan(
			&c.ID, &c.PlayerName, &c.Stat, &c.Line, &c.Direction, &c.AmericanOdds, &c.Book,
			&c.Prediction, &c.Probability, &c.ImpliedProb, &c.ExpectedValue, &c.FairValueOdds, &c.KellyUnits, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet candidate: %w", err)
		}
		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}
