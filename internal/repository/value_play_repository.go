package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/courtside-edge/internal/database"
	"github.com/yourusername/courtside-edge/internal/models"
)

// PostgresValuePlayRepository implements ValuePlayRepository for PostgreSQL
type PostgresValuePlayRepository struct {
	db *database.DB
}

// NewPostgresValuePlayRepository creates a new value play repository
func NewPostgresValuePlayRepository(db *database.DB) ValuePlayRepository {
	return &PostgresValuePlayRepository{db: db}
}

const valuePlayColumns = `id, player_name, team, opponent, game_date,
	points_value, rebounds_value, assists_value, overall_value, created_at`

// CreateBatch inserts an analysis run's value plays in one batch
func (r *PostgresValuePlayRepository) CreateBatch(ctx context.Context, plays []*models.ValuePlay) error {
	if len(plays) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO value_plays (` + valuePlayColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, p := range plays {
		batch.Queue(query,
			p.ID, p.PlayerName, p.Team, p.Opponent, p.GameDate,
			p.PointsValue, p.ReboundsValue, p.AssistsValue, p.OverallValue, p.CreatedAt,
		)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for range plays {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to batch insert value plays: %w", err)
		}
	}

	return nil
}

// GetTopValue retrieves the best plays for a game date
func (r *PostgresValuePlayRepository) GetTopValue(ctx context.Context, gameDate time.Time, limit int) ([]*models.ValuePlay, error) {
	query := `
		SELECT ` + valuePlayColumns + `
		FROM value_plays
		WHERE game_date = $1
		ORDER BY overall_value DESC
		LIMIT $2
	`

	rows, err := r.db.GetPool().Query(ctx, query, gameDate, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query value plays: %w", err)
	}
	defer rows.Close()

	var plays []*models.ValuePlay
	for rows.Next() {
		p := &models.ValuePlay{}
		err := rows.Scan(
			&p.ID, &p.PlayerName, &p.Team, &p.Opponent, &p.GameDate,
			&p.PointsValue, &p.ReboundsValue, &p.AssistsValue, &p.OverallValue, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan value play: %w", err)
		}
		plays = append(plays, p)
	}

	return plays, rows.Err()
}
