package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/courtside-edge/internal/database"
	"github.com/yourusername/courtside-edge/internal/models"
)

// PostgresPredictionRepository implements PredictionRepository for PostgreSQL
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new prediction repository
func NewPostgresPredictionRepository(db *database.DB) PredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

const predictionColumns = `id, player_name, team, opponent, game_date,
	predicted_points, predicted_rebounds, predicted_assists, model_backed, created_at`

// Create inserts one prediction row
func (r *PostgresPredictionRepository) Create(ctx context.Context, p *models.PlayerPrediction) error {
	query := `
		INSERT INTO predictions (` + predictionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		p.ID, p.PlayerName, p.Team, p.Opponent, p.GameDate,
		p.PredictedPoints, p.PredictedRebounds, p.PredictedAssists, p.ModelBacked, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prediction: %w", err)
	}

	return nil
}

// CreateBatch inserts a slate of prediction rows in one batch
func (r *PostgresPredictionRepository) CreateBatch(ctx context.Context, predictions []*models.PlayerPrediction) error {
	if len(predictions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO predictions (` + predictionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, p := range predictions {
		batch.Queue(query,
			p.ID, p.PlayerName, p.Team, p.Opponent, p.GameDate,
			p.PredictedPoints, p.PredictedRebounds, p.PredictedAssists, p.ModelBacked, p.CreatedAt,
		)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for range predictions {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to batch insert predictions: %w", err)
		}
	}

	return nil
}

// GetByDate retrieves all predictions for a game date
func (r *PostgresPredictionRepository) GetByDate(ctx context.Context, gameDate time.Time) ([]*models.PlayerPrediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE game_date = $1
		ORDER BY predicted_points DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, gameDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions by date: %w", err)
	}
	defer rows.Close()

	return scanPredictions(rows)
}

// GetByPlayer retrieves a player's most recent predictions
func (r *PostgresPredictionRepository) GetByPlayer(ctx context.Context, playerName string, limit int) ([]*models.PlayerPrediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE player_name = $1
		ORDER BY game_date DESC
		LIMIT $2
	`

	rows, err := r.db.GetPool().Query(ctx, query, playerName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions by player: %w", err)
	}
	defer rows.Close()

	return scanPredictions(rows)
}

func scanPredictions(rows pgx.Rows) ([]*models.PlayerPrediction, error) {
	var predictions []*models.PlayerPrediction
	for rows.Next() {
		p := &models.PlayerPrediction{}
		err := rows.Scan(
			&p.ID, &p.PlayerName, &p.Team, &p.Opponent, &p.GameDate,
			&p.PredictedPoints, &p.PredictedRebounds, &p.PredictedAssists, &p.ModelBacked, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, p)
	}

	return predictions, rows.Err()
}
