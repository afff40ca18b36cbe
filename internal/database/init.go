package database

import (
	"context"
	"fmt"

	"github.com/yourusername/courtside-edge/internal/config"
)

// schema holds the tables the pipeline persists into. Idempotent so
// Initialize can run on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS predictions (
		id UUID PRIMARY KEY,
		player_name TEXT NOT NULL,
		team TEXT NOT NULL,
		opponent TEXT NOT NULL,
		game_date DATE NOT NULL,
		predicted_points DOUBLE PRECISION NOT NULL,
		predicted_rebounds DOUBLE PRECISION NOT NULL,
		predicted_assists DOUBLE PRECISION NOT NULL,
		model_backed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_predictions_game_date ON predictions (game_date)`,
	`CREATE INDEX IF NOT EXISTS idx_predictions_player ON predictions (player_name, game_date)`,

	`CREATE TABLE IF NOT EXISTS bet_candidates (
		id UUID PRIMARY KEY,
		player_name TEXT NOT NULL,
		stat TEXT NOT NULL,
		line DOUBLE PRECISION NOT NULL,
		direction TEXT NOT NULL,
		american_odds INTEGER NOT NULL,
		book TEXT NOT NULL,
		prediction DOUBLE PRECISION NOT NULL,
		probability DOUBLE PRECISION NOT NULL,
		implied_prob DOUBLE PRECISION NOT NULL,
		expected_value DOUBLE PRECISION NOT NULL,
		fair_value_odds INTEGER NOT NULL,
		kelly_units DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bet_candidates_ev ON bet_candidates (expected_value DESC)`,

	`CREATE TABLE IF NOT EXISTS value_plays (
		id UUID PRIMARY KEY,
		player_name TEXT NOT NULL,
		team TEXT NOT NULL,
		opponent TEXT NOT NULL,
		game_date DATE NOT NULL,
		points_value DOUBLE PRECISION NOT NULL,
		rebounds_value DOUBLE PRECISION NOT NULL,
		assists_value DOUBLE PRECISION NOT NULL,
		overall_value DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_value_plays_overall ON value_plays (game_date, overall_value DESC)`,
}

// Initialize opens the pool and applies the schema
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate applies the schema statements in order
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
