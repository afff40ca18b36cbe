// Package repository provides PostgreSQL persistence for predictions,
// bet candidates and value plays.
package repository

import (
	"context"
	"time"

	"github.com/yourusername/courtside-edge/internal/models"
)

// PredictionRepository defines prediction row persistence
type PredictionRepository interface {
	Create(ctx context.Context, prediction *models.PlayerPrediction) error
	CreateBatch(ctx context.Context, predictions []*models.PlayerPrediction) error
	GetByDate(ctx context.Context, gameDate time.Time) ([]*models.PlayerPrediction, error)
	GetByPlayer(ctx context.Context, playerName string, limit int) ([]*models.PlayerPrediction, error)
}

// BetRepository defines bet candidate persistence
type BetRepository interface {
	Create(ctx context.Context, candidate *models.BetCandidate) error
	CreateBatch(ctx context.Context, candidates []*models.BetCandidate) error
	GetTopByEV(ctx context.Context, since time.Time, limit int) ([]*models.BetCandidate, error)
}

// ValuePlayRepository defines value play persistence
type ValuePlayRepository interface {
	CreateBatch(ctx context.Context, plays []*models.ValuePlay) error
	GetTopValue(ctx context.Context, gameDate time.Time, limit int) ([]*models.ValuePlay, error)
}
