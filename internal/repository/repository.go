package repository

import (
	"fmt"

	"github.com/yourusername/courtside-edge/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Prediction PredictionRepository
	Bet        BetRepository
	ValuePlay  ValuePlayRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Prediction: NewPostgresPredictionRepository(db),
		Bet:        NewPostgresBetRepository(db),
		ValuePlay:  NewPostgresValuePlayRepository(db),
	}, nil
}
