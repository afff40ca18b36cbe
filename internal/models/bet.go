package models

import (
	"time"

	"github.com/google/uuid"
)

// BetCandidate is a priced prop bet with model probability and edge
type BetCandidate struct {
	ID            uuid.UUID    `db:"id" json:"id"`
	PlayerName    string       `db:"player_name" json:"player_name" validate:"required"`
	Stat          StatType     `db:"stat" json:"stat" validate:"required"`
	Line          float64      `db:"line" json:"line"`
	Direction     BetDirection `db:"direction" json:"direction" validate:"oneof=OVER UNDER"`
	AmericanOdds  int          `db:"american_odds" json:"american_odds"`
	Book          string       `db:"book" json:"book"`
	Prediction    float64      `db:"prediction" json:"prediction"`
	Probability   float64      `db:"probability" json:"probability" validate:"gte=0,lte=1"`
	ImpliedProb   float64      `db:"implied_prob" json:"implied_prob" validate:"gte=0,lte=1"`
	ExpectedValue float64      `db:"expected_value" json:"expected_value"`
	FairValueOdds int          `db:"fair_value_odds" json:"fair_value_odds"`
	KellyUnits    float64      `db:"kelly_units" json:"kelly_units"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
}

// Edge returns model probability minus the book's implied probability
func (b *BetCandidate) Edge() float64 {
	return b.Probability - b.ImpliedProb
}

// IsMainline reports whether the price sits in the mainline band
func (b *BetCandidate) IsMainline() bool {
	return b.AmericanOdds <= 200
}

// IsLongshot reports whether the price sits in the longshot band
func (b *BetCandidate) IsLongshot() bool {
	return b.AmericanOdds >= 500
}
