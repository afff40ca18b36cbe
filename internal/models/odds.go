package models

import "time"

// OddsLine represents one bookmaker's over/under market for a player prop
type OddsLine struct {
	PlayerName string    `db:"player_name" json:"player_name" validate:"required"`
	Stat       StatType  `db:"stat" json:"stat" validate:"required"`
	Line       float64   `db:"line" json:"line"`
	OverOdds   int       `db:"over_odds" json:"over_odds"`
	UnderOdds  int       `db:"under_odds" json:"under_odds"`
	Book       string    `db:"book" json:"book" validate:"required"`
	FetchedAt  time.Time `db:"fetched_at" json:"fetched_at"`
}

// Odds returns the American odds for the given direction
func (o *OddsLine) Odds(dir BetDirection) int {
	if dir == DirectionUnder {
		return o.UnderOdds
	}
	return o.OverOdds
}

// HasDirection reports whether the book posted a price for the direction.
// A zero means the side was not offered.
func (o *OddsLine) HasDirection(dir BetDirection) bool {
	return o.Odds(dir) != 0
}
