package models

import (
	"time"

	"github.com/google/uuid"
)

// ValuePlay ranks one player's predicted production against market or
// synthesized lines. OverallValue weights points 2x, rebounds 1x and
// assists 1.5x.
type ValuePlay struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PlayerName    string    `db:"player_name" json:"player_name"`
	Team          string    `db:"team" json:"team"`
	Opponent      string    `db:"opponent" json:"opponent"`
	GameDate      time.Time `db:"game_date" json:"game_date"`
	PointsValue   float64   `db:"points_value" json:"points_value"`
	ReboundsValue float64   `db:"rebounds_value" json:"rebounds_value"`
	AssistsValue  float64   `db:"assists_value" json:"assists_value"`
	OverallValue  float64   `db:"overall_value" json:"overall_value"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Direction classifies the play. Overall value inside (-1, 1) is noise
// and reads as neutral.
func (v *ValuePlay) Direction() BetDirection {
	switch {
	case v.OverallValue > 1:
		return DirectionOver
	case v.OverallValue < -1:
		return DirectionUnder
	default:
		return ""
	}
}

// PlayerPrediction is a persisted prediction row for one player and game
type PlayerPrediction struct {
	ID                uuid.UUID `db:"id" json:"id"`
	PlayerName        string    `db:"player_name" json:"player_name"`
	Team              string    `db:"team" json:"team"`
	Opponent          string    `db:"opponent" json:"opponent"`
	GameDate          time.Time `db:"game_date" json:"game_date"`
	PredictedPoints   float64   `db:"predicted_points" json:"predicted_points"`
	PredictedRebounds float64   `db:"predicted_rebounds" json:"predicted_rebounds"`
	PredictedAssists  float64   `db:"predicted_assists" json:"predicted_assists"`
	ModelBacked       bool      `db:"model_backed" json:"model_backed"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// FromFeatureSet builds a persistable prediction row from engine output
func FromFeatureSet(f *MatchupFeatureSet, gameDate time.Time) *PlayerPrediction {
	return &PlayerPrediction{
		ID:                uuid.New(),
		PlayerName:        f.PlayerName,
		Team:              f.PlayerTeam,
		Opponent:          f.Opponent,
		GameDate:          gameDate,
		PredictedPoints:   f.PredictedPoints,
		PredictedRebounds: f.PredictedRebounds,
		PredictedAssists:  f.PredictedAssists,
		ModelBacked:       f.ModelBacked,
		CreatedAt:         time.Now(),
	}
}
