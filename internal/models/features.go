package models

// AdjustmentBreakdown records the individual multipliers applied to a
// base prediction. Each value is the post-weight multiplier, so 1.0 means
// the factor had no effect.
type AdjustmentBreakdown struct {
	SystemFit  float64 `json:"system_fit"`
	RecentForm float64 `json:"recent_form"`
	HeadToHead float64 `json:"head_to_head"`
	RestDays   float64 `json:"rest_days"`
	HomeAway   float64 `json:"home_away"`
	Upside     float64 `json:"upside"`
}

// Combined returns the product of all multipliers
func (a AdjustmentBreakdown) Combined() float64 {
	return a.SystemFit * a.RecentForm * a.HeadToHead * a.RestDays * a.HomeAway * a.Upside
}

// MatchupFeatureSet is the full output of a single player-vs-opponent
// prediction: context, base environment factors, adjustment multipliers
// and the final predicted stat lines.
type MatchupFeatureSet struct {
	PlayerName string `json:"player_name"`
	PlayerTeam string `json:"player_team"`
	Opponent   string `json:"opponent"`
	Home       bool   `json:"home"`

	PaceFactor    float64 `json:"pace_factor"`
	DefenseFactor float64 `json:"defense_factor"`

	SeasonPoints   float64 `json:"season_points"`
	SeasonRebounds float64 `json:"season_rebounds"`
	SeasonAssists  float64 `json:"season_assists"`
	SeasonMinutes  float64 `json:"season_minutes"`

	Adjustments AdjustmentBreakdown `json:"adjustments"`

	PredictedPoints   float64 `json:"predicted_points"`
	PredictedRebounds float64 `json:"predicted_rebounds"`
	PredictedAssists  float64 `json:"predicted_assists"`

	// ModelBacked is true when the base prediction came from the trained
	// model backend rather than the season-average heuristic.
	ModelBacked bool `json:"model_backed"`
}

// Predicted returns the final prediction for the given stat
func (m *MatchupFeatureSet) Predicted(stat StatType) float64 {
	switch stat {
	case StatPoints:
		return m.PredictedPoints
	case StatRebounds:
		return m.PredictedRebounds
	case StatAssists:
		return m.PredictedAssists
	default:
		return 0
	}
}
