package specialty

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/models"
)

// League per-game baselines for the opponent factors
const (
	leagueAvgThreesAllowed = 35.0
	leagueAvgFieldGoalPct  = 0.45
	leagueAvgPaintPoints   = 25.0
	leagueAvgDefRebPct     = 0.73
)

// A rebound opportunity is roughly twice a converted rebound
const chancesPerRebound = 2.0

// ReboundChances decomposes a player's expected rebound opportunities
// against one opponent. ExpectedChances = rate x opportunity base x
// every factor x minutes.
type ReboundChances struct {
	PlayerName      string  `json:"player_name"`
	Opponent        string  `json:"opponent"`
	ExpectedMinutes float64 `json:"expected_minutes"`

	RebPerMinute      float64 `json:"reb_per_minute"`
	BaseChancesPerMin float64 `json:"base_chances_per_min"`
	AdjChancesPerMin  float64 `json:"adj_chances_per_min"`
	ExpectedChances   float64 `json:"expected_chances"`
	ConversionRate    float64 `json:"conversion_rate"`

	Factors map[string]float64 `json:"factors"`
}

// ReboundAnalyzer estimates rebound opportunities from recent rates and
// the opponent's shot and rebounding profile.
type ReboundAnalyzer struct {
	log *logrus.Entry
}

// NewReboundAnalyzer creates a rebound analyzer
func NewReboundAnalyzer(baseLogger *logrus.Logger) *ReboundAnalyzer {
	return &ReboundAnalyzer{log: baseLogger.WithField("component", "rebounds")}
}

// Chances estimates rebound opportunities for the player against the
// opponent. The rebounding rate comes from the last 10 games, season
// averages when no log is available. Zero expectedMinutes means play
// the player's usual minutes.
func (a *ReboundAnalyzer) Chances(player *models.PlayerSeasonRecord, opp *models.TeamSeasonProfile,
	gameLog models.GameLog, expectedMinutes float64) *ReboundChances {

	avgReb, avgMin := player.Rebounds, player.Minutes
	if recent := gameLog.LastN(10); len(recent) > 0 {
		avgReb = recent.Average(models.StatRebounds)
		var minutes float64
		for _, g := range recent {
			minutes += g.Minutes
		}
		avgMin = minutes / float64(len(recent))
	}

	var rebPerMin float64
	if avgMin > 0 {
		rebPerMin = avgReb / avgMin
	}
	if expectedMinutes <= 0 {
		expectedMinutes = avgMin
	}

	threesAllowed := fallback(opp.ThreesAllowed, leagueAvgThreesAllowed)
	oppFGPct := fallback(opp.OppFieldGoalPct, leagueAvgFieldGoalPct)
	paintAllowed := fallback(opp.PaintPointsAllowed, leagueAvgPaintPoints)
	drebPct := fallback(opp.DefReboundPct, leagueAvgDefRebPct)

	// More threes allowed means longer rebounds; worse shooting allowed
	// means more misses; heavier paint traffic means more contested
	// boards; a weak defensive-rebounding opponent leaves more loose
	// balls; pace adds possessions.
	factors := map[string]float64{
		"fg3a":     1.0 + (threesAllowed-leagueAvgThreesAllowed)/leagueAvgThreesAllowed*0.15,
		"shooting": 1.0 + (leagueAvgFieldGoalPct-oppFGPct)/leagueAvgFieldGoalPct*0.25,
		"paint":    1.0 + (paintAllowed-leagueAvgPaintPoints)/leagueAvgPaintPoints*0.20,
		"dreb":     1.0 + (leagueAvgDefRebPct-drebPct)/leagueAvgDefRebPct*0.30,
		"pace":     opp.SanePace() / models.LeagueAveragePace,
		"position": positionFactor(avgReb),
	}

	base := rebPerMin * chancesPerRebound
	adjusted := base
	for _, f := range factors {
		adjusted *= f
	}

	result := &ReboundChances{
		PlayerName:        player.Name,
		Opponent:          opp.Abbreviation,
		ExpectedMinutes:   expectedMinutes,
		RebPerMinute:      rebPerMin,
		BaseChancesPerMin: base,
		AdjChancesPerMin:  adjusted,
		ExpectedChances:   adjusted * expectedMinutes,
		Factors:           factors,
	}
	if adjusted > 0 {
		result.ConversionRate = rebPerMin / adjusted
	}

	a.log.WithFields(logrus.Fields{
		"player":   player.Name,
		"opponent": opp.Abbreviation,
		"chances":  result.ExpectedChances,
	}).Debug("Rebound chances calculated")

	return result
}

// positionFactor proxies position from rebounding volume, bigs live
// closer to the glass
func positionFactor(rebPerGame float64) float64 {
	switch {
	case rebPerGame >= 8:
		return 1.15
	case rebPerGame >= 5:
		return 1.05
	default:
		return 1.0
	}
}

func fallback(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
