// Package specialty holds the per-minute estimators: quarter-by-quarter
// hot-start projections, rebound-chance modelling and early-game
// (microwave) production. Everything decomposes into
// rate x opportunity x multipliers so the factors stay inspectable.
package specialty

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/models"
)

// DefaultHotThreshold is the Q1 point total that counts as a hot start
const DefaultHotThreshold = 5.0

// ContinuationRates estimate how much of a hot first quarter carries
// into each remaining quarter, by archetype.
type ContinuationRates struct {
	Q2          float64
	Q3          float64
	Q4          float64
	AllQuarters float64
}

var archetypeRates = map[models.Archetype]ContinuationRates{
	models.ArchetypeSuperstar:  {Q2: 0.85, Q3: 0.80, Q4: 0.75, AllQuarters: 0.65},
	models.ArchetypeStar:       {Q2: 0.75, Q3: 0.65, Q4: 0.60, AllQuarters: 0.45},
	models.ArchetypeStarter:    {Q2: 0.65, Q3: 0.55, Q4: 0.50, AllQuarters: 0.35},
	models.ArchetypeRolePlayer: {Q2: 0.50, Q3: 0.40, Q4: 0.35, AllQuarters: 0.25},
}

// RatesFor returns the continuation rates for a player's archetype
func RatesFor(player *models.PlayerSeasonRecord) ContinuationRates {
	return archetypeRates[player.PlayerArchetype()]
}

// Confidence grades a projection by the archetype's consistency
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// HotQ1Projection is a full-game scoring projection from a hot first quarter
type HotQ1Projection struct {
	PlayerName     string           `json:"player_name"`
	Archetype      models.Archetype `json:"archetype"`
	Q1Points       float64          `json:"q1_points"`
	HotStart       bool             `json:"hot_start"`
	PredictedQ2    float64          `json:"predicted_q2"`
	PredictedQ3    float64          `json:"predicted_q3"`
	PredictedQ4    float64          `json:"predicted_q4"`
	PredictedTotal float64          `json:"predicted_total"`
	SeasonAverage  float64          `json:"season_average"`
	VsAverage      float64          `json:"vs_average"`
	Consistency    float64          `json:"consistency"`
	Confidence     Confidence       `json:"confidence"`
}

// HotHandTracker projects full-game totals from hot starts and reports
// hit-rate consistency against prop lines.
type HotHandTracker struct {
	log *logrus.Entry
}

// NewHotHandTracker creates a hot-hand tracker
func NewHotHandTracker(baseLogger *logrus.Logger) *HotHandTracker {
	return &HotHandTracker{log: baseLogger.WithField("component", "hothand")}
}

// ProjectFromHotQ1 projects a final scoring total for a player who put
// up q1Points in the first quarter. Below the threshold the start is
// not hot and the season average stands.
func (t *HotHandTracker) ProjectFromHotQ1(player *models.PlayerSeasonRecord, q1Points, threshold float64) *HotQ1Projection {
	if threshold <= 0 {
		threshold = DefaultHotThreshold
	}

	rates := RatesFor(player)
	proj := &HotQ1Projection{
		PlayerName:    player.Name,
		Archetype:     player.PlayerArchetype(),
		Q1Points:      q1Points,
		SeasonAverage: player.Points,
		Consistency:   rates.AllQuarters,
	}

	if q1Points < threshold {
		proj.PredictedTotal = player.Points
		return proj
	}

	proj.HotStart = true
	proj.PredictedQ2 = q1Points * rates.Q2
	proj.PredictedQ3 = q1Points * rates.Q3
	proj.PredictedQ4 = q1Points * rates.Q4
	proj.PredictedTotal = q1Points + proj.PredictedQ2 + proj.PredictedQ3 + proj.PredictedQ4
	proj.VsAverage = proj.PredictedTotal - player.Points

	switch {
	case rates.AllQuarters > 0.5:
		proj.Confidence = ConfidenceHigh
	case rates.AllQuarters > 0.35:
		proj.Confidence = ConfidenceMedium
	default:
		proj.Confidence = ConfidenceLow
	}

	t.log.WithFields(logrus.Fields{
		"player":    player.Name,
		"archetype": proj.Archetype,
		"q1":        q1Points,
		"projected": proj.PredictedTotal,
	}).Debug("Hot Q1 projection")

	return proj
}

// ConsistencyReport is a hit-rate summary over one scope of games
type ConsistencyReport struct {
	Scope   string          `json:"scope"`
	Stat    models.StatType `json:"stat"`
	Line    float64         `json:"line"`
	Games   int             `json:"games"`
	Hits    int             `json:"hits"`
	HitRate float64         `json:"hit_rate"`
}

func hitReport(scope string, log models.GameLog, stat models.StatType, line float64) ConsistencyReport {
	report := ConsistencyReport{Scope: scope, Stat: stat, Line: line, Games: len(log)}
	for _, g := range log {
		if g.Stat(stat) >= line {
			report.Hits++
		}
	}
	if report.Games > 0 {
		report.HitRate = float64(report.Hits) / float64(report.Games)
	}
	return report
}

// ConsistencyLastN reports the hit rate over the n most recent games
func (t *HotHandTracker) ConsistencyLastN(log models.GameLog, stat models.StatType, line float64, n int) ConsistencyReport {
	return hitReport(fmt.Sprintf("Last %d", n), log.LastN(n), stat, line)
}

// ConsistencySeason reports the hit rate over the full season log
func (t *HotHandTracker) ConsistencySeason(log models.GameLog, stat models.StatType, line float64) ConsistencyReport {
	return hitReport("Season", log, stat, line)
}

// ConsistencyHeadToHead reports the hit rate in meetings with the
// opponent. Fewer than 5 current-season meetings pulls in the prior
// season's meetings as well.
func (t *HotHandTracker) ConsistencyHeadToHead(current, prior models.GameLog, opponent string, stat models.StatType, line float64) ConsistencyReport {
	meetings := current.Against(opponent)
	if len(meetings) < 5 {
		meetings = append(meetings, prior.Against(opponent)...)
	}
	return hitReport("H2H vs "+opponent, meetings, stat, line)
}
