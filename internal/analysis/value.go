// Package analysis ranks slate predictions against market lines and
// turns them into priced bet candidates.
package analysis

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/models"
)

// Overall-value stat weights. Points drive prop volume so they count
// double; assists price tighter than rebounds.
const (
	pointsValueWeight   = 2.0
	reboundsValueWeight = 1.0
	assistsValueWeight  = 1.5
)

// ValueAnalyzer ranks predicted production against prop lines
type ValueAnalyzer struct {
	log *logrus.Entry
}

// NewValueAnalyzer creates a value analyzer
func NewValueAnalyzer(baseLogger *logrus.Logger) *ValueAnalyzer {
	return &ValueAnalyzer{log: baseLogger.WithField("component", "value")}
}

// Analyze scores every feature set against the posted lines and returns
// plays sorted by overall value, best first. When a player has no posted
// line for a stat the season average stands in, so the value reads as
// the predicted deviation from the player's norm.
func (a *ValueAnalyzer) Analyze(features []*models.MatchupFeatureSet, lines []models.OddsLine, gameDate time.Time) []models.ValuePlay {
	idx := indexLines(lines)

	plays := make([]models.ValuePlay, 0, len(features))
	for _, fs := range features {
		pv := fs.PredictedPoints - idx.lineFor(fs.PlayerName, models.StatPoints, fs.SeasonPoints)
		rv := fs.PredictedRebounds - idx.lineFor(fs.PlayerName, models.StatRebounds, fs.SeasonRebounds)
		av := fs.PredictedAssists - idx.lineFor(fs.PlayerName, models.StatAssists, fs.SeasonAssists)

		plays = append(plays, models.ValuePlay{
			ID:            uuid.New(),
			PlayerName:    fs.PlayerName,
			Team:          fs.PlayerTeam,
			Opponent:      fs.Opponent,
			GameDate:      gameDate,
			PointsValue:   pv,
			ReboundsValue: rv,
			AssistsValue:  av,
			OverallValue:  pointsValueWeight*pv + reboundsValueWeight*rv + assistsValueWeight*av,
			CreatedAt:     time.Now(),
		})
	}

	sort.Slice(plays, func(i, j int) bool { return plays[i].OverallValue > plays[j].OverallValue })

	a.log.WithFields(logrus.Fields{
		"players": len(plays),
		"lines":   len(lines),
	}).Info("Value analysis completed")

	return plays
}

type lineIndex map[string]float64

func indexLines(lines []models.OddsLine) lineIndex {
	idx := make(lineIndex, len(lines))
	for _, l := range lines {
		idx[lineKey(l.PlayerName, l.Stat)] = l.Line
	}
	return idx
}

func (idx lineIndex) lineFor(player string, stat models.StatType, fallback float64) float64 {
	if v, ok := idx[lineKey(player, stat)]; ok {
		return v
	}
	return fallback
}

func lineKey(player string, stat models.StatType) string {
	return strings.ToLower(player) + "|" + string(stat)
}
