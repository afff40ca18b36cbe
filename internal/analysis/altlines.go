package analysis

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/courtside-edge/internal/models"
	"github.com/yourusername/courtside-edge/internal/oddsmath"
)

// AltLineOptimizer finds the best side of each alternate line a book
// posts for a single player prop.
type AltLineOptimizer struct{}

// NewAltLineOptimizer creates an alternate-line optimizer
func NewAltLineOptimizer() *AltLineOptimizer {
	return &AltLineOptimizer{}
}

// OptimizeLines prices both sides of every alternate line against the
// prediction, keeps the better-EV side of each and returns them sorted
// by EV, best first. Lines with no posted price on either side are
// skipped.
func (o *AltLineOptimizer) OptimizeLines(playerName string, stat models.StatType, prediction float64, alts []models.OddsLine) []models.BetCandidate {
	stdDev := oddsmath.StdDevFor(stat, prediction)

	out := make([]models.BetCandidate, 0, len(alts))
	for _, alt := range alts {
		probOver := oddsmath.ProbOver(prediction, alt.Line, stdDev)

		best, found := models.BetCandidate{}, false
		for _, dir := range []models.BetDirection{models.DirectionOver, models.DirectionUnder} {
			if !alt.HasDirection(dir) {
				continue
			}

			p := probOver
			if dir == models.DirectionUnder {
				p = 1 - probOver
			}
			odds := alt.Odds(dir)
			ev := oddsmath.ExpectedValue(p, odds)

			if found && ev <= best.ExpectedValue {
				continue
			}
			best = models.BetCandidate{
				ID:            uuid.New(),
				PlayerName:    playerName,
				Stat:          stat,
				Line:          alt.Line,
				Direction:     dir,
				AmericanOdds:  odds,
				Book:          alt.Book,
				Prediction:    prediction,
				Probability:   p,
				ImpliedProb:   oddsmath.AmericanToImpliedProb(odds),
				ExpectedValue: ev,
				FairValueOdds: oddsmath.FairValueOdds(p),
				KellyUnits:    oddsmath.KellyUnits(p, odds, oddsmath.DefaultKellyFraction),
				CreatedAt:     time.Now(),
			}
			found = true
		}

		if found {
			out = append(out, best)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ExpectedValue > out[j].ExpectedValue })
	return out
}
