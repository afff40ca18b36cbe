package analysis

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/config"
	"github.com/yourusername/courtside-edge/internal/engine"
	"github.com/yourusername/courtside-edge/internal/logger"
	"github.com/yourusername/courtside-edge/internal/models"
	"github.com/yourusername/courtside-edge/internal/oddsmath"
)

// BetGenerator prices posted prop lines against slate predictions
type BetGenerator struct {
	cfg  config.BettingConfig
	blog *logger.BetLogger
}

// NewBetGenerator creates a bet generator
func NewBetGenerator(cfg config.BettingConfig, baseLogger *logrus.Logger) *BetGenerator {
	return &BetGenerator{
		cfg:  cfg,
		blog: logger.NewBetLogger(baseLogger),
	}
}

// Generate prices every posted direction of every odds row for the stat
// against the matching prediction, filters by expected value and returns
// candidates sorted by EV, best first. Rows whose player has no
// prediction are dropped silently; books list two-way players and
// G-League call-ups the engine never saw.
func (g *BetGenerator) Generate(features []*models.MatchupFeatureSet, lines []models.OddsLine, stat models.StatType) []models.BetCandidate {
	var out []models.BetCandidate
	rows, matched := 0, 0

	for _, line := range lines {
		if line.Stat != stat {
			continue
		}
		rows++

		fs := matchFeature(features, line.PlayerName)
		if fs == nil {
			continue
		}
		matched++

		prediction := fs.Predicted(stat)
		stdDev := oddsmath.StdDevFor(stat, prediction)
		probOver := oddsmath.ProbOver(prediction, line.Line, stdDev)

		for _, dir := range []models.BetDirection{models.DirectionOver, models.DirectionUnder} {
			if !line.HasDirection(dir) {
				continue
			}

			p := probOver
			if dir == models.DirectionUnder {
				p = 1 - probOver
			}

			odds := line.Odds(dir)
			ev := oddsmath.ExpectedValue(p, odds)
			if !g.cfg.IncludeNegative && ev < g.cfg.MinExpectedValue {
				continue
			}

			units := oddsmath.KellyUnits(p, odds, g.cfg.KellyFraction)
			if g.cfg.MaxKellyUnits > 0 && units > g.cfg.MaxKellyUnits {
				units = g.cfg.MaxKellyUnits
			}

			candidate := models.BetCandidate{
				ID:            uuid.New(),
				PlayerName:    fs.PlayerName,
				Stat:          stat,
				Line:          line.Line,
				Direction:     dir,
				AmericanOdds:  odds,
				Book:          line.Book,
				Prediction:    prediction,
				Probability:   p,
				ImpliedProb:   oddsmath.AmericanToImpliedProb(odds),
				ExpectedValue: ev,
				FairValueOdds: oddsmath.FairValueOdds(p),
				KellyUnits:    units,
				CreatedAt:     time.Now(),
			}

			g.blog.LogBetCandidate(candidate.PlayerName, string(stat), candidate.Line,
				string(dir), odds, ev, units)
			out = append(out, candidate)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ExpectedValue > out[j].ExpectedValue })

	g.blog.LogBetBatch(string(stat), rows, matched, len(out), g.cfg.MinExpectedValue)
	return out
}

// matchFeature resolves an odds-feed player name against the slate.
// Exact fold first, then normalized containment, then unique last name,
// mirroring the engine's roster matcher.
func matchFeature(features []*models.MatchupFeatureSet, name string) *models.MatchupFeatureSet {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	for _, fs := range features {
		if strings.EqualFold(fs.PlayerName, name) {
			return fs
		}
	}

	norm := engine.NormalizeName(name)
	for _, fs := range features {
		cand := engine.NormalizeName(fs.PlayerName)
		if cand == norm || strings.Contains(cand, norm) || strings.Contains(norm, cand) {
			return fs
		}
	}

	fields := strings.Fields(norm)
	if len(fields) < 2 {
		return nil
	}
	last := fields[len(fields)-1]

	var match *models.MatchupFeatureSet
	for _, fs := range features {
		cand := strings.Fields(engine.NormalizeName(fs.PlayerName))
		if len(cand) < 2 || cand[len(cand)-1] != last {
			continue
		}
		if match != nil {
			return nil
		}
		match = fs
	}
	return match
}

// GroupedBets splits candidates into price bands. Prices between +200
// and +500 belong to neither band and only appear in the flat list.
type GroupedBets struct {
	Mainline  []models.BetCandidate
	Longshots []models.BetCandidate
}

// GroupByPrice buckets candidates into mainline and longshot bands
func GroupByPrice(candidates []models.BetCandidate) GroupedBets {
	var grouped GroupedBets
	for _, c := range candidates {
		switch {
		case c.IsMainline():
			grouped.Mainline = append(grouped.Mainline, c)
		case c.IsLongshot():
			grouped.Longshots = append(grouped.Longshots, c)
		}
	}
	return grouped
}
