package engine

import (
	"time"

	"github.com/yourusername/courtside-edge/internal/models"
)

// factorInput bundles everything the adjustment factors read. Game logs
// may be empty when the log source is unavailable; every factor degrades
// to neutral in that case.
type factorInput struct {
	player   *models.PlayerSeasonRecord
	team     *models.TeamSeasonProfile
	opponent *models.TeamSeasonProfile
	log      models.GameLog
	priorLog models.GameLog
	home     bool
	restDays int

	leaguePace float64
	leagueOff  float64
	leagueDef  float64
}

// Adjustment is one named multiplier factor with its configured weight
type Adjustment struct {
	Name    string
	Weight  float64
	Compute func(in *factorInput) float64
}

// applyWeight interpolates a raw multiplier toward neutral. Weight 0
// yields exactly 1.0, weight 1 applies the factor at full strength.
func applyWeight(raw, weight float64) float64 {
	if weight <= 0 {
		return 1.0
	}
	return 1.0 + (raw-1.0)*weight
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Recent-form bounds. Five games is a small sample, so the ratio is
// capped well inside the rest of the factor range.
const (
	minFormMultiplier = 0.85
	maxFormMultiplier = 1.15
	recentFormGames   = 5
)

// recentFormMultiplier compares the last five games to season averages.
// Points, rebounds and assists ratios blend 50/25/25.
func recentFormMultiplier(in *factorInput) float64 {
	if len(in.log) < recentFormGames {
		return 1.0
	}
	last := in.log.LastN(recentFormGames)

	ratio := func(stat models.StatType, season float64) float64 {
		if season <= 0 {
			return 1.0
		}
		return last.Average(stat) / season
	}

	combined := 0.5*ratio(models.StatPoints, in.player.Points) +
		0.25*ratio(models.StatRebounds, in.player.Rebounds) +
		0.25*ratio(models.StatAssists, in.player.Assists)

	return clamp(combined, minFormMultiplier, maxFormMultiplier)
}

// headToHeadMultiplier reads the player's scoring history against this
// opponent. Fewer than five current-season meetings pulls in the prior
// season; fewer than two games total stays neutral. The ratio is damped
// by half since H2H samples are tiny.
func headToHeadMultiplier(in *factorInput) float64 {
	h2h := in.log.Against(in.opponent.Abbreviation)
	if len(h2h) < 5 {
		h2h = append(h2h, in.priorLog.Against(in.opponent.Abbreviation)...)
	}
	h2h = h2h.LastN(5)

	if len(h2h) < 2 || in.player.Points <= 0 {
		return 1.0
	}

	ratio := h2h.Average(models.StatPoints) / in.player.Points
	return clamp(1.0+(ratio-1.0)*0.5, minFormMultiplier, maxFormMultiplier)
}

// restDaysFromLog derives days of rest from the most recent logged game
// before the game date. A back-to-back counts as zero rest days.
// Defaults to one day when the log has no dated game before the date.
func restDaysFromLog(log models.GameLog, gameDate time.Time) int {
	if gameDate.IsZero() {
		return 1
	}

	var last time.Time
	for _, g := range log {
		if g.GameDate.Before(gameDate) && g.GameDate.After(last) {
			last = g.GameDate
		}
	}
	if last.IsZero() {
		return 1
	}

	days := int(gameDate.Sub(last).Hours()/24) - 1
	if days < 0 {
		days = 0
	}
	return days
}

// restMultiplier applies the rest-day table. Back-to-backs penalize
// heavy-minute players and boost bench players who absorb the extra
// minutes; two or more days off is a mild boost for everyone.
func restMultiplier(in *factorInput) float64 {
	switch {
	case in.restDays == 0:
		switch in.player.Usage() {
		case models.UsageHigh:
			return 0.93
		case models.UsageLow:
			return 1.08
		default:
			return 0.97
		}
	case in.restDays == 1:
		return 1.0
	case in.restDays == 2:
		return 1.03
	case in.restDays >= 3:
		return 1.05
	default:
		return 1.0
	}
}

// homeAwayMultiplier starts from the team-quality tier and refines with
// the player's own home/road split when both sides have at least five
// games of data.
func homeAwayMultiplier(in *factorInput) float64 {
	winPct := in.team.WinPct

	var mult float64
	if in.home {
		switch {
		case winPct > 0.55:
			mult = 1.05
		case winPct < 0.45:
			mult = 1.02
		default:
			mult = 1.03
		}
	} else {
		switch {
		case winPct > 0.55:
			mult = 0.98
		case winPct < 0.45:
			mult = 0.95
		default:
			mult = 0.97
		}
	}

	side := in.log.Home(in.home)
	other := in.log.Home(!in.home)
	if len(side) >= 5 && len(other) >= 5 {
		overall := in.log.Average(models.StatPoints)
		if overall > 0 {
			split := side.Average(models.StatPoints) / overall
			mult *= clamp(split, 0.92, 1.08)
		}
	}

	return mult
}
