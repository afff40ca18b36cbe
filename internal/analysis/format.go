package analysis

import (
	"fmt"
	"strings"

	"github.com/yourusername/courtside-edge/internal/models"
	"github.com/yourusername/courtside-edge/internal/oddsmath"
)

// FormatStyle selects how much pricing detail a formatted bet line shows
type FormatStyle string

const (
	StyleDetailed FormatStyle = "detailed"
	StyleEV       FormatStyle = "ev"
	StyleSimple   FormatStyle = "simple"
)

// FormatBetLine renders a candidate as a single display line.
//
//	detailed: Luka Dončić OVER 27.5 Points -115 (0.25u - FV: -120) @ DRAFTKINGS
//	ev:       Luka Dončić OVER 27.5 Points -115 (EV: +5.2%)
//	simple:   Luka Dončić OVER 27.5 Points -115
func FormatBetLine(c *models.BetCandidate, style FormatStyle) string {
	base := fmt.Sprintf("%s %s %.1f %s %s",
		c.PlayerName, c.Direction, c.Line, statLabel(c.Stat),
		oddsmath.FormatAmerican(c.AmericanOdds))

	switch style {
	case StyleDetailed:
		return fmt.Sprintf("%s (%.2fu - FV: %s) @ %s",
			base, c.KellyUnits, oddsmath.FormatAmerican(c.FairValueOdds),
			strings.ToUpper(c.Book))
	case StyleEV:
		return fmt.Sprintf("%s (EV: %+.1f%%)", base, c.ExpectedValue*100)
	default:
		return base
	}
}

func statLabel(stat models.StatType) string {
	switch stat {
	case models.StatThrees:
		return "Threes"
	case models.StatPoints, models.StatRebounds, models.StatAssists,
		models.StatSteals, models.StatBlocks:
		s := string(stat)
		return strings.ToUpper(s[:1]) + s[1:]
	default:
		return string(stat)
	}
}
