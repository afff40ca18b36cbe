package engine

import (
	"math"

	"github.com/yourusername/courtside-edge/internal/models"
)

// Upside multipliers never shave a prediction, only raise it, and are
// capped at a 30% boost.
const (
	minUpsideMultiplier = 1.0
	maxUpsideMultiplier = 1.30
	minUpsideGames      = 5
)

// upsideMultiplier estimates ceiling potential beyond the season
// average: proven career highs, top-decile games, volatility, star
// status and what a few extra minutes would produce.
func upsideMultiplier(in *factorInput, stat models.StatType) float64 {
	valid := playedGames(in.log)
	if len(valid) < minUpsideGames {
		return 1.0
	}

	seasonAvg := in.player.SeasonAverage(stat)
	minutes := in.player.Minutes

	high := valid.Max(stat)
	p90 := valid.Percentile(stat, 90)
	mean := valid.Average(stat)
	std := stdDev(valid, stat, mean)

	var minSum float64
	for _, g := range valid {
		minSum += g.Minutes
	}
	avgMinutes := minSum / float64(len(valid))

	mult := 1.0

	if seasonAvg > 0 {
		switch ratio := high / seasonAvg; {
		case ratio > 1.5:
			mult += 0.08
		case ratio > 1.3:
			mult += 0.05
		case ratio > 1.2:
			mult += 0.03
		}
		switch ratio := p90 / seasonAvg; {
		case ratio > 1.4:
			mult += 0.06
		case ratio > 1.25:
			mult += 0.04
		}
	}

	if mean > 0 {
		switch volatility := std / mean; {
		case volatility > 0.35:
			mult += 0.05
		case volatility > 0.25:
			mult += 0.03
		}
	}

	mult += starBonus(stat, seasonAvg)

	// Per-minute ceiling: what the rate produces with five more minutes
	if minutes > 0 && avgMinutes > 0 {
		ceiling := mean / avgMinutes * (minutes + 5.0)
		switch {
		case ceiling > seasonAvg*1.15:
			mult += 0.04
		case ceiling > seasonAvg*1.10:
			mult += 0.02
		}
	}

	return clamp(mult, minUpsideMultiplier, maxUpsideMultiplier)
}

// starBonus grants extra upside to high-volume producers, on the logic
// that stars get the ball when a big night is available.
func starBonus(stat models.StatType, seasonAvg float64) float64 {
	switch stat {
	case models.StatPoints:
		if seasonAvg >= 25 {
			return 0.06
		}
		if seasonAvg >= 18 {
			return 0.04
		}
	case models.StatRebounds:
		if seasonAvg >= 12 {
			return 0.05
		}
		if seasonAvg >= 8 {
			return 0.03
		}
	case models.StatAssists:
		if seasonAvg >= 8 {
			return 0.05
		}
		if seasonAvg >= 5 {
			return 0.03
		}
	}
	return 0
}

func playedGames(log models.GameLog) models.GameLog {
	var out models.GameLog
	for _, g := range log {
		if g.Minutes > 0 {
			out = append(out, g)
		}
	}
	return out
}

func stdDev(log models.GameLog, stat models.StatType, mean float64) float64 {
	if len(log) == 0 {
		return 0
	}
	var sum float64
	for _, g := range log {
		d := g.Stat(stat) - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(log)))
}
