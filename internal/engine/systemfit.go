package engine

// Offensive system tiers, derived from team ratings against the league
// average.
type paceTier string

const (
	paceFast    paceTier = "fast"
	paceSlow    paceTier = "slow"
	paceAverage paceTier = "average"
)

type efficiencyTier string

const (
	effHigh    efficiencyTier = "high"
	effLow     efficiencyTier = "low"
	effAverage efficiencyTier = "average"
)

type defenseTier string

const (
	defElite        defenseTier = "elite"
	defGood         defenseTier = "good"
	defAverage      defenseTier = "average"
	defBelowAverage defenseTier = "below_average"
	defPoor         defenseTier = "poor"
)

func classifyPace(pace, leagueAvg float64) paceTier {
	switch {
	case pace >= leagueAvg+2:
		return paceFast
	case pace <= leagueAvg-2:
		return paceSlow
	default:
		return paceAverage
	}
}

func classifyEfficiency(offRating, leagueAvg float64) efficiencyTier {
	switch {
	case offRating >= leagueAvg+3:
		return effHigh
	case offRating <= leagueAvg-3:
		return effLow
	default:
		return effAverage
	}
}

func classifyDefense(defRating, leagueAvg float64) defenseTier {
	switch {
	case defRating <= leagueAvg-5:
		return defElite
	case defRating <= leagueAvg-2:
		return defGood
	case defRating >= leagueAvg+5:
		return defPoor
	case defRating >= leagueAvg+2:
		return defBelowAverage
	default:
		return defAverage
	}
}

// systemFitMultiplier scores how well the player's per-minute profile
// fits their own team's offensive system (60%) and exploits the
// opponent's defensive system (40%).
func systemFitMultiplier(in *factorInput) float64 {
	if in.player.Minutes <= 0 {
		return 1.0
	}

	ptsPerMin := in.player.Points / in.player.Minutes
	rebPerMin := in.player.Rebounds / in.player.Minutes
	astPerMin := in.player.Assists / in.player.Minutes

	pace := classifyPace(in.team.SanePace(), in.leaguePace)
	eff := classifyEfficiency(in.team.SaneOffRating(), in.leagueOff)

	offensiveFit := 1.0

	// High scorers feed off fast pace; rebounders and playmakers do
	// better in slower half-court games.
	switch pace {
	case paceFast:
		if ptsPerMin >= 0.6 {
			offensiveFit *= 1.10
		} else if ptsPerMin >= 0.4 {
			offensiveFit *= 1.05
		}
	case paceSlow:
		if rebPerMin >= 0.25 {
			offensiveFit *= 1.08
		} else if astPerMin >= 0.15 {
			offensiveFit *= 1.05
		}
	}

	if eff == effHigh {
		if astPerMin >= 0.15 {
			offensiveFit *= 1.08
		}
		if ptsPerMin >= 0.5 {
			offensiveFit *= 1.05
		}
	}

	// Style combinations with an extra kick
	if pace == paceFast && eff == effHigh && ptsPerMin >= 0.6 && astPerMin >= 0.12 {
		offensiveFit *= 1.12
	} else if pace == paceSlow && eff == effHigh && ptsPerMin >= 0.5 && astPerMin >= 0.10 {
		offensiveFit *= 1.10
	}

	def := classifyDefense(in.opponent.SaneDefRating(), in.leagueDef)

	defensiveMatchup := 1.0
	switch def {
	case defPoor, defBelowAverage:
		switch {
		case ptsPerMin >= 0.5:
			defensiveMatchup *= 1.15
		case ptsPerMin >= 0.35:
			defensiveMatchup *= 1.10
		default:
			defensiveMatchup *= 1.05
		}
	case defElite:
		switch {
		case ptsPerMin >= 0.6:
			defensiveMatchup *= 0.95
		case ptsPerMin >= 0.4:
			defensiveMatchup *= 0.90
		default:
			defensiveMatchup *= 0.85
		}
	}

	// Aggressive defenses leave passing lanes for playmakers
	if (def == defElite || def == defGood) && astPerMin >= 0.15 {
		defensiveMatchup *= 1.08
	}

	return offensiveFit*0.6 + defensiveMatchup*0.4
}
