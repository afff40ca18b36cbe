package specialty

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/models"
)

// League shot-profile defaults when the opponent is unknown
const (
	leagueThreeShare    = 0.39
	leaguePaintShare    = 0.35
	leagueMidrangeShare = 0.26
	leagueShotsAllowed  = 88.0
)

// ShotDistribution splits shot volume into court zones, shares sum to 1
type ShotDistribution struct {
	ThreePoint float64 `json:"three_point"`
	Paint      float64 `json:"paint"`
	Midrange   float64 `json:"midrange"`
}

// WindowStats is projected production over one early-game window
type WindowStats struct {
	Points   float64 `json:"points"`
	Rebounds float64 `json:"rebounds"`
	Assists  float64 `json:"assists"`
	Threes   float64 `json:"threes"`
}

// MicrowaveProfile estimates how fast a player heats up: per-minute
// rates projected over the first 3 and 5 minutes, scaled by an early
// archetype multiplier and the shot-profile matchup.
type MicrowaveProfile struct {
	PlayerName    string  `json:"player_name"`
	Team          string  `json:"team"`
	SeasonPoints  float64 `json:"season_points"`
	SeasonMinutes float64 `json:"season_minutes"`

	EarlyMultiplier    float64 `json:"early_multiplier"`
	MatchupMultiplier  float64 `json:"matchup_multiplier"`
	CombinedMultiplier float64 `json:"combined_multiplier"`
	Score              float64 `json:"score"`

	PerMinute WindowStats `json:"per_minute"`
	First3Min WindowStats `json:"first_3_min"`
	First5Min WindowStats `json:"first_5_min"`

	PlayerShots   ShotDistribution `json:"player_shots"`
	OpponentShots ShotDistribution `json:"opponent_shots"`
}

// MicrowaveTracker profiles instant-offense players
type MicrowaveTracker struct {
	log *logrus.Entry
}

// NewMicrowaveTracker creates a microwave tracker
func NewMicrowaveTracker(baseLogger *logrus.Logger) *MicrowaveTracker {
	return &MicrowaveTracker{log: baseLogger.WithField("component", "microwave")}
}

// Profile builds the early-game profile for a player. The opponent may
// be nil, which leaves the shot matchup neutral against the league
// profile. Returns nil when the player has no recorded minutes.
func (t *MicrowaveTracker) Profile(player *models.PlayerSeasonRecord, opp *models.TeamSeasonProfile) *MicrowaveProfile {
	if player.Minutes <= 0 {
		return nil
	}

	rates := WindowStats{
		Points:   player.Points / player.Minutes,
		Rebounds: player.Rebounds / player.Minutes,
		Assists:  player.Assists / player.Minutes,
		Threes:   player.ThreesMade / player.Minutes,
	}

	early := earlyGameMultiplier(rates.Points)
	playerShots := playerShotDistribution(player)
	oppShots := opponentShotDistribution(opp)
	matchup := shotMatchupMultiplier(playerShots, oppShots)
	combined := early * matchup

	profile := &MicrowaveProfile{
		PlayerName:    player.Name,
		Team:          player.Team,
		SeasonPoints:  player.Points,
		SeasonMinutes: player.Minutes,

		EarlyMultiplier:    early,
		MatchupMultiplier:  matchup,
		CombinedMultiplier: combined,

		PerMinute: rates,
		First3Min: windowProjection(rates, 3, early, combined),
		First5Min: windowProjection(rates, 5, early, combined),

		PlayerShots:   playerShots,
		OpponentShots: oppShots,
	}

	// Points weighted double, threes up-weighted as the fastest scoring,
	// rebounds barely matter for heating up
	base := profile.First3Min.Points*2 + profile.First3Min.Rebounds*0.5 +
		profile.First3Min.Assists + profile.First3Min.Threes*1.5
	matchupBonus := (matchup - 1.0) * 2.0
	profile.Score = base * (1.0 + matchupBonus*0.1)

	t.log.WithFields(logrus.Fields{
		"player": player.Name,
		"score":  profile.Score,
	}).Debug("Microwave profile built")

	return profile
}

// windowProjection projects rates over an early window. Shot-dependent
// stats take the full combined multiplier; rebounds and assists only
// follow the early tendency.
func windowProjection(rates WindowStats, minutes, early, combined float64) WindowStats {
	return WindowStats{
		Points:   rates.Points * minutes * combined,
		Rebounds: rates.Rebounds * minutes * early,
		Assists:  rates.Assists * minutes * early,
		Threes:   rates.Threes * minutes * combined,
	}
}

// earlyGameMultiplier reflects that volume scorers hunt shots from the
// opening tip
func earlyGameMultiplier(ptsPerMin float64) float64 {
	switch {
	case ptsPerMin >= 0.7:
		return 1.15
	case ptsPerMin >= 0.5:
		return 1.10
	case ptsPerMin >= 0.35:
		return 1.05
	default:
		return 1.0
	}
}

// playerShotDistribution estimates zone shares from scoring volume.
// Season exports carry makes but not attempts, so the split leans on
// scoring tier, the same estimate used when attempt data is missing
// upstream.
func playerShotDistribution(player *models.PlayerSeasonRecord) ShotDistribution {
	switch {
	case player.Points >= 25:
		return ShotDistribution{ThreePoint: 0.40, Paint: 0.35, Midrange: 0.25}
	case player.Points >= 18:
		return ShotDistribution{ThreePoint: 0.35, Paint: 0.40, Midrange: 0.25}
	default:
		return ShotDistribution{ThreePoint: 0.30, Paint: 0.45, Midrange: 0.25}
	}
}

// opponentShotDistribution derives the shots a defense gives up from
// its threes-allowed volume, paint and midrange split 45/55 of the
// remaining twos
func opponentShotDistribution(opp *models.TeamSeasonProfile) ShotDistribution {
	if opp == nil || opp.ThreesAllowed <= 0 {
		return ShotDistribution{ThreePoint: leagueThreeShare, Paint: leaguePaintShare, Midrange: leagueMidrangeShare}
	}

	three := opp.ThreesAllowed / leagueShotsAllowed
	twos := (leagueShotsAllowed - opp.ThreesAllowed) / leagueShotsAllowed
	dist := ShotDistribution{
		ThreePoint: three,
		Paint:      twos * 0.45,
		Midrange:   twos * 0.55,
	}

	total := dist.ThreePoint + dist.Paint + dist.Midrange
	dist.ThreePoint /= total
	dist.Paint /= total
	dist.Midrange /= total
	return dist
}

// shotMatchupMultiplier scores how well the player's shot diet lines up
// with what the defense concedes. Zone overlaps weighted by the
// player's usage of the zone, with a penalty when a specialist's
// primary zone is one the defense takes away.
func shotMatchupMultiplier(player, opp ShotDistribution) float64 {
	alignment := min2(player.ThreePoint, opp.ThreePoint)*player.ThreePoint +
		min2(player.Paint, opp.Paint)*player.Paint +
		min2(player.Midrange, opp.Midrange)*player.Midrange

	var penalty float64
	if player.ThreePoint > 0.4 && player.ThreePoint-opp.ThreePoint > 0.15 {
		penalty += 0.05
	}
	if player.Paint > 0.4 && player.Paint-opp.Paint > 0.15 {
		penalty += 0.05
	}

	mult := 1.0
	switch {
	case alignment >= 0.20 && penalty == 0:
		mult = 1.15
	case alignment >= 0.15 && penalty == 0:
		mult = 1.10
	case alignment >= 0.12:
		mult = 1.05
	case alignment < 0.08 || penalty > 0.05:
		mult = 0.95
	}
	mult -= penalty

	if mult < 0.90 {
		return 0.90
	}
	if mult > 1.20 {
		return 1.20
	}
	return mult
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// SortByScore orders profiles hottest first
func SortByScore(profiles []*MicrowaveProfile) {
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Score > profiles[j].Score })
}
