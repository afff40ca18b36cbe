package models

// PlayerSeasonRecord represents one player's per-game season averages
type PlayerSeasonRecord struct {
	PlayerID     int     `db:"player_id" json:"player_id" validate:"required"`
	Name         string  `db:"name" json:"name" validate:"required"`
	Team         string  `db:"team" json:"team" validate:"required,len=3"`
	Season       string  `db:"season" json:"season" validate:"required"`
	Points       float64 `db:"points" json:"points" validate:"gte=0"`
	Rebounds     float64 `db:"rebounds" json:"rebounds" validate:"gte=0"`
	Assists      float64 `db:"assists" json:"assists" validate:"gte=0"`
	FieldGoalPct float64 `db:"fg_pct" json:"fg_pct" validate:"gte=0,lte=1"`
	ThreesMade   float64 `db:"threes_made" json:"threes_made" validate:"gte=0"`
	Minutes      float64 `db:"minutes" json:"minutes" validate:"gte=0"`
	GamesPlayed  float64 `db:"games_played" json:"games_played" validate:"gte=0"`
}

// SeasonAverage returns the season per-game average for the given stat
func (p *PlayerSeasonRecord) SeasonAverage(stat StatType) float64 {
	switch stat {
	case StatPoints:
		return p.Points
	case StatRebounds:
		return p.Rebounds
	case StatAssists:
		return p.Assists
	case StatThrees:
		return p.ThreesMade
	default:
		return 0
	}
}

// PerMinute returns the per-minute rate for the given stat, 0 when minutes are unknown
func (p *PlayerSeasonRecord) PerMinute(stat StatType) float64 {
	if p.Minutes <= 0 {
		return 0
	}
	return p.SeasonAverage(stat) / p.Minutes
}

// UsageTier buckets a player by average minutes played
type UsageTier string

const (
	UsageHigh   UsageTier = "high"
	UsageMedium UsageTier = "medium"
	UsageLow    UsageTier = "low"
)

// Usage classifies the player's workload from average minutes
func (p *PlayerSeasonRecord) Usage() UsageTier {
	switch {
	case p.Minutes >= 35:
		return UsageHigh
	case p.Minutes <= 20:
		return UsageLow
	default:
		return UsageMedium
	}
}

// Archetype buckets a player by scoring volume and minutes.
// The tiers drive default continuation rates in quarter projections.
type Archetype string

const (
	ArchetypeSuperstar  Archetype = "SUPERSTAR"
	ArchetypeStar       Archetype = "STAR"
	ArchetypeStarter    Archetype = "STARTER"
	ArchetypeRolePlayer Archetype = "ROLE PLAYER"
)

// PlayerArchetype classifies the player from season scoring and minutes
func (p *PlayerSeasonRecord) PlayerArchetype() Archetype {
	switch {
	case p.Points >= 25 && p.Minutes >= 32:
		return ArchetypeSuperstar
	case p.Points >= 18 && p.Minutes >= 28:
		return ArchetypeStar
	case p.Points >= 12 && p.Minutes >= 20:
		return ArchetypeStarter
	default:
		return ArchetypeRolePlayer
	}
}
