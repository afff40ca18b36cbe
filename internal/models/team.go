package models

// League-wide per-game baselines used when an opponent profile is missing
// or carries an implausible value.
const (
	LeagueAveragePace      = 98.0
	LeagueAverageOffRating = 110.0
	LeagueAverageDefRating = 112.0
)

// Ratings outside these bounds are treated as data errors and replaced
// with the league average.
const (
	minPlausiblePace   = 90.0
	maxPlausiblePace   = 105.0
	minPlausibleRating = 80.0
	maxPlausibleRating = 130.0
)

// TeamSeasonProfile represents one team's season-level ratings and context
type TeamSeasonProfile struct {
	TeamID             int     `db:"team_id" json:"team_id" validate:"required"`
	Abbreviation       string  `db:"abbreviation" json:"abbreviation" validate:"required,len=3"`
	Season             string  `db:"season" json:"season" validate:"required"`
	Pace               float64 `db:"pace" json:"pace"`
	OffensiveRating    float64 `db:"offensive_rating" json:"offensive_rating"`
	DefensiveRating    float64 `db:"defensive_rating" json:"defensive_rating"`
	WinPct             float64 `db:"win_pct" json:"win_pct" validate:"gte=0,lte=1"`
	ThreesAllowed      float64 `db:"threes_allowed" json:"threes_allowed"`
	OppFieldGoalPct    float64 `db:"opp_fg_pct" json:"opp_fg_pct"`
	PaintPointsAllowed float64 `db:"paint_points_allowed" json:"paint_points_allowed"`
	DefReboundPct      float64 `db:"def_rebound_pct" json:"def_rebound_pct"`
}

// SanePace returns the team's pace, falling back to the league average
// when the recorded value is implausible
func (t *TeamSeasonProfile) SanePace() float64 {
	if t.Pace < minPlausiblePace || t.Pace > maxPlausiblePace {
		return LeagueAveragePace
	}
	return t.Pace
}

// SaneOffRating returns the offensive rating, league average on bad data
func (t *TeamSeasonProfile) SaneOffRating() float64 {
	if t.OffensiveRating < minPlausibleRating || t.OffensiveRating > maxPlausibleRating {
		return LeagueAverageOffRating
	}
	return t.OffensiveRating
}

// SaneDefRating returns the defensive rating, league average on bad data
func (t *TeamSeasonProfile) SaneDefRating() float64 {
	if t.DefensiveRating < minPlausibleRating || t.DefensiveRating > maxPlausibleRating {
		return LeagueAverageDefRating
	}
	return t.DefensiveRating
}

// NBATricodes lists the 30 current franchise abbreviations. Season files
// occasionally carry defunct or combined rows that must be filtered out.
var NBATricodes = map[string]bool{
	"ATL": true, "BOS": true, "BKN": true, "CHA": true, "CHI": true,
	"CLE": true, "DAL": true, "DEN": true, "DET": true, "GSW": true,
	"HOU": true, "IND": true, "LAC": true, "LAL": true, "MEM": true,
	"MIA": true, "MIL": true, "MIN": true, "NOP": true, "NYK": true,
	"OKC": true, "ORL": true, "PHI": true, "PHX": true, "POR": true,
	"SAC": true, "SAS": true, "TOR": true, "UTA": true, "WAS": true,
}
