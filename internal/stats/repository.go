// Package stats loads season-level player and team data from CSV exports
// and blends multiple seasons into a single working set.
package stats

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/models"
)

// SeasonSource points at one season's player and team CSV files
type SeasonSource struct {
	Label       string
	PlayersFile string
	TeamsFile   string
}

// Repository holds the blended player and team season data. All sources
// are loaded eagerly; a missing file fails the whole load.
type Repository struct {
	log     *logrus.Logger
	blend   models.BlendMode
	seasons []string
	players []models.PlayerSeasonRecord
	teams   map[string]*models.TeamSeasonProfile
}

// NewRepository loads and blends every configured season source
func NewRepository(sources []SeasonSource, blend models.BlendMode, log *logrus.Logger) (*Repository, error) {
	if len(sources) == 0 {
		return nil, models.ErrNoSeasonData
	}

	// Season labels sort chronologically ("2024-25" < "2025-26")
	sorted := make([]SeasonSource, len(sources))
	copy(sorted, sources)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Label < sorted[j].Label })

	repo := &Repository{
		log:   log,
		blend: blend,
		teams: make(map[string]*models.TeamSeasonProfile),
	}
	for _, src := range sorted {
		repo.seasons = append(repo.seasons, src.Label)
	}

	var allPlayers []models.PlayerSeasonRecord
	var allTeams []models.TeamSeasonProfile
	for _, src := range sorted {
		players, err := loadPlayersCSV(src.PlayersFile, src.Label)
		if err != nil {
			return nil, fmt.Errorf("season %s: %w", src.Label, err)
		}
		teams, err := loadTeamsCSV(src.TeamsFile, src.Label)
		if err != nil {
			return nil, fmt.Errorf("season %s: %w", src.Label, err)
		}
		allPlayers = append(allPlayers, players...)
		allTeams = append(allTeams, teams...)
	}

	repo.players = blendPlayers(allPlayers, blend)
	for _, t := range blendTeams(allTeams, blend) {
		team := t
		repo.teams[team.Abbreviation] = &team
	}

	log.WithFields(logrus.Fields{
		"seasons":    len(sorted),
		"blend_mode": blend,
		"players":    len(repo.players),
		"teams":      len(repo.teams),
	}).Info("Season stats loaded")

	return repo, nil
}

// Seasons returns the loaded season labels in chronological order
func (r *Repository) Seasons() []string {
	return r.seasons
}

// Players returns the blended player rows
func (r *Repository) Players() []models.PlayerSeasonRecord {
	return r.players
}

// Team returns the blended profile for a tricode
func (r *Repository) Team(abbreviation string) (*models.TeamSeasonProfile, error) {
	team, ok := r.teams[abbreviation]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrTeamNotFound, abbreviation)
	}
	return team, nil
}

// Teams returns all blended team profiles keyed by tricode
func (r *Repository) Teams() map[string]*models.TeamSeasonProfile {
	return r.teams
}

// PlayersByTeam returns the blended rows for one roster
func (r *Repository) PlayersByTeam(abbreviation string) []models.PlayerSeasonRecord {
	var out []models.PlayerSeasonRecord
	for _, p := range r.players {
		if p.Team == abbreviation {
			out = append(out, p)
		}
	}
	return out
}

func loadPlayersCSV(path, season string) ([]models.PlayerSeasonRecord, error) {
	table, err := readCSVFile(path)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(table, path, "PLAYER_NAME", "TEAM_ABBREVIATION"); err != nil {
		return nil, err
	}

	var out []models.PlayerSeasonRecord
	for _, row := range table.rows {
		team := table.str(row, "TEAM_ABBREVIATION")
		if !models.NBATricodes[team] {
			continue
		}
		out = append(out, models.PlayerSeasonRecord{
			PlayerID:     table.intVal(row, "PLAYER_ID"),
			Name:         table.str(row, "PLAYER_NAME"),
			Team:         team,
			Season:       season,
			Points:       table.num(row, "PTS"),
			Rebounds:     table.num(row, "REB"),
			Assists:      table.num(row, "AST"),
			FieldGoalPct: table.num(row, "FG_PCT"),
			ThreesMade:   table.num(row, "FG3M"),
			Minutes:      table.num(row, "MIN"),
			GamesPlayed:  table.num(row, "GP"),
		})
	}
	return out, nil
}

func loadTeamsCSV(path, season string) ([]models.TeamSeasonProfile, error) {
	table, err := readCSVFile(path)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(table, path, "TEAM_ABBREVIATION"); err != nil {
		return nil, err
	}

	var out []models.TeamSeasonProfile
	for _, row := range table.rows {
		team := table.str(row, "TEAM_ABBREVIATION")
		if !models.NBATricodes[team] {
			continue
		}
		profile := models.TeamSeasonProfile{
			TeamID:             table.intVal(row, "TEAM_ID"),
			Abbreviation:       team,
			Season:             season,
			Pace:               table.num(row, "PACE"),
			OffensiveRating:    table.num(row, "OFF_RATING"),
			DefensiveRating:    table.num(row, "DEF_RATING"),
			WinPct:             table.num(row, "W_PCT"),
			ThreesAllowed:      table.num(row, "OPP_FG3A"),
			OppFieldGoalPct:    table.num(row, "OPP_FG_PCT"),
			PaintPointsAllowed: table.num(row, "OPP_PTS_PAINT"),
			DefReboundPct:      table.num(row, "DREB_PCT"),
		}
		// Replace implausible ratings at the boundary so every consumer
		// sees sane numbers
		profile.Pace = profile.SanePace()
		profile.OffensiveRating = profile.SaneOffRating()
		profile.DefensiveRating = profile.SaneDefRating()
		out = append(out, profile)
	}
	return out, nil
}

// blendPlayers reduces multi-season player rows to one row per player.
// Input is ordered oldest season first.
func blendPlayers(rows []models.PlayerSeasonRecord, blend models.BlendMode) []models.PlayerSeasonRecord {
	if blend == models.BlendLatest {
		latest := make(map[int]models.PlayerSeasonRecord)
		var order []int
		for _, row := range rows {
			if _, seen := latest[row.PlayerID]; !seen {
				order = append(order, row.PlayerID)
			}
			latest[row.PlayerID] = row
		}
		out := make([]models.PlayerSeasonRecord, 0, len(order))
		for _, id := range order {
			out = append(out, latest[id])
		}
		return out
	}

	// Mean blend: average the numeric columns, keep the latest team
	type agg struct {
		sum   models.PlayerSeasonRecord
		count int
	}
	aggs := make(map[int]*agg)
	var order []int
	for _, row := range rows {
		a, ok := aggs[row.PlayerID]
		if !ok {
			a = &agg{}
			aggs[row.PlayerID] = a
			order = append(order, row.PlayerID)
		}
		a.sum.PlayerID = row.PlayerID
		a.sum.Name = row.Name
		a.sum.Team = row.Team
		a.sum.Season = row.Season
		a.sum.Points += row.Points
		a.sum.Rebounds += row.Rebounds
		a.sum.Assists += row.Assists
		a.sum.FieldGoalPct += row.FieldGoalPct
		a.sum.ThreesMade += row.ThreesMade
		a.sum.Minutes += row.Minutes
		a.sum.GamesPlayed += row.GamesPlayed
		a.count++
	}

	out := make([]models.PlayerSeasonRecord, 0, len(order))
	for _, id := range order {
		a := aggs[id]
		n := float64(a.count)
		p := a.sum
		p.Points /= n
		p.Rebounds /= n
		p.Assists /= n
		p.FieldGoalPct /= n
		p.ThreesMade /= n
		p.Minutes /= n
		p.GamesPlayed /= n
		out = append(out, p)
	}
	return out
}

// blendTeams reduces multi-season team rows to one profile per tricode
func blendTeams(rows []models.TeamSeasonProfile, blend models.BlendMode) []models.TeamSeasonProfile {
	if blend == models.BlendLatest {
		latest := make(map[string]models.TeamSeasonProfile)
		var order []string
		for _, row := range rows {
			if _, seen := latest[row.Abbreviation]; !seen {
				order = append(order, row.Abbreviation)
			}
			latest[row.Abbreviation] = row
		}
		out := make([]models.TeamSeasonProfile, 0, len(order))
		for _, abbr := range order {
			out = append(out, latest[abbr])
		}
		return out
	}

	type agg struct {
		sum   models.TeamSeasonProfile
		count int
	}
	aggs := make(map[string]*agg)
	var order []string
	for _, row := range rows {
		a, ok := aggs[row.Abbreviation]
		if !ok {
			a = &agg{}
			aggs[row.Abbreviation] = a
			order = append(order, row.Abbreviation)
		}
		a.sum.TeamID = row.TeamID
		a.sum.Abbreviation = row.Abbreviation
		a.sum.Season = row.Season
		a.sum.Pace += row.Pace
		a.sum.OffensiveRating += row.OffensiveRating
		a.sum.DefensiveRating += row.DefensiveRating
		a.sum.WinPct += row.WinPct
		a.sum.ThreesAllowed += row.ThreesAllowed
		a.sum.OppFieldGoalPct += row.OppFieldGoalPct
		a.sum.PaintPointsAllowed += row.PaintPointsAllowed
		a.sum.DefReboundPct += row.DefReboundPct
		a.count++
	}

	out := make([]models.TeamSeasonProfile, 0, len(order))
	for _, abbr := range order {
		a := aggs[abbr]
		n := float64(a.count)
		t := a.sum
		t.Pace /= n
		t.OffensiveRating /= n
		t.DefensiveRating /= n
		t.WinPct /= n
		t.ThreesAllowed /= n
		t.OppFieldGoalPct /= n
		t.PaintPointsAllowed /= n
		t.DefReboundPct /= n
		out = append(out, t)
	}
	return out
}
