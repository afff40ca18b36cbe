// Package engine builds per-player matchup predictions: a pace and
// defense adjusted baseline from season averages, refined by a chain of
// weighted adjustment multipliers.
package engine

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/config"
	"github.com/yourusername/courtside-edge/internal/datasource"
	"github.com/yourusername/courtside-edge/internal/logger"
	"github.com/yourusername/courtside-edge/internal/mlmodel"
	"github.com/yourusername/courtside-edge/internal/models"
	"github.com/yourusername/courtside-edge/internal/stats"
)

// RestUnknown marks a prediction request with no schedule data. The
// engine derives rest from the player's game log instead, assuming one
// day when no dated prior game is available.
const RestUnknown = -1

// ModelBackend is the trained-model collaborator. Any error falls back
// to the heuristic baseline.
type ModelBackend interface {
	PredictStat(ctx context.Context, req mlmodel.Request, stat models.StatType) (float64, error)
}

// Engine produces matchup feature sets for players against opponents
type Engine struct {
	stats   *stats.Repository
	logs    datasource.GameLogSource
	model   ModelBackend
	weights config.PredictionConfig
	plog    *logger.PredictionLogger

	currentSeason string
	priorSeason   string

	leaguePace float64
	leagueOff  float64
	leagueDef  float64
}

// New creates an engine. The game-log source and model backend may be
// nil; factors that need them degrade to neutral.
func New(repo *stats.Repository, logs datasource.GameLogSource, model ModelBackend,
	weights config.PredictionConfig, baseLogger *logrus.Logger) *Engine {

	e := &Engine{
		stats:   repo,
		logs:    logs,
		model:   model,
		weights: weights,
		plog:    logger.NewPredictionLogger(baseLogger),
	}

	seasons := repo.Seasons()
	if n := len(seasons); n > 0 {
		e.currentSeason = seasons[n-1]
		if n > 1 {
			e.priorSeason = seasons[n-2]
		}
	}

	e.leaguePace, e.leagueOff, e.leagueDef = leagueAverages(repo)
	return e
}

// leagueAverages computes mean team ratings from the loaded profiles,
// falling back to the published constants when no teams loaded.
func leagueAverages(repo *stats.Repository) (pace, off, def float64) {
	teams := repo.Teams()
	if len(teams) == 0 {
		return models.LeagueAveragePace, models.LeagueAverageOffRating, models.LeagueAverageDefRating
	}
	for _, t := range teams {
		pace += t.SanePace()
		off += t.SaneOffRating()
		def += t.SaneDefRating()
	}
	n := float64(len(teams))
	return pace / n, off / n, def / n
}

// PredictOptions carries per-game context for a single prediction
type PredictOptions struct {
	Home     bool
	GameDate time.Time
	// RestDays is days since the team's previous game, RestUnknown
	// when no schedule data is available.
	RestDays int
}

// Predict builds a feature set for one player against an opponent using
// a throwaway session. Returns nil when the player or either team
// cannot be resolved.
func (e *Engine) Predict(ctx context.Context, playerName, opponent string, opts PredictOptions) *models.MatchupFeatureSet {
	return e.NewSession().Predict(ctx, playerName, opponent, opts)
}

// Predict builds a feature set using this session's game-log cache
func (s *Session) Predict(ctx context.Context, playerName, opponent string, opts PredictOptions) *models.MatchupFeatureSet {
	e := s.engine

	player := MatchPlayer(e.stats.Players(), playerName)
	if player == nil {
		e.plog.LogSkippedPlayer(playerName, "player not found")
		return nil
	}

	team, err := e.stats.Team(player.Team)
	if err != nil {
		e.plog.LogSkippedPlayer(playerName, "player team profile missing")
		return nil
	}
	opp, err := e.stats.Team(opponent)
	if err != nil {
		e.plog.LogSkippedPlayer(playerName, "opponent profile missing")
		return nil
	}

	expectedPace := (team.SanePace() + opp.SanePace()) / 2
	paceFactor := expectedPace / 100.0
	defFactor := opp.SaneDefRating() / models.LeagueAverageDefRating

	basePoints := player.Points * paceFactor * defFactor
	baseRebounds := player.Rebounds * paceFactor
	baseAssists := player.Assists * paceFactor

	modelBacked := false
	if e.model != nil {
		basePoints, baseRebounds, baseAssists, modelBacked = s.modelBaseline(
			ctx, player, opp, paceFactor, defFactor,
			basePoints, baseRebounds, baseAssists,
		)
	}

	gameLog := s.gameLog(ctx, player.PlayerID, e.currentSeason)

	restDays := opts.RestDays
	if restDays == RestUnknown {
		restDays = restDaysFromLog(gameLog, opts.GameDate)
	}

	in := &factorInput{
		player:     player,
		team:       team,
		opponent:   opp,
		log:        gameLog,
		priorLog:   s.gameLog(ctx, player.PlayerID, e.priorSeason),
		home:       opts.Home,
		restDays:   restDays,
		leaguePace: e.leaguePace,
		leagueOff:  e.leagueOff,
		leagueDef:  e.leagueDef,
	}

	adjustments := []Adjustment{
		{Name: "system_fit", Weight: e.weights.SystemFitWeight, Compute: systemFitMultiplier},
		{Name: "recent_form", Weight: e.weights.RecentFormWeight, Compute: recentFormMultiplier},
		{Name: "head_to_head", Weight: e.weights.HeadToHeadWeight, Compute: headToHeadMultiplier},
		{Name: "rest_days", Weight: e.weights.RestWeight, Compute: restMultiplier},
		{Name: "home_away", Weight: e.weights.HomeAwayWeight, Compute: homeAwayMultiplier},
	}

	combined := 1.0
	applied := make([]float64, len(adjustments))
	for i, adj := range adjustments {
		applied[i] = applyWeight(adj.Compute(in), adj.Weight)
		combined *= applied[i]
	}

	upPoints := applyWeight(upsideMultiplier(in, models.StatPoints), e.weights.UpsideWeight)
	upRebounds := applyWeight(upsideMultiplier(in, models.StatRebounds), e.weights.UpsideWeight)
	upAssists := applyWeight(upsideMultiplier(in, models.StatAssists), e.weights.UpsideWeight)

	fs := &models.MatchupFeatureSet{
		PlayerName: player.Name,
		PlayerTeam: player.Team,
		Opponent:   opp.Abbreviation,
		Home:       opts.Home,

		PaceFactor:    paceFactor,
		DefenseFactor: defFactor,

		SeasonPoints:   player.Points,
		SeasonRebounds: player.Rebounds,
		SeasonAssists:  player.Assists,
		SeasonMinutes:  player.Minutes,

		Adjustments: models.AdjustmentBreakdown{
			SystemFit:  applied[0],
			RecentForm: applied[1],
			HeadToHead: applied[2],
			RestDays:   applied[3],
			HomeAway:   applied[4],
			Upside:     upPoints,
		},

		PredictedPoints:   basePoints * combined * upPoints,
		PredictedRebounds: baseRebounds * combined * upRebounds,
		PredictedAssists:  baseAssists * combined * upAssists,

		ModelBacked: modelBacked,
	}

	e.plog.LogPlayerPrediction(fs.PlayerName, fs.Opponent,
		fs.PredictedPoints, fs.PredictedRebounds, fs.PredictedAssists, fs.ModelBacked)

	return fs
}

// modelBaseline asks the model backend for each stat's baseline. A stat
// keeps its heuristic value on failure; the feature set only reports
// model-backed when all three stats came from the model.
func (s *Session) modelBaseline(ctx context.Context, player *models.PlayerSeasonRecord,
	opp *models.TeamSeasonProfile, paceFactor, defFactor float64,
	points, rebounds, assists float64) (float64, float64, float64, bool) {

	e := s.engine
	replaced := 0

	targets := []struct {
		stat models.StatType
		avg  float64
		dst  *float64
	}{
		{models.StatPoints, player.Points, &points},
		{models.StatRebounds, player.Rebounds, &rebounds},
		{models.StatAssists, player.Assists, &assists},
	}

	for _, t := range targets {
		req := mlmodel.Request{
			PlayerName:    player.Name,
			Team:          player.Team,
			Opponent:      opp.Abbreviation,
			SeasonAverage: t.avg,
			Minutes:       player.Minutes,
			PaceFactor:    paceFactor,
			DefenseFactor: defFactor,
		}
		v, err := e.model.PredictStat(ctx, req, t.stat)
		if err != nil {
			e.plog.LogModelFallback(player.Name, string(t.stat), err)
			continue
		}
		*t.dst = v
		replaced++
	}

	return points, rebounds, assists, replaced == len(targets)
}

// Game is one scheduled matchup by tricode
type Game struct {
	Home string
	Away string
}

// SlateResult reports a full-slate prediction run
type SlateResult struct {
	Features  []*models.MatchupFeatureSet
	Processed int
	Skipped   int
}

// PredictSlate predicts every rostered player in the given games. One
// session backs the whole slate so game logs are fetched once per
// player. Players that cannot be resolved are counted and skipped,
// never aborting the run.
func (e *Engine) PredictSlate(ctx context.Context, games []Game, gameDate time.Time) *SlateResult {
	start := time.Now()
	session := e.NewSession()
	result := &SlateResult{}

	for _, game := range games {
		sides := []struct {
			team     string
			opponent string
			home     bool
		}{
			{game.Home, game.Away, true},
			{game.Away, game.Home, false},
		}

		for _, side := range sides {
			for _, player := range e.stats.PlayersByTeam(side.team) {
				fs := session.Predict(ctx, player.Name, side.opponent, PredictOptions{
					Home:     side.home,
					GameDate: gameDate,
					RestDays: RestUnknown,
				})
				if fs == nil {
					result.Skipped++
					continue
				}
				result.Features = append(result.Features, fs)
				result.Processed++
			}
		}
	}

	e.plog.LogSlatePrediction(len(games), result.Processed, result.Skipped,
		float64(time.Since(start).Milliseconds()))

	return result
}
