package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/config"
	"github.com/yourusername/courtside-edge/internal/mlmodel"
	"github.com/yourusername/courtside-edge/internal/models"
	"github.com/yourusername/courtside-edge/internal/stats"
)

func testRepository(t *testing.T) *stats.Repository {
	t.Helper()
	log := logrus.New()
	repo, err := stats.NewRepository([]stats.SeasonSource{
		{Label: "2025-26", PlayersFile: "testdata/players.csv", TeamsFile: "testdata/teams.csv"},
	}, models.BlendLatest, log)
	if err != nil {
		t.Fatalf("failed to load test repository: %v", err)
	}
	return repo
}

func fullWeights() config.PredictionConfig {
	return config.PredictionConfig{
		SystemFitWeight:  1,
		RecentFormWeight: 1,
		HeadToHeadWeight: 1,
		RestWeight:       1,
		HomeAwayWeight:   1,
		UpsideWeight:     1,
	}
}

// fakeGameLogSource serves a fixed log and counts fetches
type fakeGameLogSource struct {
	log     models.GameLog
	fetches int32
	fail    bool
}

func (f *fakeGameLogSource) Name() string    { return "fake" }
func (f *fakeGameLogSource) IsEnabled() bool { return true }

func (f *fakeGameLogSource) FetchGameLog(ctx context.Context, playerID int, season string) (models.GameLog, error) {
	atomic.AddInt32(&f.fetches, 1)
	if f.fail {
		return nil, errors.New("upstream down")
	}
	return f.log, nil
}

// fakeModel returns fixed predictions per stat
type fakeModel struct {
	values map[models.StatType]float64
	err    error
}

func (f *fakeModel) PredictStat(ctx context.Context, req mlmodel.Request, stat models.StatType) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.values[stat], nil
}

func TestPredictZeroWeightsIsPureBaseline(t *testing.T) {
	e := New(testRepository(t), nil, nil, config.PredictionConfig{}, logrus.New())

	fs := e.Predict(context.Background(), "Luka Dončić", "BOS", PredictOptions{Home: true, RestDays: RestUnknown})
	if fs == nil {
		t.Fatal("expected a feature set")
	}

	// Both teams at pace 100 and the opponent at the league-average
	// defensive rating leave the baseline untouched
	if !almostEqual(fs.PaceFactor, 1.0) || !almostEqual(fs.DefenseFactor, 1.0) {
		t.Errorf("expected neutral factors, got pace=%f def=%f", fs.PaceFactor, fs.DefenseFactor)
	}
	if !almostEqual(fs.PredictedPoints, 25.0) {
		t.Errorf("expected baseline 25.0 points, got %f", fs.PredictedPoints)
	}
	if !almostEqual(fs.Adjustments.Combined(), 1.0) {
		t.Errorf("zero weights must leave every adjustment at 1.0: %+v", fs.Adjustments)
	}
	if fs.ModelBacked {
		t.Error("no model backend configured, must not report model-backed")
	}
}

func TestPredictFullWeights(t *testing.T) {
	e := New(testRepository(t), nil, nil, fullWeights(), logrus.New())

	fs := e.Predict(context.Background(), "Luka Dončić", "BOS", PredictOptions{Home: true, RestDays: RestUnknown})
	if fs == nil {
		t.Fatal("expected a feature set")
	}

	// With no game log available only the team-tier home boost applies
	if !almostEqual(fs.Adjustments.HomeAway, 1.03) {
		t.Errorf("expected home boost 1.03, got %f", fs.Adjustments.HomeAway)
	}
	if !almostEqual(fs.PredictedPoints, 25.0*1.03) {
		t.Errorf("expected %f points, got %f", 25.0*1.03, fs.PredictedPoints)
	}
}

func TestPredictUnknownPlayer(t *testing.T) {
	e := New(testRepository(t), nil, nil, fullWeights(), logrus.New())

	if fs := e.Predict(context.Background(), "Nobody Nowhere", "BOS", PredictOptions{RestDays: RestUnknown}); fs != nil {
		t.Fatalf("expected nil for unknown player, got %+v", fs)
	}
	if fs := e.Predict(context.Background(), "Luka Dončić", "XXX", PredictOptions{RestDays: RestUnknown}); fs != nil {
		t.Fatalf("expected nil for unknown opponent, got %+v", fs)
	}
}

func TestPredictWithGameLogFactors(t *testing.T) {
	source := &fakeGameLogSource{}
	for i := 0; i < 10; i++ {
		source.log = append(source.log, models.GameLogEntry{
			GameDate: time.Date(2026, time.January, 20-i, 0, 0, 0, 0, time.UTC),
			Matchup:  "DAL vs. BOS",
			Points:   30, Rebounds: 8, Assists: 9, Minutes: 36,
		})
	}

	e := New(testRepository(t), source, nil, fullWeights(), logrus.New())
	fs := e.Predict(context.Background(), "Luka Dončić", "BOS", PredictOptions{Home: true, RestDays: RestUnknown})
	if fs == nil {
		t.Fatal("expected a feature set")
	}

	// Last 5 at 30 vs a 25 season average: 0.5*1.2 + 0.25 + 0.25 = 1.1
	if !almostEqual(fs.Adjustments.RecentForm, 1.1) {
		t.Errorf("expected recent form 1.1, got %f", fs.Adjustments.RecentForm)
	}
	// Every logged game is against BOS at the same 1.2 ratio, damped to 1.1
	if !almostEqual(fs.Adjustments.HeadToHead, 1.1) {
		t.Errorf("expected head-to-head 1.1, got %f", fs.Adjustments.HeadToHead)
	}

	// Final points must equal the baseline times the recorded breakdown
	expected := 25.0 * fs.Adjustments.SystemFit * fs.Adjustments.RecentForm *
		fs.Adjustments.HeadToHead * fs.Adjustments.RestDays * fs.Adjustments.HomeAway *
		fs.Adjustments.Upside
	if !almostEqual(fs.PredictedPoints, expected) {
		t.Errorf("breakdown does not reproduce the prediction: %f vs %f", fs.PredictedPoints, expected)
	}
}

func TestPredictDerivesRestFromGameLog(t *testing.T) {
	gameDate := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	source := &fakeGameLogSource{log: models.GameLog{
		{GameDate: gameDate.AddDate(0, 0, -1), Matchup: "DAL @ MIN", Points: 28, Minutes: 36},
		{GameDate: gameDate.AddDate(0, 0, -3), Matchup: "DAL vs. DEN", Points: 24, Minutes: 34},
	}}
	e := New(testRepository(t), source, nil, fullWeights(), logrus.New())

	// Played yesterday, so a heavy-minutes player takes the back-to-back hit
	fs := e.Predict(context.Background(), "Luka Dončić", "BOS",
		PredictOptions{Home: true, GameDate: gameDate, RestDays: RestUnknown})
	if fs == nil {
		t.Fatal("expected a feature set")
	}
	if !almostEqual(fs.Adjustments.RestDays, 0.93) {
		t.Errorf("expected back-to-back multiplier 0.93, got %f", fs.Adjustments.RestDays)
	}

	// An explicit rest-day count wins over the log
	fs = e.Predict(context.Background(), "Luka Dončić", "BOS",
		PredictOptions{Home: true, GameDate: gameDate, RestDays: 2})
	if fs == nil {
		t.Fatal("expected a feature set")
	}
	if !almostEqual(fs.Adjustments.RestDays, 1.03) {
		t.Errorf("expected explicit two-day multiplier 1.03, got %f", fs.Adjustments.RestDays)
	}
}

func TestSessionCachesGameLogs(t *testing.T) {
	source := &fakeGameLogSource{}
	e := New(testRepository(t), source, nil, fullWeights(), logrus.New())

	session := e.NewSession()
	opts := PredictOptions{Home: true, RestDays: RestUnknown}
	session.Predict(context.Background(), "Luka Dončić", "BOS", opts)
	session.Predict(context.Background(), "Luka Dončić", "BOS", opts)

	if got := atomic.LoadInt32(&source.fetches); got != 1 {
		t.Errorf("expected 1 fetch within a session, got %d", got)
	}
}

func TestGameLogFailureDegradesToNeutral(t *testing.T) {
	source := &fakeGameLogSource{fail: true}
	e := New(testRepository(t), source, nil, fullWeights(), logrus.New())

	fs := e.Predict(context.Background(), "Luka Dončić", "BOS", PredictOptions{Home: true, RestDays: RestUnknown})
	if fs == nil {
		t.Fatal("log failure must not abort the prediction")
	}
	if !almostEqual(fs.Adjustments.RecentForm, 1.0) || !almostEqual(fs.Adjustments.Upside, 1.0) {
		t.Errorf("log-driven factors should be neutral on failure: %+v", fs.Adjustments)
	}
}

func TestModelBackendReplacesBaseline(t *testing.T) {
	model := &fakeModel{values: map[models.StatType]float64{
		models.StatPoints:   40,
		models.StatRebounds: 10,
		models.StatAssists:  11,
	}}
	e := New(testRepository(t), nil, model, config.PredictionConfig{}, logrus.New())

	fs := e.Predict(context.Background(), "Luka Dončić", "BOS", PredictOptions{Home: true, RestDays: RestUnknown})
	if fs == nil {
		t.Fatal("expected a feature set")
	}
	if !fs.ModelBacked {
		t.Error("expected model-backed prediction")
	}
	if !almostEqual(fs.PredictedPoints, 40) || !almostEqual(fs.PredictedRebounds, 10) || !almostEqual(fs.PredictedAssists, 11) {
		t.Errorf("model values not applied: %+v", fs)
	}
}

func TestModelBackendFallsBack(t *testing.T) {
	model := &fakeModel{err: errors.New("model service unavailable")}
	e := New(testRepository(t), nil, model, config.PredictionConfig{}, logrus.New())

	fs := e.Predict(context.Background(), "Luka Dončić", "BOS", PredictOptions{Home: true, RestDays: RestUnknown})
	if fs == nil {
		t.Fatal("expected a feature set")
	}
	if fs.ModelBacked {
		t.Error("failed model calls must not report model-backed")
	}
	if !almostEqual(fs.PredictedPoints, 25.0) {
		t.Errorf("expected heuristic baseline, got %f", fs.PredictedPoints)
	}
}

func TestPredictSlate(t *testing.T) {
	e := New(testRepository(t), nil, nil, fullWeights(), logrus.New())

	result := e.PredictSlate(context.Background(), []Game{
		{Home: "DAL", Away: "BOS"},
		{Home: "MIN", Away: "DAL"},
	}, time.Now())

	// DAL/BOS rosters: Dončić, Tatum, Brown. MIN/DAL: Conley, Dončić again.
	if result.Processed != 5 {
		t.Errorf("expected 5 processed, got %d", result.Processed)
	}
	if result.Skipped != 0 {
		t.Errorf("expected 0 skipped, got %d", result.Skipped)
	}
	if len(result.Features) != result.Processed {
		t.Errorf("features length %d does not match processed %d", len(result.Features), result.Processed)
	}
}
