//go:build e2e

package e2e

import (
	"log"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/courtside-edge/internal/analysis"
	"github.com/yourusername/courtside-edge/internal/config"
	"github.com/yourusername/courtside-edge/internal/datasource"
	"github.com/yourusername/courtside-edge/internal/engine"
	"github.com/yourusername/courtside-edge/internal/mlmodel"
	"github.com/yourusername/courtside-edge/internal/models"
	"github.com/yourusername/courtside-edge/internal/stats"
	"github.com/yourusername/courtside-edge/test/helpers"
)

func testStatsRepository(t *testing.T) *stats.Repository {
	t.Helper()
	repo, err := stats.NewRepository([]stats.SeasonSource{
		{Label: "2025-26", PlayersFile: "testdata/players.csv", TeamsFile: "testdata/teams.csv"},
	}, models.BlendLatest, logrus.New())
	require.NoError(t, err, "failed to load season stats")
	return repo
}

// TestFullBetPipeline exercises the whole flow: season stats load, odds
// fetch through the real HTTP client against a mock book, slate
// prediction with a mock model backend and EV-priced bet generation.
func TestFullBetPipeline(t *testing.T) {
	helpers.SkipIfShort(t)

	oddsServer := helpers.MockOddsServer(t, []helpers.PropMarket{
		{Player: "Luka Dončić", MarketKey: "player_points", Line: 24.5, OverOdds: -110, UnderOdds: -110, Book: "draftkings"},
		{Player: "Jayson Tatum", MarketKey: "player_points", Line: 30.5, OverOdds: -115, UnderOdds: -105, Book: "draftkings"},
		{Player: "Luka Dončić", MarketKey: "player_assists", Line: 8.5, OverOdds: 100, UnderOdds: -120, Book: "fanduel"},
	})
	defer oddsServer.Close()

	modelServer := helpers.MockModelServer(t, 28.0)
	defer modelServer.Close()

	httpLogger := log.New(os.Stdout, "e2e: ", log.LstdFlags)
	httpClient := datasource.NewRateLimitedHTTPClient(datasource.DefaultHTTPClientConfig(), httpLogger)
	defer httpClient.Close()

	oddsClient := datasource.NewTheOddsAPIClient(
		httpClient, oddsServer.URL, "test-key", "us",
		[]string{"player_points", "player_rebounds", "player_assists"}, nil, true, httpLogger,
	)

	ctx := helpers.CreateTestContext(t, 30*time.Second)
	lines, err := oddsClient.FetchPlayerProps(ctx, datasource.DefaultSport)
	require.NoError(t, err, "odds fetch failed")
	require.Len(t, lines, 3, "expected one merged line per market")

	model := mlmodel.NewClient(config.ModelConfig{
		URL:             modelServer.URL,
		TimeoutSeconds:  5,
		CacheTTLSeconds: 60,
		Version:         "test-v1",
	}, logrus.New())

	eng := engine.New(testStatsRepository(t), nil, model, config.PredictionConfig{}, logrus.New())

	gameDate := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	result := eng.PredictSlate(ctx, []engine.Game{{Home: "DAL", Away: "BOS"}}, gameDate)
	require.NotZero(t, result.Processed, "no players predicted")

	// All three stats came from the model
	for _, fs := range result.Features {
		assert.True(t, fs.ModelBacked, "%s should be model backed", fs.PlayerName)
		assert.InDelta(t, 28.0, fs.PredictedPoints, 0.001)
	}

	generator := analysis.NewBetGenerator(config.BettingConfig{
		MinExpectedValue: 0,
		KellyFraction:    0.25,
		MaxKellyUnits:    3.0,
		IncludeNegative:  true,
	}, logrus.New())

	candidates := generator.Generate(result.Features, lines, models.StatPoints)
	require.NotEmpty(t, candidates, "expected priced candidates")

	// Model predicts 28 points against Luka's 24.5 line, so the over must
	// price as the positive side
	var luka *models.BetCandidate
	for i := range candidates {
		if candidates[i].PlayerName == "Luka Dončić" && candidates[i].Direction == models.DirectionOver {
			luka = &candidates[i]
			break
		}
	}
	require.NotNil(t, luka, "no over candidate priced for Luka")
	assert.Greater(t, luka.ExpectedValue, 0.0)
	assert.Greater(t, luka.KellyUnits, 0.0)

	// EV sort is flat across the stat
	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].ExpectedValue, candidates[i].ExpectedValue)
	}
}
