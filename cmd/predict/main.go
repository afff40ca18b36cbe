// Package main provides the entry point for the slate prediction CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/analysis"
	"github.com/yourusername/courtside-edge/internal/config"
	"github.com/yourusername/courtside-edge/internal/database"
	"github.com/yourusername/courtside-edge/internal/datasource"
	"github.com/yourusername/courtside-edge/internal/engine"
	"github.com/yourusername/courtside-edge/internal/logger"
	"github.com/yourusername/courtside-edge/internal/mlmodel"
	"github.com/yourusername/courtside-edge/internal/models"
	"github.com/yourusername/courtside-edge/internal/repository"
	"github.com/yourusername/courtside-edge/internal/service"
	"github.com/yourusername/courtside-edge/internal/stats"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		gamesFlag  = flag.String("games", "", "Slate as comma separated AWAY@HOME pairs, e.g. BOS@DAL,LAL@DEN")
		dateFlag   = flag.String("date", "", "Game date (YYYY-MM-DD), defaults to today")
		top        = flag.Int("top", 20, "Number of value plays to print")
		persist    = flag.Bool("persist", false, "Persist predictions and value plays")
	)
	flag.Parse()

	ctx := context.Background()
	cfg := loadConfigWithSecrets(*configPath)
	appLog := logger.NewLogger(cfg.App.LogLevel)

	games, err := parseGames(*gamesFlag)
	if err != nil {
		appLog.Fatalf("Invalid -games: %v", err)
	}
	gameDate := parseGameDate(*dateFlag, appLog)

	repo, err := stats.NewRepository(seasonSources(cfg), models.BlendMode(cfg.Stats.BlendMode), appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to load season stats")
	}

	sources := buildSources(cfg, appLog)

	var model engine.ModelBackend
	if cfg.Features.ModelPredictionsEnabled && cfg.Model.Enabled {
		model = mlmodel.NewClient(cfg.Model, appLog)
		appLog.WithField("url", cfg.Model.URL).Info("Model backend enabled")
	}

	eng := engine.New(repo, sources.GameLogs, model, cfg.Prediction, appLog)

	var repos *repository.Repositories
	if *persist {
		if !cfg.Features.PersistenceEnabled {
			appLog.Fatal("Persistence requested but the persistence feature flag is off")
		}
		db, err := database.Initialize(ctx, cfg)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to initialize database")
		}
		defer db.Close()
		repos, err = repository.NewRepositories(db)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to initialize repositories")
		}
	}

	svc := service.NewPredictionService(eng, analysis.NewValueAnalyzer(appLog), repos, appLog)

	report, err := svc.RunSlate(ctx, games, gameDate, nil)
	if err != nil {
		appLog.WithError(err).Fatal("Slate run failed")
	}

	printPlays(report, gameDate, *top)
}

func loadConfigWithSecrets(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func seasonSources(cfg *config.Config) []stats.SeasonSource {
	sources := make([]stats.SeasonSource, 0, len(cfg.Stats.Seasons))
	for _, s := range cfg.Stats.Seasons {
		sources = append(sources, stats.SeasonSource{
			Label:       s.Label,
			PlayersFile: s.PlayersFile,
			TeamsFile:   s.TeamsFile,
		})
	}
	return sources
}

// buildSources creates the configured data sources. Predictions degrade
// gracefully without them, so failure is a warning, not fatal.
func buildSources(cfg *config.Config, appLog *logrus.Logger) *datasource.Sources {
	httpLogger := log.New(os.Stdout, "datasource: ", log.LstdFlags)
	httpClient := datasource.NewRateLimitedHTTPClient(datasource.DefaultHTTPClientConfig(), httpLogger)

	sources, err := datasource.NewFactory(cfg, httpLogger).NewSources(httpClient)
	if err != nil {
		appLog.WithError(err).Warn("No data sources available, factors degrade to neutral")
		return &datasource.Sources{}
	}
	return sources
}

// parseGames turns "BOS@DAL,LAL@DEN" into a slate. The away team reads
// first, matching the usual scoreboard notation.
func parseGames(s string) ([]engine.Game, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("at least one game is required")
	}

	var games []engine.Game
	for _, pair := range strings.Split(s, ",") {
		parts := strings.Split(strings.TrimSpace(pair), "@")
		if len(parts) != 2 {
			return nil, fmt.Errorf("game %q is not in AWAY@HOME form", pair)
		}
		away := strings.ToUpper(strings.TrimSpace(parts[0]))
		home := strings.ToUpper(strings.TrimSpace(parts[1]))
		if !models.NBATricodes[away] || !models.NBATricodes[home] {
			return nil, fmt.Errorf("game %q uses an unknown tricode", pair)
		}
		games = append(games, engine.Game{Home: home, Away: away})
	}
	return games, nil
}

func parseGameDate(s string, appLog *logrus.Logger) time.Time {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		appLog.Fatalf("Invalid -date: %v", err)
	}
	return parsed
}

func printPlays(report *service.SlateReport, gameDate time.Time, top int) {
	fmt.Printf("\nValue plays for %s (%d players, %d skipped)\n\n",
		gameDate.Format("2006-01-02"), report.Processed, report.Skipped)

	if top > len(report.Plays) {
		top = len(report.Plays)
	}
	for i := 0; i < top; i++ {
		play := report.Plays[i]
		direction := string(play.Direction())
		if direction == "" {
			direction = "-"
		}
		fmt.Printf("%2d. %-24s %s vs %s  overall %+6.2f  (pts %+5.2f, reb %+5.2f, ast %+5.2f)  %s\n",
			i+1, play.PlayerName, play.Team, play.Opponent,
			play.OverallValue, play.PointsValue, play.ReboundsValue, play.AssistsValue, direction)
	}
	if report.Persisted {
		fmt.Printf("\nPersisted %d predictions and %d value plays\n", len(report.Features), len(report.Plays))
	}
}
