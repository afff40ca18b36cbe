// Package main provides the entry point for the bet candidate CLI.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/courtside-edge/internal/analysis"
	"github.com/yourusername/courtside-edge/internal/config"
	"github.com/yourusername/courtside-edge/internal/database"
	"github.com/yourusername/courtside-edge/internal/datasource"
	"github.com/yourusername/courtside-edge/internal/engine"
	"github.com/yourusername/courtside-edge/internal/logger"
	"github.com/yourusername/courtside-edge/internal/metrics"
	"github.com/yourusername/courtside-edge/internal/mlmodel"
	"github.com/yourusername/courtside-edge/internal/models"
	"github.com/yourusername/courtside-edge/internal/repository"
	"github.com/yourusername/courtside-edge/internal/stats"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	gamesFlag  string
	dateFlag   string
	statFlag   string
	styleFlag  string
	grouped    bool
	topFlag    int
	persist    bool

	appLog *logrus.Logger
	cfg    *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&gamesFlag, "games", "", "Slate as comma separated AWAY@HOME pairs, e.g. BOS@DAL,LAL@DEN")
	rootCmd.Flags().StringVar(&dateFlag, "date", "", "Game date (YYYY-MM-DD), defaults to today")
	rootCmd.Flags().StringVar(&statFlag, "stat", "all", "Stat to price: points, rebounds, assists or all")
	rootCmd.Flags().StringVar(&styleFlag, "style", "detailed", "Output style: detailed, ev or simple")
	rootCmd.Flags().BoolVar(&grouped, "grouped", false, "Group output into mainline and longshot bands")
	rootCmd.Flags().IntVar(&topFlag, "top", 25, "Number of candidates to print per stat")
	rootCmd.Flags().BoolVar(&persist, "persist", false, "Persist generated candidates")
	rootCmd.MarkFlagRequired("games")
}

var rootCmd = &cobra.Command{
	Use:     "bets",
	Short:   "Generate EV-priced player prop bet candidates",
	Long:    `Joins slate predictions to the posted player-prop markets and emits ranked bet candidates with expected value, fair value odds and Kelly stake sizing.`,
	Version: fmt.Sprintf("%s (%s)", Version, GitCommit),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
			region := os.Getenv("AWS_REGION")
			secretName := os.Getenv("AWS_SECRET_NAME")
			if region == "" || secretName == "" {
				return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
			}
			if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
				return fmt.Errorf("failed to load secrets: %w", err)
			}
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context) error {
	games, err := parseGames(gamesFlag)
	if err != nil {
		return err
	}
	gameDate, err := parseGameDate(dateFlag)
	if err != nil {
		return err
	}
	statList, err := resolveStats(statFlag)
	if err != nil {
		return err
	}
	style, err := resolveStyle(styleFlag)
	if err != nil {
		return err
	}

	repo, err := stats.NewRepository(seasonSources(cfg), models.BlendMode(cfg.Stats.BlendMode), appLog)
	if err != nil {
		return fmt.Errorf("failed to load season stats: %w", err)
	}

	httpLogger := log.New(os.Stdout, "datasource: ", log.LstdFlags)
	httpClient := datasource.NewRateLimitedHTTPClient(datasource.DefaultHTTPClientConfig(), httpLogger)
	sources, err := datasource.NewFactory(cfg, httpLogger).NewSources(httpClient)
	if err != nil {
		return fmt.Errorf("failed to build data sources: %w", err)
	}
	if sources.Odds == nil {
		return fmt.Errorf("bet generation requires an enabled odds source")
	}

	var model engine.ModelBackend
	if cfg.Features.ModelPredictionsEnabled && cfg.Model.Enabled {
		model = mlmodel.NewClient(cfg.Model, appLog)
	}
	eng := engine.New(repo, sources.GameLogs, model, cfg.Prediction, appLog)

	start := time.Now()
	lines, err := sources.Odds.FetchPlayerProps(ctx, datasource.DefaultSport)
	metrics.RecordOddsFetch(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("failed to fetch player props: %w", err)
	}
	appLog.WithField("lines", len(lines)).Info("Player prop lines fetched")

	result := eng.PredictSlate(ctx, games, gameDate)
	generator := analysis.NewBetGenerator(cfg.Betting, appLog)

	var all []models.BetCandidate
	for _, stat := range statList {
		candidates := generator.Generate(result.Features, lines, stat)
		printCandidates(stat, candidates, style)
		all = append(all, candidates...)
	}

	if persist && len(all) > 0 {
		if err := persistCandidates(ctx, all); err != nil {
			return err
		}
		fmt.Printf("\nPersisted %d candidates\n", len(all))
	}

	return nil
}

func printCandidates(stat models.StatType, candidates []models.BetCandidate, style analysis.FormatStyle) {
	fmt.Printf("\n=== %s (%d candidates) ===\n", strings.ToUpper(string(stat)), len(candidates))

	if grouped {
		groups := analysis.GroupByPrice(candidates)
		fmt.Printf("\nMainline (to +200):\n")
		printBand(groups.Mainline, style)
		fmt.Printf("\nLongshots (+500 and up):\n")
		printBand(groups.Longshots, style)
		return
	}

	printBand(candidates, style)
}

func printBand(candidates []models.BetCandidate, style analysis.FormatStyle) {
	n := topFlag
	if n > len(candidates) {
		n = len(candidates)
	}
	for i := 0; i < n; i++ {
		fmt.Printf("  %s\n", analysis.FormatBetLine(&candidates[i], style))
	}
	if n == 0 {
		fmt.Println("  (none)")
	}
}

func persistCandidates(ctx context.Context, candidates []models.BetCandidate) error {
	if !cfg.Features.PersistenceEnabled {
		return fmt.Errorf("persistence requested but the persistence feature flag is off")
	}
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	rows := make([]*models.BetCandidate, 0, len(candidates))
	for i := range candidates {
		rows = append(rows, &candidates[i])
	}
	if err := repos.Bet.CreateBatch(ctx, rows); err != nil {
		return fmt.Errorf("failed to persist candidates: %w", err)
	}
	return nil
}

func resolveStats(s string) ([]models.StatType, error) {
	switch strings.ToLower(s) {
	case "all":
		return []models.StatType{models.StatPoints, models.StatRebounds, models.StatAssists}, nil
	case "points":
		return []models.StatType{models.StatPoints}, nil
	case "rebounds":
		return []models.StatType{models.StatRebounds}, nil
	case "assists":
		return []models.StatType{models.StatAssists}, nil
	default:
		return nil, fmt.Errorf("unknown stat %q", s)
	}
}

func resolveStyle(s string) (analysis.FormatStyle, error) {
	switch strings.ToLower(s) {
	case "detailed":
		return analysis.StyleDetailed, nil
	case "ev":
		return analysis.StyleEV, nil
	case "simple":
		return analysis.StyleSimple, nil
	default:
		return analysis.StyleDetailed, fmt.Errorf("unknown style %q", s)
	}
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

func parseGameDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", s)
}
