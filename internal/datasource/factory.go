package datasource

import (
	"fmt"
	"log"

	"github.com/yourusername/courtside-edge/internal/config"
)

// SourceType represents the type of data source
type SourceType string

const (
	// The Odds API player-prop source type
	OddsAPISourceType SourceType = "the_odds_api"
	// NBA stats API source type
	NBAStatsSourceType SourceType = "nba_stats"
	// Injury feed source type
	InjurySourceType SourceType = "injury_feed"
)

// Sources bundles the external collaborators the services depend on.
// Any field may be nil when its source is disabled.
type Sources struct {
	Odds     OddsSource
	GameLogs GameLogSource
	Seasons  SeasonStatsSource
	Injuries InjurySource
}

// Factory creates data source implementations based on configuration
type Factory struct {
	logger *log.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *log.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// NewSources creates all enabled data sources from configuration
func (f *Factory) NewSources(httpClient *RateLimitedHTTPClient) (*Sources, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("HTTP client is required")
	}

	sources := &Sources{}
	for _, srcCfg := range f.config.DataIngestion.Sources {
		if !srcCfg.Enabled {
			if f.logger != nil {
				f.logger.Printf("Skipping disabled data source: %s", srcCfg.Name)
			}
			continue
		}

		switch SourceType(srcCfg.Name) {
		case OddsAPISourceType:
			apiKey := srcCfg.APIKey
			if apiKey == "" {
				apiKey = f.config.OddsAPI.APIKey
			}
			sources.Odds = NewTheOddsAPIClient(
				httpClient,
				f.config.OddsAPI.BaseURL,
				apiKey,
				f.config.OddsAPI.Region,
				f.config.OddsAPI.Markets,
				nil,
				true,
				f.logger,
			)

		case NBAStatsSourceType:
			client := NewNBAStatsClient(httpClient, f.config.NBAStatsAPI.BaseURL, true, f.logger)
			sources.GameLogs = client
			sources.Seasons = client

		case InjurySourceType:
			sources.Injuries = NewInjuryClient(httpClient, srcCfg.URL, true, f.logger)

		default:
			return nil, fmt.Errorf("unknown data source: %s", srcCfg.Name)
		}

		if f.logger != nil {
			f.logger.Printf("Created data source: %s", srcCfg.Name)
		}
	}

	if sources.Odds == nil && sources.GameLogs == nil && sources.Injuries == nil {
		return nil, fmt.Errorf("no enabled data sources configured")
	}

	return sources, nil
}
