// Package config provides configuration management for the Courtside Edge application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App           AppConfig           `mapstructure:"app" validate:"required"`
	Database      DatabaseConfig      `mapstructure:"database" validate:"required"`
	Stats         StatsConfig         `mapstructure:"stats" validate:"required"`
	OddsAPI       OddsAPIConfig       `mapstructure:"odds_api" validate:"required"`
	NBAStatsAPI   NBAStatsAPIConfig   `mapstructure:"nba_stats_api" validate:"required"`
	Model         ModelConfig         `mapstructure:"model" validate:"required"`
	Prediction    PredictionConfig    `mapstructure:"prediction" validate:"required"`
	Betting       BettingConfig       `mapstructure:"betting" validate:"required"`
	DataIngestion DataIngestionConfig `mapstructure:"data_ingestion" validate:"required"`
	Metrics       MetricsConfig       `mapstructure:"metrics" validate:"required"`
	Features      FeaturesConfig      `mapstructure:"features" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// StatsConfig represents the season-stat CSV sources and how to blend them
type StatsConfig struct {
	Seasons   []SeasonSourceConfig `mapstructure:"seasons" validate:"required,min=1,dive"`
	BlendMode string               `mapstructure:"blend_mode" validate:"required,blendmode"`
}

// SeasonSourceConfig points at one season's player and team CSV files
type SeasonSourceConfig struct {
	Label       string `mapstructure:"label" validate:"required"`
	PlayersFile string `mapstructure:"players_file" validate:"required"`
	TeamsFile   string `mapstructure:"teams_file" validate:"required"`
}

// OddsAPIConfig represents the odds provider configuration
type OddsAPIConfig struct {
	BaseURL               string   `mapstructure:"base_url" validate:"required,url"`
	APIKey                string   `mapstructure:"api_key"`
	Region                string   `mapstructure:"region" validate:"required"`
	Markets               []string `mapstructure:"markets" validate:"required,min=1,propmarkets"`
	TimeoutSeconds        int      `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts         int      `mapstructure:"retry_attempts" validate:"gte=0"`
	RateLimitPerSecond    float64  `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
	PollingIntervalSecond int      `mapstructure:"polling_interval_seconds" validate:"required,gt=0"`
}

// NBAStatsAPIConfig represents the NBA stats API client configuration
type NBAStatsAPIConfig struct {
	BaseURL            string  `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds     int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts      int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
	CacheTTLSeconds    int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
}

// ModelConfig represents the trained-model backend configuration
type ModelConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	URL             string `mapstructure:"url" validate:"required_if=Enabled true,omitempty,url"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	Version         string `mapstructure:"version"`
}

// PredictionConfig represents adjustment-factor weights for the engine.
// A weight of 0 disables the factor, 1 applies it at full strength.
type PredictionConfig struct {
	SystemFitWeight  float64 `mapstructure:"system_fit_weight" validate:"gte=0,lte=1"`
	RecentFormWeight float64 `mapstructure:"recent_form_weight" validate:"gte=0,lte=1"`
	HeadToHeadWeight float64 `mapstructure:"head_to_head_weight" validate:"gte=0,lte=1"`
	RestWeight       float64 `mapstructure:"rest_weight" validate:"gte=0,lte=1"`
	HomeAwayWeight   float64 `mapstructure:"home_away_weight" validate:"gte=0,lte=1"`
	UpsideWeight     float64 `mapstructure:"upside_weight" validate:"gte=0,lte=1"`
}

// BettingConfig represents bet-generation thresholds
type BettingConfig struct {
	MinExpectedValue float64 `mapstructure:"min_expected_value" validate:"gte=0"`
	KellyFraction    float64 `mapstructure:"kelly_fraction" validate:"required,gt=0,lte=1"`
	MaxKellyUnits    float64 `mapstructure:"max_kelly_units" validate:"required,gt=0"`
	IncludeNegative  bool    `mapstructure:"include_negative"`
}

// DataIngestionConfig represents data ingestion configuration
type DataIngestionConfig struct {
	Sources  []DataSourceConfig `mapstructure:"sources" validate:"required,min=1"`
	Schedule ScheduleConfig     `mapstructure:"schedule" validate:"required"`
}

// DataSourceConfig represents a single data source configuration
type DataSourceConfig struct {
	Name      string `mapstructure:"name" validate:"required"`
	Enabled   bool   `mapstructure:"enabled"`
	BatchSize int    `mapstructure:"batch_size" validate:"omitempty,gt=0"`
	APIKey    string `mapstructure:"api_key"`
	URL       string `mapstructure:"url" validate:"omitempty,url"`
}

// ScheduleConfig represents ingestion scheduling
type ScheduleConfig struct {
	StatsRefreshCron           string `mapstructure:"stats_refresh_cron" validate:"required"`
	OddsPollingIntervalSeconds int    `mapstructure:"odds_polling_interval_seconds" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	PersistenceEnabled      bool `mapstructure:"persistence_enabled"`
	ModelPredictionsEnabled bool `mapstructure:"model_predictions_enabled"`
	InjuryChecksEnabled     bool `mapstructure:"injury_checks_enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
