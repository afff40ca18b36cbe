package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/courtside-edge/internal/models"
)

// OddsSource fetches player-prop markets from a sportsbook aggregator
type OddsSource interface {
	// FetchPlayerProps retrieves all posted player-prop lines for a sport
	FetchPlayerProps(ctx context.Context, sport string) ([]models.OddsLine, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// GameLogSource fetches per-game player logs
type GameLogSource interface {
	// FetchGameLog retrieves a player's game log for one season
	FetchGameLog(ctx context.Context, playerID int, season string) (models.GameLog, error)

	Name() string
	IsEnabled() bool
}

// SeasonStatsSource fetches league-wide season aggregates, used by the
// ingestion daemon to refresh the CSV snapshots the repository loads
type SeasonStatsSource interface {
	// FetchPlayerSeasonStats retrieves per-game player averages for a season
	FetchPlayerSeasonStats(ctx context.Context, season string) ([]models.PlayerSeasonRecord, error)

	// FetchTeamSeasonStats retrieves team pace and ratings for a season
	FetchTeamSeasonStats(ctx context.Context, season string) ([]models.TeamSeasonProfile, error)

	Name() string
	IsEnabled() bool
}

// InjurySource fetches player availability. Implementations degrade to
// "assume healthy" rather than failing a prediction run.
type InjurySource interface {
	// FetchInjuries retrieves current injury statuses keyed by player name
	FetchInjuries(ctx context.Context) (map[string]models.InjuryStatus, error)

	Name() string
	IsEnabled() bool
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeUnknown              = "unknown"
)

// Error constructors
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
	ErrNetworkError         = errors.New("network error")
	ErrServerError          = errors.New("server error")
)

const dataSourceDisabledMsg = "data source is disabled"

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
