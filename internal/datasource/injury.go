package datasource

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/yourusername/courtside-edge/internal/models"
)

// InjuryClient implements InjurySource against a JSON injury feed.
// Failures are reported but callers are expected to assume players are
// healthy when no data comes back.
type InjuryClient struct {
	httpClient *RateLimitedHTTPClient
	feedURL    string
	enabled    bool
	logger     *log.Logger
}

type injuryFeedEntry struct {
	Player  string `json:"player"`
	Status  string `json:"status"`
	Detail  string `json:"injury"`
	Updated string `json:"updated"`
}

// NewInjuryClient creates a new injury feed client
func NewInjuryClient(httpClient *RateLimitedHTTPClient, feedURL string, enabled bool, logger *log.Logger) *InjuryClient {
	return &InjuryClient{
		httpClient: httpClient,
		feedURL:    feedURL,
		enabled:    enabled,
		logger:     logger,
	}
}

// Name returns the data source name
func (c *InjuryClient) Name() string {
	return "injury_feed"
}

// IsEnabled returns whether this data source is enabled
func (c *InjuryClient) IsEnabled() bool {
	return c.enabled
}

// FetchInjuries retrieves current injury statuses keyed by player name
func (c *InjuryClient) FetchInjuries(ctx context.Context) (map[string]models.InjuryStatus, error) {
	if !c.enabled || c.feedURL == "" {
		return nil, NewDataSourceError("injury_feed", ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, NewDataSourceError("injury_feed", ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError("injury_feed", ErrCodeNetworkError, "failed to fetch injuries", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewDataSourceError("injury_feed", ErrCodeServerError, "unexpected status", nil)
	}

	var entries []injuryFeedEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, NewDataSourceError("injury_feed", ErrCodeInvalidData, "failed to parse response", err)
	}

	out := make(map[string]models.InjuryStatus, len(entries))
	for _, e := range entries {
		updated, _ := time.Parse(time.RFC3339, e.Updated)
		out[e.Player] = models.InjuryStatus{
			PlayerName: e.Player,
			Status:     e.Status,
			Detail:     e.Detail,
			UpdatedAt:  updated,
			HasData:    true,
		}
	}
	return out, nil
}
