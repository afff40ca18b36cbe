package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yourusername/courtside-edge/internal/models"
)

// NBAStatsClient implements GameLogSource and SeasonStatsSource against
// the stats.nba.com JSON endpoints
type NBAStatsClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	enabled    bool
	logger     *log.Logger
}

// statsResponse is the stats.nba.com result-set envelope
type statsResponse struct {
	ResultSets []struct {
		Name    string            `json:"name"`
		Headers []string          `json:"headers"`
		RowSet  [][]json.RawMessage `json:"rowSet"`
	} `json:"resultSets"`
}

// NewNBAStatsClient creates a new stats.nba.com client
func NewNBAStatsClient(httpClient *RateLimitedHTTPClient, baseURL string, enabled bool, logger *log.Logger) *NBAStatsClient {
	if baseURL == "" {
		baseURL = "https://stats.nba.com/stats"
	}
	return &NBAStatsClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		enabled:    enabled,
		logger:     logger,
	}
}

// Name returns the data source name
func (c *NBAStatsClient) Name() string {
	return "nba_stats"
}

// IsEnabled returns whether this data source is enabled
func (c *NBAStatsClient) IsEnabled() bool {
	return c.enabled
}

// FetchGameLog retrieves a player's game log for one season
func (c *NBAStatsClient) FetchGameLog(ctx context.Context, playerID int, season string) (models.GameLog, error) {
	rows, err := c.fetchResultSet(ctx, "playergamelog", url.Values{
		"PlayerID":   {fmt.Sprintf("%d", playerID)},
		"Season":     {season},
		"SeasonType": {"Regular Season"},
	})
	if err != nil {
		return nil, err
	}

	var out models.GameLog
	for _, row := range rows {
		entry := models.GameLogEntry{
			GameDate:   parseGameDate(row.str("GAME_DATE")),
			Matchup:    row.str("MATCHUP"),
			Points:     row.num("PTS"),
			Rebounds:   row.num("REB"),
			Assists:    row.num("AST"),
			ThreesMade: row.num("FG3M"),
			Steals:     row.num("STL"),
			Blocks:     row.num("BLK"),
			Minutes:    row.num("MIN"),
		}
		out = append(out, entry)
	}
	out.SortRecentFirst()
	return out, nil
}

// FetchPlayerSeasonStats retrieves per-game player averages for a season
func (c *NBAStatsClient) FetchPlayerSeasonStats(ctx context.Context, season string) ([]models.PlayerSeasonRecord, error) {
	rows, err := c.fetchResultSet(ctx, "leaguedashplayerstats", url.Values{
		"Season":      {season},
		"SeasonType":  {"Regular Season"},
		"PerMode":     {"PerGame"},
		"MeasureType": {"Base"},
	})
	if err != nil {
		return nil, err
	}

	var out []models.PlayerSeasonRecord
	for _, row := range rows {
		team := row.str("TEAM_ABBREVIATION")
		if !models.NBATricodes[team] {
			continue
		}
		out = append(out, models.PlayerSeasonRecord{
			PlayerID:     int(row.num("PLAYER_ID")),
			Name:         row.str("PLAYER_NAME"),
			Team:         team,
			Season:       season,
			Points:       row.num("PTS"),
			Rebounds:     row.num("REB"),
			Assists:      row.num("AST"),
			FieldGoalPct: row.num("FG_PCT"),
			ThreesMade:   row.num("FG3M"),
			Minutes:      row.num("MIN"),
			GamesPlayed:  row.num("GP"),
		})
	}
	return out, nil
}

// FetchTeamSeasonStats retrieves team pace and ratings for a season
func (c *NBAStatsClient) FetchTeamSeasonStats(ctx context.Context, season string) ([]models.TeamSeasonProfile, error) {
	rows, err := c.fetchResultSet(ctx, "leaguedashteamstats", url.Values{
		"Season":      {season},
		"SeasonType":  {"Regular Season"},
		"PerMode":     {"PerGame"},
		"MeasureType": {"Advanced"},
	})
	if err != nil {
		return nil, err
	}

	var out []models.TeamSeasonProfile
	for _, row := range rows {
		team := row.str("TEAM_ABBREVIATION")
		if !models.NBATricodes[team] {
			continue
		}
		profile := models.TeamSeasonProfile{
			TeamID:          int(row.num("TEAM_ID")),
			Abbreviation:    team,
			Season:          season,
			Pace:            row.num("PACE"),
			OffensiveRating: row.num("OFF_RATING"),
			DefensiveRating: row.num("DEF_RATING"),
			WinPct:          row.num("W_PCT"),
		}
		out = append(out, profile)
	}
	return out, nil
}

// resultRow pairs a row with its header index for named access
type resultRow struct {
	header map[string]int
	cells  []json.RawMessage
}

func (r resultRow) str(col string) string {
	idx, ok := r.header[col]
	if !ok || idx >= len(r.cells) {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.cells[idx], &s); err != nil {
		return ""
	}
	return s
}

func (r resultRow) num(col string) float64 {
	idx, ok := r.header[col]
	if !ok || idx >= len(r.cells) {
		return 0
	}
	var v float64
	if err := json.Unmarshal(r.cells[idx], &v); err != nil {
		return 0
	}
	return v
}

// fetchResultSet calls one stats.nba.com endpoint and flattens the first
// result set into named rows
func (c *NBAStatsClient) fetchResultSet(ctx context.Context, endpoint string, params url.Values) ([]resultRow, error) {
	if !c.enabled {
		return nil, NewDataSourceError("nba_stats", ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, NewDataSourceError("nba_stats", ErrCodeNetworkError, "failed to create request", err)
	}
	// stats.nba.com rejects requests without browser-like headers
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")
	req.Header.Set("Referer", "https://www.nba.com/")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError("nba_stats", ErrCodeNetworkError, "failed to fetch "+endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewDataSourceError("nba_stats", ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewDataSourceError("nba_stats", ErrCodeServerError, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var parsed statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, NewDataSourceError("nba_stats", ErrCodeInvalidData, "failed to parse response", err)
	}
	if len(parsed.ResultSets) == 0 {
		return nil, NewDataSourceError("nba_stats", ErrCodeInvalidData, "no result sets in response", nil)
	}

	set := parsed.ResultSets[0]
	header := make(map[string]int, len(set.Headers))
	for i, name := range set.Headers {
		header[name] = i
	}

	rows := make([]resultRow, 0, len(set.RowSet))
	for _, cells := range set.RowSet {
		rows = append(rows, resultRow{header: header, cells: cells})
	}
	return rows, nil
}

// parseGameDate handles the "APR 09, 2025" date format of the game log
// endpoint, zero time on failure
func parseGameDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	normalized := strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	if t, err := time.Parse("Jan 02, 2006", normalized); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}
