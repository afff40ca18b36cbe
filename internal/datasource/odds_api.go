package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/courtside-edge/internal/models"
)

// DefaultSport is The Odds API sport key for the NBA.
const DefaultSport = "basketball_nba"

// TheOddsAPIClient implements OddsSource against the-odds-api.com v4
type TheOddsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	region     string
	markets    []string
	books      []string
	enabled    bool
	logger     *log.Logger
}

// oddsAPIEvent is one game in The Odds API response
type oddsAPIEvent struct {
	ID         string             `json:"id"`
	HomeTeam   string             `json:"home_team"`
	AwayTeam   string             `json:"away_team"`
	Bookmakers []oddsAPIBookmaker `json:"bookmakers"`
}

type oddsAPIBookmaker struct {
	Key     string          `json:"key"`
	Markets []oddsAPIMarket `json:"markets"`
}

type oddsAPIMarket struct {
	Key      string           `json:"key"`
	Outcomes []oddsAPIOutcome `json:"outcomes"`
}

// oddsAPIOutcome carries the raw feed numbers. Lines and prices decode
// through decimal so a feed emitting strings or floats parses the same way.
type oddsAPIOutcome struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Point       *decimal.Decimal `json:"point"`
	Price       *decimal.Decimal `json:"price"`
}

// NewTheOddsAPIClient creates a new The Odds API client
func NewTheOddsAPIClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey, region string, markets, books []string, enabled bool, logger *log.Logger) *TheOddsAPIClient {
	if baseURL == "" {
		baseURL = "https://api.the-odds-api.com/v4"
	}
	if len(books) == 0 {
		books = []string{"draftkings", "fanduel", "espnbet", "betmgm", "caesars"}
	}
	return &TheOddsAPIClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		region:     region,
		markets:    markets,
		books:      books,
		enabled:    enabled,
		logger:     logger,
	}
}

// FetchPlayerProps retrieves all posted player-prop lines for a sport
func (c *TheOddsAPIClient) FetchPlayerProps(ctx context.Context, sport string) ([]models.OddsLine, error) {
	if !c.enabled {
		return nil, NewDataSourceError("the_odds_api", ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}
	if c.apiKey == "" {
		return nil, NewDataSourceError("the_odds_api", ErrCodeAuthenticationFailed, "missing API key", nil)
	}
	if sport == "" {
		sport = DefaultSport
	}

	endpoint := fmt.Sprintf("%s/sports/%s/odds", c.baseURL, sport)
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", c.region)
	params.Set("markets", strings.Join(c.markets, ","))
	params.Set("bookmakers", strings.Join(c.books, ","))
	params.Set("oddsFormat", "american")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, NewDataSourceError("the_odds_api", ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError("the_odds_api", ErrCodeNetworkError, "failed to fetch player props", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, NewDataSourceError("the_odds_api", ErrCodeAuthenticationFailed, "invalid API key", nil)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewDataSourceError("the_odds_api", ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError("the_odds_api", ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	if remaining := resp.Header.Get("x-requests-remaining"); remaining != "" && c.logger != nil {
		c.logger.Printf("The Odds API quota remaining: %s", remaining)
	}

	var events []oddsAPIEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, NewDataSourceError("the_odds_api", ErrCodeInvalidData, "failed to parse response", err)
	}

	return c.convertEvents(events), nil
}

// Name returns the data source name
func (c *TheOddsAPIClient) Name() string {
	return "the_odds_api"
}

// IsEnabled returns whether this data source is enabled
func (c *TheOddsAPIClient) IsEnabled() bool {
	return c.enabled
}

// convertEvents flattens events into one OddsLine per (player, stat, line,
// book), merging over and under outcomes onto the same row
func (c *TheOddsAPIClient) convertEvents(events []oddsAPIEvent) []models.OddsLine {
	type lineKey struct {
		player string
		stat   models.StatType
		line   string
		book   string
	}

	merged := make(map[lineKey]*models.OddsLine)
	var order []lineKey
	now := time.Now()

	for _, event := range events {
		for _, book := range event.Bookmakers {
			for _, market := range book.Markets {
				stat := statFromMarketKey(market.Key)
				for _, outcome := range market.Outcomes {
					player := outcome.Description
					if player == "" {
						player = outcome.Name
					}
					if player == "" || outcome.Point == nil || outcome.Price == nil {
						continue
					}

					outcomeStat := stat
					if outcomeStat == "" {
						outcomeStat = statFromText(outcome.Description + " " + outcome.Name)
					}
					if outcomeStat == "" {
						continue
					}

					key := lineKey{player: player, stat: outcomeStat, line: outcome.Point.String(), book: book.Key}
					line, ok := merged[key]
					if !ok {
						line = &models.OddsLine{
							PlayerName: player,
							Stat:       outcomeStat,
							Line:       outcome.Point.InexactFloat64(),
							Book:       book.Key,
							FetchedAt:  now,
						}
						merged[key] = line
						order = append(order, key)
					}

					price := int(outcome.Price.IntPart())
					if strings.Contains(strings.ToLower(outcome.Name), "under") {
						line.UnderOdds = price
					} else {
						line.OverOdds = price
					}
				}
			}
		}
	}

	out := make([]models.OddsLine, 0, len(order))
	for _, key := range order {
		out = append(out, *merged[key])
	}
	return out
}

// statFromMarketKey maps The Odds API market keys to stat types
func statFromMarketKey(key string) models.StatType {
	switch strings.ToLower(key) {
	case "player_points", "player_points_alternate":
		return models.StatPoints
	case "player_rebounds", "player_rebounds_alternate":
		return models.StatRebounds
	case "player_assists", "player_assists_alternate":
		return models.StatAssists
	case "player_threes", "player_threes_alternate":
		return models.StatThrees
	case "player_steals":
		return models.StatSteals
	case "player_blocks":
		return models.StatBlocks
	default:
		return ""
	}
}

// statFromText extracts a stat type from free-form outcome text. Market
// naming varies by bookmaker, so this is a keyword fallback.
func statFromText(text string) models.StatType {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "point") || strings.Contains(lower, "pts"):
		return models.StatPoints
	case strings.Contains(lower, "rebound") || strings.Contains(lower, "board"):
		return models.StatRebounds
	case strings.Contains(lower, "assist"):
		return models.StatAssists
	case strings.Contains(lower, "three") || strings.Contains(lower, "3pt"):
		return models.StatThrees
	case strings.Contains(lower, "steal"):
		return models.StatSteals
	case strings.Contains(lower, "block"):
		return models.StatBlocks
	default:
		return ""
	}
}
