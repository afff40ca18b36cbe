// Package helpers provides shared test utilities: fixture loading, mock
// upstream servers and polling assertions.
package helpers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// LoadFixture loads test data from a JSON fixture file.
func LoadFixture(t *testing.T, filename string, target interface{}) {
	t.Helper()

	fixturePath := filepath.Join("testdata", filename)
	data, err := os.ReadFile(fixturePath)
	require.NoError(t, err, "failed to read fixture file: %s", filename)

	err = json.Unmarshal(data, target)
	require.NoError(t, err, "failed to unmarshal fixture: %s", filename)
}

// MockModelServer creates a mock HTTP server for the prediction model
// service. Every predict call returns the given prediction.
func MockModelServer(t *testing.T, prediction float64) *httptest.Server {
	t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
			})

		case "/api/v1/predict":
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"prediction":    prediction,
				"model_version": "test-v1",
			})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	return httptest.NewServer(handler)
}

// PropMarket is one player-prop market served by MockOddsServer.
type PropMarket struct {
	Player    string
	MarketKey string
	Line      float64
	OverOdds  int
	UnderOdds int
	Book      string
}

// MockOddsServer creates a mock The Odds API server posting the given
// prop markets for every odds request.
func MockOddsServer(t *testing.T, props []PropMarket) *httptest.Server {
	t.Helper()

	type outcome struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Point       float64 `json:"point"`
		Price       int     `json:"price"`
	}
	type market struct {
		Key      string    `json:"key"`
		Outcomes []outcome `json:"outcomes"`
	}
	type bookmaker struct {
		Key     string   `json:"key"`
		Markets []market `json:"markets"`
	}
	type event struct {
		ID         string      `json:"id"`
		HomeTeam   string      `json:"home_team"`
		AwayTeam   string      `json:"away_team"`
		Bookmakers []bookmaker `json:"bookmakers"`
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		books := make(map[string][]market)
		for _, p := range props {
			books[p.Book] = append(books[p.Book], market{
				Key: p.MarketKey,
				Outcomes: []outcome{
					{Name: "Over", Description: p.Player, Point: p.Line, Price: p.OverOdds},
					{Name: "Under", Description: p.Player, Point: p.Line, Price: p.UnderOdds},
				},
			})
		}

		ev := event{ID: "evt-test-001", HomeTeam: "Dallas Mavericks", AwayTeam: "Boston Celtics"}
		for key, markets := range books {
			ev.Bookmakers = append(ev.Bookmakers, bookmaker{Key: key, Markets: markets})
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode([]event{ev})
	})

	return httptest.NewServer(handler)
}

// WaitForCondition waits for a condition to become true or times out.
func WaitForCondition(t *testing.T, timeout time.Duration, condition func() bool, message string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	require.Fail(t, "condition not met within timeout", message)
}

// CreateTestContext creates a context with a timeout for testing.
func CreateTestContext(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)

	return ctx
}

// GetEnvOrDefault returns environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// SkipIfShort skips test if running in short mode.
func SkipIfShort(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}
}
