// Package mlmodel provides the HTTP client for the trained prediction
// model backend. The engine treats it as an optional collaborator and
// falls back to heuristic predictions whenever a call fails.
package mlmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/config"
	"github.com/yourusername/courtside-edge/internal/models"
)

// Request carries the matchup features the model scores on
type Request struct {
	PlayerName    string  `json:"player_name"`
	Team          string  `json:"team"`
	Opponent      string  `json:"opponent"`
	SeasonAverage float64 `json:"season_average"`
	Minutes       float64 `json:"minutes"`
	PaceFactor    float64 `json:"pace_factor"`
	DefenseFactor float64 `json:"defense_factor"`
}

type predictResponse struct {
	Prediction   float64 `json:"prediction"`
	ModelVersion string  `json:"model_version"`
}

// Client calls the model service over HTTP and caches results per
// (player, opponent, stat, model version).
type Client struct {
	client  *http.Client
	baseURL string
	version string
	cache   *cache.Cache
	logger  *logrus.Logger
}

// NewClient creates a model backend client from configuration
func NewClient(cfg config.ModelConfig, logger *logrus.Logger) *Client {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	return &Client{
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		baseURL: cfg.URL,
		version: cfg.Version,
		cache:   cache.New(ttl, 2*ttl),
		logger:  logger,
	}
}

// PredictStat returns the model's prediction for one player stat
func (c *Client) PredictStat(ctx context.Context, req Request, stat models.StatType) (float64, error) {
	key := fmt.Sprintf("%s|%s|%s|%s", req.PlayerName, req.Opponent, stat, c.version)
	if v, ok := c.cache.Get(key); ok {
		return v.(float64), nil
	}

	payload := struct {
		Request
		Stat    models.StatType `json:"stat"`
		Version string          `json:"model_version,omitempty"`
	}{Request: req, Stat: stat, Version: c.version}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/predict", bytes.NewBuffer(body))
	if err != nil {
		return 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("%w: status %d: %s", ErrModelUnavailable, resp.StatusCode, string(raw))
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if out.Prediction < 0 {
		return 0, fmt.Errorf("%w: negative prediction %f", ErrBadResponse, out.Prediction)
	}

	c.cache.Set(key, out.Prediction, cache.DefaultExpiration)

	c.logger.WithFields(logrus.Fields{
		"player":        req.PlayerName,
		"stat":          stat,
		"prediction":    out.Prediction,
		"model_version": out.ModelVersion,
	}).Debug("Model prediction fetched")

	return out.Prediction, nil
}

// HealthCheck checks model service availability
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrModelUnavailable, resp.StatusCode)
	}
	return nil
}
