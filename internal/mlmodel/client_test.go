package mlmodel

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/config"
	"github.com/yourusername/courtside-edge/internal/models"
)

func testConfig(url string) config.ModelConfig {
	return config.ModelConfig{
		Enabled:         true,
		URL:             url,
		TimeoutSeconds:  5,
		CacheTTLSeconds: 60,
		Version:         "v1",
	}
}

func TestPredictStat(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/api/v1/predict" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"prediction": 28.4, "model_version": "v1"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logrus.New())

	req := Request{PlayerName: "Jayson Tatum", Opponent: "MIA", SeasonAverage: 27.1}
	pred, err := client.PredictStat(context.Background(), req, models.StatPoints)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pred != 28.4 {
		t.Errorf("expected 28.4, got %f", pred)
	}

	// Second call for the same key served from cache
	if _, err := client.PredictStat(context.Background(), req, models.StatPoints); err != nil {
		t.Fatalf("cached call failed: %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("expected 1 HTTP call, got %d", calls)
	}

	// Different stat misses the cache
	if _, err := client.PredictStat(context.Background(), req, models.StatRebounds); err != nil {
		t.Fatalf("rebounds call failed: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected 2 HTTP calls, got %d", calls)
	}
}

func TestPredictStatServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logrus.New())

	_, err := client.PredictStat(context.Background(), Request{PlayerName: "Anyone"}, models.StatPoints)
	if !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestPredictStatBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"prediction": -3.0}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logrus.New())

	_, err := client.PredictStat(context.Background(), Request{PlayerName: "Anyone"}, models.StatPoints)
	if !errors.Is(err, ErrBadResponse) {
		t.Errorf("expected ErrBadResponse, got %v", err)
	}
}
