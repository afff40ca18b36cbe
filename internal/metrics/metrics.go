// Package metrics provides the centralized Prometheus registry for the
// prediction pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsGeneratedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "courtside_edge",
		Name:      "predictions_generated_total",
		Help:      "Total number of player predictions generated",
	})
	PlayersSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "courtside_edge",
		Name:      "players_skipped_total",
		Help:      "Total number of players skipped during slate runs",
	})
	ModelFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "courtside_edge",
		Name:      "model_fallbacks_total",
		Help:      "Total number of model-backend failures that fell back to the heuristic",
	})
	OddsFetchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "courtside_edge",
		Name:      "odds_fetches_total",
		Help:      "Total number of odds API fetches",
	})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "courtside_edge",
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of circuit breaker trips",
	})
	IngestionRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "courtside_edge",
		Name:      "ingestion_runs_total",
		Help:      "Total number of season-stat ingestion runs",
	})
	IngestionErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "courtside_edge",
		Name:      "ingestion_errors_total",
		Help:      "Total number of ingestion errors",
	})
)

// Gauge metrics
var (
	LoadedPlayers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "courtside_edge",
		Name:      "loaded_players",
		Help:      "Number of player season rows currently loaded",
	})
	LoadedTeams = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "courtside_edge",
		Name:      "loaded_teams",
		Help:      "Number of team season profiles currently loaded",
	})
	LastSlateSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "courtside_edge",
		Name:      "last_slate_size",
		Help:      "Number of games in the most recent slate run",
	})
)

// Histogram metrics
var (
	SlateDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "courtside_edge",
		Name:      "slate_duration_seconds",
		Help:      "Duration of full-slate prediction runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	OddsFetchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "courtside_edge",
		Name:      "odds_fetch_latency_seconds",
		Help:      "Latency of odds API fetches in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	IngestionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "courtside_edge",
		Name:      "ingestion_duration_seconds",
		Help:      "Duration of ingestion runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsGeneratedTotal)
		registry.MustRegister(PlayersSkippedTotal)
		registry.MustRegister(ModelFallbacksTotal)
		registry.MustRegister(OddsFetchesTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)
		registry.MustRegister(IngestionRunsTotal)
		registry.MustRegister(IngestionErrorsTotal)

		registry.MustRegister(LoadedPlayers)
		registry.MustRegister(LoadedTeams)
		registry.MustRegister(LastSlateSize)

		registry.MustRegister(SlateDuration)
		registry.MustRegister(OddsFetchLatency)
		registry.MustRegister(IngestionDuration)

		registry.MustRegister(BetCandidatesTotal)
		registry.MustRegister(ValuePlaysTotal)
		registry.MustRegister(TopExpectedValue)
		registry.MustRegister(BetGenerationDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordSlateRun records one full-slate prediction run.
func RecordSlateRun(games, processed, skipped int, durationSeconds float64) {
	LastSlateSize.Set(float64(games))
	PredictionsGeneratedTotal.Add(float64(processed))
	PlayersSkippedTotal.Add(float64(skipped))
	SlateDuration.Observe(durationSeconds)
}

// RecordModelFallback records one model-backend fallback.
func RecordModelFallback() {
	ModelFallbacksTotal.Inc()
}

// RecordOddsFetch records one odds API fetch.
func RecordOddsFetch(durationSeconds float64) {
	OddsFetchesTotal.Inc()
	OddsFetchLatency.Observe(durationSeconds)
}

// RecordCircuitBreakerTrip records a circuit breaker trip event.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
}

// RecordIngestionRun records one ingestion run.
func RecordIngestionRun(durationSeconds float64, failed bool) {
	IngestionRunsTotal.Inc()
	IngestionDuration.Observe(durationSeconds)
	if failed {
		IngestionErrorsTotal.Inc()
	}
}

// UpdateLoadedCounts updates the repository size gauges.
func UpdateLoadedCounts(players, teams int) {
	LoadedPlayers.Set(float64(players))
	LoadedTeams.Set(float64(teams))
}
