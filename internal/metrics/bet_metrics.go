// Package metrics defines bet-generation metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Bet-generation counter vectors
var (
	BetCandidatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtside_edge",
		Name:      "bet_candidates_total",
		Help:      "Total number of bet candidates generated by stat and direction",
	}, []string{"stat", "direction"})

	ValuePlaysTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtside_edge",
		Name:      "value_plays_total",
		Help:      "Total number of value plays by direction",
	}, []string{"direction"})
)

// Bet-generation gauge vectors
var (
	TopExpectedValue = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "courtside_edge",
		Name:      "top_expected_value",
		Help:      "Best expected value found in the latest generation run",
	}, []string{"stat"})
)

// Bet-generation histograms
var (
	BetGenerationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "courtside_edge",
		Name:      "bet_generation_duration_seconds",
		Help:      "Duration of bet generation runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// RecordBetCandidate records one generated candidate.
func RecordBetCandidate(stat, direction string) {
	BetCandidatesTotal.WithLabelValues(stat, direction).Inc()
}

// RecordValuePlay records one classified value play.
func RecordValuePlay(direction string) {
	ValuePlaysTotal.WithLabelValues(direction).Inc()
}

// UpdateTopExpectedValue updates the best-EV gauge for a stat.
func UpdateTopExpectedValue(stat string, ev float64) {
	TopExpectedValue.WithLabelValues(stat).Set(ev)
}

// RecordBetGenerationDuration records a generation run's duration.
func RecordBetGenerationDuration(durationSeconds float64) {
	BetGenerationDuration.Observe(durationSeconds)
}
