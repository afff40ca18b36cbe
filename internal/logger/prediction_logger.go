// Package logger provides prediction-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// PredictionLogger provides dedicated logging for the prediction engine.
type PredictionLogger struct {
	*logrus.Entry
}

// NewPredictionLogger creates a new prediction logger.
func NewPredictionLogger(baseLogger *logrus.Logger) *PredictionLogger {
	return &PredictionLogger{
		Entry: baseLogger.WithField("component", "engine"),
	}
}

// LogPlayerPrediction logs a single player prediction.
func (pl *PredictionLogger) LogPlayerPrediction(player, opponent string, points, rebounds, assists float64, modelBacked bool) {
	pl.WithFields(logrus.Fields{
		"player":       player,
		"opponent":     opponent,
		"points":       points,
		"rebounds":     rebounds,
		"assists":      assists,
		"model_backed": modelBacked,
	}).Debug("Player prediction generated")
}

// LogSlatePrediction logs the outcome of a full-slate prediction run.
func (pl *PredictionLogger) LogSlatePrediction(games, processed, skipped int, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"games":       games,
		"processed":   processed,
		"skipped":     skipped,
		"duration_ms": durationMs,
	}).Info("Slate prediction completed")
}

// LogSkippedPlayer logs a player dropped from a slate run.
func (pl *PredictionLogger) LogSkippedPlayer(player, reason string) {
	pl.WithFields(logrus.Fields{
		"player": player,
		"reason": reason,
	}).Warn("Player skipped")
}

// LogModelFallback logs a fallback from the model backend to the heuristic.
func (pl *PredictionLogger) LogModelFallback(player, stat string, err error) {
	pl.WithFields(logrus.Fields{
		"player": player,
		"stat":   stat,
		"error":  err.Error(),
	}).Warn("Model backend unavailable, using heuristic prediction")
}
