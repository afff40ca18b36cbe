// Package logger provides bet-generation logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// BetLogger provides dedicated logging for bet generation.
type BetLogger struct {
	*logrus.Entry
}

// NewBetLogger creates a new bet logger.
func NewBetLogger(baseLogger *logrus.Logger) *BetLogger {
	return &BetLogger{
		Entry: baseLogger.WithField("component", "bets"),
	}
}

// LogBetCandidate logs a generated bet candidate.
func (bl *BetLogger) LogBetCandidate(player, stat string, line float64, direction string, odds int, ev, kellyUnits float64) {
	bl.WithFields(logrus.Fields{
		"player":      player,
		"stat":        stat,
		"line":        line,
		"direction":   direction,
		"odds":        odds,
		"ev":          ev,
		"kelly_units": kellyUnits,
	}).Info("Bet candidate generated")
}

// LogBetBatch logs a completed bet-generation run.
func (bl *BetLogger) LogBetBatch(stat string, oddsRows, matched, candidates int, minEV float64) {
	bl.WithFields(logrus.Fields{
		"stat":       stat,
		"odds_rows":  oddsRows,
		"matched":    matched,
		"candidates": candidates,
		"min_ev":     minEV,
	}).Info("Bet generation completed")
}

// LogOddsFetch logs an odds API fetch.
func (bl *BetLogger) LogOddsFetch(book string, events, lines int, durationMs float64) {
	bl.WithFields(logrus.Fields{
		"book":        book,
		"events":      events,
		"lines":       lines,
		"duration_ms": durationMs,
	}).Info("Odds fetch completed")
}
