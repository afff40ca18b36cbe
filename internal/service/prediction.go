package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/analysis"
	"github.com/yourusername/courtside-edge/internal/engine"
	"github.com/yourusername/courtside-edge/internal/metrics"
	"github.com/yourusername/courtside-edge/internal/models"
	"github.com/yourusername/courtside-edge/internal/repository"
)

// SlateReport is the result of one full-slate prediction run
type SlateReport struct {
	Features  []*models.MatchupFeatureSet
	Plays     []models.ValuePlay
	Games     int
	Processed int
	Skipped   int
	Duration  time.Duration
	Persisted bool
}

// PredictionService runs the slate pipeline: engine predictions, value
// analysis and optional persistence
type PredictionService struct {
	engine   *engine.Engine
	analyzer *analysis.ValueAnalyzer
	repos    *repository.Repositories
	logger   *logrus.Logger
}

// NewPredictionService creates a prediction service. A nil Repositories
// disables persistence; the pipeline itself never requires a database.
func NewPredictionService(
	eng *engine.Engine,
	analyzer *analysis.ValueAnalyzer,
	repos *repository.Repositories,
	logger *logrus.Logger,
) *PredictionService {
	return &PredictionService{
		engine:   eng,
		analyzer: analyzer,
		repos:    repos,
		logger:   logger,
	}
}

// RunSlate predicts every rostered player in the given games, ranks the
// results against the posted lines and persists both when a repository
// is configured. Lines may be nil; value then reads against season
// averages.
func (s *PredictionService) RunSlate(ctx context.Context, games []engine.Game, gameDate time.Time, lines []models.OddsLine) (*SlateReport, error) {
	start := time.Now()

	result := s.engine.PredictSlate(ctx, games, gameDate)
	plays := s.analyzer.Analyze(result.Features, lines, gameDate)

	report := &SlateReport{
		Features:  result.Features,
		Plays:     plays,
		Games:     len(games),
		Processed: result.Processed,
		Skipped:   result.Skipped,
		Duration:  time.Since(start),
	}

	metrics.RecordSlateRun(report.Games, report.Processed, report.Skipped, report.Duration.Seconds())
	for i := range plays {
		if dir := plays[i].Direction(); dir != "" {
			metrics.RecordValuePlay(string(dir))
		}
	}

	if s.repos != nil {
		if err := s.persist(ctx, report, gameDate); err != nil {
			return report, fmt.Errorf("slate completed but persistence failed: %w", err)
		}
		report.Persisted = true
	}

	s.logger.WithFields(logrus.Fields{
		"games":     report.Games,
		"processed": report.Processed,
		"skipped":   report.Skipped,
		"plays":     len(report.Plays),
		"persisted": report.Persisted,
		"duration":  report.Duration,
	}).Info("Slate run complete")

	return report, nil
}

// persist writes prediction and value play rows in batches
func (s *PredictionService) persist(ctx context.Context, report *SlateReport, gameDate time.Time) error {
	predictions := make([]*models.PlayerPrediction, 0, len(report.Features))
	for _, fs := range report.Features {
		predictions = append(predictions, models.FromFeatureSet(fs, gameDate))
	}
	if err := s.repos.Prediction.CreateBatch(ctx, predictions); err != nil {
		return fmt.Errorf("failed to persist predictions: %w", err)
	}

	plays := make([]*models.ValuePlay, 0, len(report.Plays))
	for i := range report.Plays {
		plays = append(plays, &report.Plays[i])
	}
	if err := s.repos.ValuePlay.CreateBatch(ctx, plays); err != nil {
		return fmt.Errorf("failed to persist value plays: %w", err)
	}

	return nil
}
