// Package service orchestrates the prediction and ingestion workflows
// on top of the stats, engine, analysis and persistence packages.
package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/config"
	"github.com/yourusername/courtside-edge/internal/datasource"
	"github.com/yourusername/courtside-edge/internal/metrics"
	"github.com/yourusername/courtside-edge/internal/models"
)

// IngestionService refreshes the season-stat CSV snapshots the stats
// repository loads and keeps a current copy of the posted prop lines
type IngestionService struct {
	seasons datasource.SeasonStatsSource
	odds    datasource.OddsSource
	targets []config.SeasonSourceConfig
	metrics *IngestionMetrics
	logger  *logrus.Logger

	mu        sync.RWMutex
	lines     []models.OddsLine
	linesAt   time.Time
	refreshAt time.Time
}

// NewIngestionService creates a new ingestion service. Either source may
// be nil; the corresponding refresh becomes a no-op error.
func NewIngestionService(
	seasons datasource.SeasonStatsSource,
	odds datasource.OddsSource,
	targets []config.SeasonSourceConfig,
	logger *logrus.Logger,
) *IngestionService {
	return &IngestionService{
		seasons: seasons,
		odds:    odds,
		targets: targets,
		metrics: NewIngestionMetrics(),
		logger:  logger,
	}
}

// RefreshSeasonStats fetches fresh league-wide averages for the most
// recent configured season and rewrites its CSV snapshots. Older seasons
// are finished and never change, so only the last target is refreshed.
func (s *IngestionService) RefreshSeasonStats(ctx context.Context) (*IngestionMetrics, error) {
	s.metrics.Reset()
	start := time.Now()

	if s.seasons == nil || !s.seasons.IsEnabled() {
		s.metrics.RecordError()
		metrics.RecordIngestionRun(time.Since(start).Seconds(), true)
		return s.metrics, fmt.Errorf("no season stats source available")
	}

	target := s.latestTarget()
	if target == nil {
		s.metrics.RecordError()
		metrics.RecordIngestionRun(time.Since(start).Seconds(), true)
		return s.metrics, fmt.Errorf("no season snapshot targets configured")
	}

	s.logger.WithFields(logrus.Fields{
		"source": s.seasons.Name(),
		"season": target.Label,
	}).Info("Starting season stats refresh")

	players, err := s.seasons.FetchPlayerSeasonStats(ctx, target.Label)
	if err != nil {
		s.metrics.RecordError()
		metrics.RecordIngestionRun(time.Since(start).Seconds(), true)
		return s.metrics, fmt.Errorf("failed to fetch player stats: %w", err)
	}
	s.metrics.RecordPlayers(len(players))

	teams, err := s.seasons.FetchTeamSeasonStats(ctx, target.Label)
	if err != nil {
		s.metrics.RecordError()
		metrics.RecordIngestionRun(time.Since(start).Seconds(), true)
		return s.metrics, fmt.Errorf("failed to fetch team stats: %w", err)
	}
	s.metrics.RecordTeams(len(teams))

	if err := writePlayersSnapshot(target.PlayersFile, players); err != nil {
		s.metrics.RecordError()
		metrics.RecordIngestionRun(time.Since(start).Seconds(), true)
		return s.metrics, fmt.Errorf("failed to write player snapshot: %w", err)
	}
	s.metrics.RecordSnapshot()

	if err := writeTeamsSnapshot(target.TeamsFile, teams); err != nil {
		s.metrics.RecordError()
		metrics.RecordIngestionRun(time.Since(start).Seconds(), true)
		return s.metrics, fmt.Errorf("failed to write team snapshot: %w", err)
	}
	s.metrics.RecordSnapshot()

	s.metrics.Duration = time.Since(start)
	s.mu.Lock()
	s.refreshAt = time.Now()
	s.mu.Unlock()

	metrics.RecordIngestionRun(s.metrics.Duration.Seconds(), false)
	metrics.UpdateLoadedCounts(len(players), len(teams))

	s.logger.WithFields(logrus.Fields{
		"season":  target.Label,
		"players": len(players),
		"teams":   len(teams),
	}).Info("Season stats refresh complete")

	return s.metrics, nil
}

// PollOdds fetches the current NBA player-prop lines and caches them for
// consumers. The previous lines survive a failed poll.
func (s *IngestionService) PollOdds(ctx context.Context) (int, error) {
	if s.odds == nil || !s.odds.IsEnabled() {
		return 0, fmt.Errorf("no odds source available")
	}

	start := time.Now()
	lines, err := s.odds.FetchPlayerProps(ctx, datasource.DefaultSport)
	metrics.RecordOddsFetch(time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordError()
		return 0, fmt.Errorf("failed to fetch player props: %w", err)
	}

	s.mu.Lock()
	s.lines = lines
	s.linesAt = time.Now()
	s.mu.Unlock()

	s.metrics.RecordLines(len(lines))
	s.logger.WithFields(logrus.Fields{
		"source": s.odds.Name(),
		"lines":  len(lines),
	}).Info("Odds poll complete")

	return len(lines), nil
}

// LatestLines returns the most recently polled prop lines and when they
// were fetched. A zero time means no successful poll yet.
func (s *IngestionService) LatestLines() ([]models.OddsLine, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lines, s.linesAt
}

// LastRefresh returns when season stats were last refreshed
func (s *IngestionService) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshAt
}

// GetMetrics returns current ingestion metrics
func (s *IngestionService) GetMetrics() *IngestionMetrics {
	return s.metrics
}

// latestTarget returns the configured season with the greatest label.
// Labels sort chronologically ("2024-25" < "2025-26").
func (s *IngestionService) latestTarget() *config.SeasonSourceConfig {
	var latest *config.SeasonSourceConfig
	for i := range s.targets {
		t := &s.targets[i]
		if latest == nil || t.Label > latest.Label {
			latest = t
		}
	}
	return latest
}

// writePlayersSnapshot writes player rows in the stats loader's column
// layout. Written to a temp file and renamed so a reader never sees a
// partial snapshot.
func writePlayersSnapshot(path string, players []models.PlayerSeasonRecord) error {
	rows := make([][]string, 0, len(players)+1)
	rows = append(rows, []string{
		"PLAYER_ID", "PLAYER_NAME", "TEAM_ABBREVIATION",
		"PTS", "REB", "AST", "FG_PCT", "FG3M", "MIN", "GP",
	})
	for _, p := range players {
		rows = append(rows, []string{
			strconv.Itoa(p.PlayerID),
			p.Name,
			p.Team,
			formatStat(p.Points),
			formatStat(p.Rebounds),
			formatStat(p.Assists),
			formatStat(p.FieldGoalPct),
			formatStat(p.ThreesMade),
			formatStat(p.Minutes),
			formatStat(p.GamesPlayed),
		})
	}
	return writeCSVAtomic(path, rows)
}

// writeTeamsSnapshot writes team rows in the stats loader's column layout
func writeTeamsSnapshot(path string, teams []models.TeamSeasonProfile) error {
	rows := make([][]string, 0, len(teams)+1)
	rows = append(rows, []string{
		"TEAM_ID", "TEAM_ABBREVIATION", "PACE", "OFF_RATING", "DEF_RATING",
		"W_PCT", "OPP_FG3A", "OPP_FG_PCT", "OPP_PTS_PAINT", "DREB_PCT",
	})
	for _, t := range teams {
		rows = append(rows, []string{
			strconv.Itoa(t.TeamID),
			t.Abbreviation,
			formatStat(t.Pace),
			formatStat(t.OffensiveRating),
			formatStat(t.DefensiveRating),
			formatStat(t.WinPct),
			formatStat(t.ThreesAllowed),
			formatStat(t.OppFieldGoalPct),
			formatStat(t.PaintPointsAllowed),
			formatStat(t.DefReboundPct),
		})
	}
	return writeCSVAtomic(path, rows)
}

func writeCSVAtomic(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
