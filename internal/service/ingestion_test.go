package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/config"
	"github.com/yourusername/courtside-edge/internal/models"
	"github.com/yourusername/courtside-edge/internal/stats"
)

type stubSeasonSource struct {
	players []models.PlayerSeasonRecord
	teams   []models.TeamSeasonProfile
	err     error
}

func (s *stubSeasonSource) FetchPlayerSeasonStats(ctx context.Context, season string) ([]models.PlayerSeasonRecord, error) {
	return s.players, s.err
}

func (s *stubSeasonSource) FetchTeamSeasonStats(ctx context.Context, season string) ([]models.TeamSeasonProfile, error) {
	return s.teams, s.err
}

func (s *stubSeasonSource) Name() string    { return "stub_stats" }
func (s *stubSeasonSource) IsEnabled() bool { return true }

type stubOddsSource struct {
	lines []models.OddsLine
	err   error
}

func (s *stubOddsSource) FetchPlayerProps(ctx context.Context, sport string) ([]models.OddsLine, error) {
	return s.lines, s.err
}

func (s *stubOddsSource) Name() string    { return "stub_odds" }
func (s *stubOddsSource) IsEnabled() bool { return true }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRefreshSeasonStatsWritesLoadableSnapshots(t *testing.T) {
	dir := t.TempDir()
	target := config.SeasonSourceConfig{
		Label:       "2025-26",
		PlayersFile: filepath.Join(dir, "players.csv"),
		TeamsFile:   filepath.Join(dir, "teams.csv"),
	}

	source := &stubSeasonSource{
		players: []models.PlayerSeasonRecord{
			{PlayerID: 1629029, Name: "Luka Dončić", Team: "DAL", Points: 28.3, Rebounds: 8.1, Assists: 8.7, FieldGoalPct: 0.473, ThreesMade: 2.9, Minutes: 36.2, GamesPlayed: 70},
			{PlayerID: 1628369, Name: "Jayson Tatum", Team: "BOS", Points: 27.1, Rebounds: 8.5, Assists: 4.9, FieldGoalPct: 0.452, ThreesMade: 3.1, Minutes: 35.7, GamesPlayed: 74},
		},
		teams: []models.TeamSeasonProfile{
			{TeamID: 1610612742, Abbreviation: "DAL", Pace: 100.2, OffensiveRating: 117.3, DefensiveRating: 114.8, WinPct: 0.61},
			{TeamID: 1610612738, Abbreviation: "BOS", Pace: 97.8, OffensiveRating: 120.1, DefensiveRating: 110.4, WinPct: 0.78},
		},
	}

	svc := NewIngestionService(source, nil, []config.SeasonSourceConfig{target}, quietLogger())

	m, err := svc.RefreshSeasonStats(context.Background())
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if m.PlayersFetched != 2 || m.TeamsFetched != 2 {
		t.Errorf("unexpected fetch counts: players=%d teams=%d", m.PlayersFetched, m.TeamsFetched)
	}
	if m.SnapshotsWritten != 2 {
		t.Errorf("expected 2 snapshots, got %d", m.SnapshotsWritten)
	}
	if m.Errors != 0 {
		t.Errorf("expected no errors, got %d", m.Errors)
	}
	if svc.LastRefresh().IsZero() {
		t.Error("LastRefresh not updated")
	}

	// The snapshots must round-trip through the stats loader
	repo, err := stats.NewRepository([]stats.SeasonSource{{
		Label:       target.Label,
		PlayersFile: target.PlayersFile,
		TeamsFile:   target.TeamsFile,
	}}, models.BlendLatest, quietLogger())
	if err != nil {
		t.Fatalf("failed to reload snapshot: %v", err)
	}

	players := repo.Players()
	if len(players) != 2 {
		t.Fatalf("expected 2 reloaded players, got %d", len(players))
	}
	var luka *models.PlayerSeasonRecord
	for i := range players {
		if strings.Contains(players[i].Name, "Luka") {
			luka = &players[i]
		}
	}
	if luka == nil {
		t.Fatal("Luka missing from reloaded snapshot")
	}
	if luka.Points != 28.3 || luka.PlayerID != 1629029 {
		t.Errorf("player row corrupted on round-trip: %+v", luka)
	}

	team, err := repo.Team("BOS")
	if err != nil {
		t.Fatalf("BOS missing from reloaded snapshot: %v", err)
	}
	if team.DefensiveRating != 110.4 {
		t.Errorf("team row corrupted on round-trip: got %f", team.DefensiveRating)
	}
}

func TestRefreshSeasonStatsPicksLatestSeason(t *testing.T) {
	dir := t.TempDir()
	old := config.SeasonSourceConfig{
		Label:       "2024-25",
		PlayersFile: filepath.Join(dir, "old_players.csv"),
		TeamsFile:   filepath.Join(dir, "old_teams.csv"),
	}
	current := config.SeasonSourceConfig{
		Label:       "2025-26",
		PlayersFile: filepath.Join(dir, "players.csv"),
		TeamsFile:   filepath.Join(dir, "teams.csv"),
	}

	svc := NewIngestionService(&stubSeasonSource{}, nil, []config.SeasonSourceConfig{current, old}, quietLogger())
	if got := svc.latestTarget(); got == nil || got.Label != "2025-26" {
		t.Fatalf("expected latest season 2025-26, got %+v", got)
	}
}

func TestRefreshSeasonStatsNoSource(t *testing.T) {
	svc := NewIngestionService(nil, nil, nil, quietLogger())
	if _, err := svc.RefreshSeasonStats(context.Background()); err == nil {
		t.Fatal("expected an error without a season source")
	}
}

func TestPollOddsCachesLines(t *testing.T) {
	odds := &stubOddsSource{lines: []models.OddsLine{
		{PlayerName: "Luka Dončić", Stat: models.StatPoints, Line: 28.5, OverOdds: -110, UnderOdds: -110, Book: "draftkings"},
	}}

	svc := NewIngestionService(nil, odds, nil, quietLogger())

	n, err := svc.PollOdds(context.Background())
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 line, got %d", n)
	}

	lines, at := svc.LatestLines()
	if len(lines) != 1 || at.IsZero() {
		t.Fatalf("lines not cached: %d lines, at=%v", len(lines), at)
	}

	// A failed poll keeps the previous lines
	odds.err = context.DeadlineExceeded
	if _, err := svc.PollOdds(context.Background()); err == nil {
		t.Fatal("expected poll error")
	}
	lines, _ = svc.LatestLines()
	if len(lines) != 1 {
		t.Errorf("previous lines lost after failed poll: %d", len(lines))
	}
}

func TestIngestionMetricsString(t *testing.T) {
	m := NewIngestionMetrics()
	m.RecordPlayers(450)
	m.RecordTeams(30)
	m.RecordSnapshot()
	m.RecordError()

	s := m.String()
	for _, want := range []string{"Players=450", "Teams=30", "Snapshots=1", "Errors=1"} {
		if !strings.Contains(s, want) {
			t.Errorf("metrics string missing %q: %s", want, s)
		}
	}
}
