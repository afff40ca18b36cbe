package stats

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yourusername/courtside-edge/internal/logger"
	"github.com/yourusername/courtside-edge/internal/models"
)

func testSources() []SeasonSource {
	return []SeasonSource{
		{Label: "2025-26", PlayersFile: "testdata/players_2025_26.csv", TeamsFile: "testdata/teams_2025_26.csv"},
		{Label: "2024-25", PlayersFile: "testdata/players_2024_25.csv", TeamsFile: "testdata/teams_2024_25.csv"},
	}
}

func findPlayer(t *testing.T, repo *Repository, name string) models.PlayerSeasonRecord {
	t.Helper()
	for _, p := range repo.Players() {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("player %s not found", name)
	return models.PlayerSeasonRecord{}
}

func TestLoadLatestBlendKeepsMostRecentSeason(t *testing.T) {
	repo, err := NewRepository(testSources(), models.BlendLatest, logger.NewLogger("error"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	luka := findPlayer(t, repo, "Luka Doncic")
	if luka.Team != "LAL" {
		t.Errorf("expected latest team LAL, got %s", luka.Team)
	}
	if luka.Points != 30.0 {
		t.Errorf("expected latest-season 30.0 PPG, got %f", luka.Points)
	}
}

func TestLoadMeanBlendAveragesAndKeepsLatestTeam(t *testing.T) {
	repo, err := NewRepository(testSources(), models.BlendMean, logger.NewLogger("error"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	luka := findPlayer(t, repo, "Luka Doncic")
	expected := (32.4 + 30.0) / 2
	if math.Abs(luka.Points-expected) > 1e-9 {
		t.Errorf("expected blended %f PPG, got %f", expected, luka.Points)
	}
	if luka.Team != "LAL" {
		t.Errorf("mean blend should keep latest team LAL, got %s", luka.Team)
	}
}

func TestSingleSeasonPlayerSurvivesBlend(t *testing.T) {
	repo, err := NewRepository(testSources(), models.BlendMean, logger.NewLogger("error"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Edwards only appears in 2025-26; Curry only in 2024-25
	edwards := findPlayer(t, repo, "Anthony Edwards")
	if edwards.Points != 27.6 {
		t.Errorf("expected 27.6 PPG for single-season player, got %f", edwards.Points)
	}
	curry := findPlayer(t, repo, "Stephen Curry")
	if curry.Team != "GSW" {
		t.Errorf("expected GSW, got %s", curry.Team)
	}
}

func TestNonNBATeamsFiltered(t *testing.T) {
	repo, err := NewRepository(testSources(), models.BlendLatest, logger.NewLogger("error"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, p := range repo.Players() {
		if p.Team == "VIR" {
			t.Fatal("expected non-NBA team rows to be filtered out")
		}
	}
	if _, err := repo.Team("VIR"); err == nil {
		t.Fatal("expected error looking up filtered team")
	}
}

func TestImplausibleRatingsClampedOnLoad(t *testing.T) {
	repo, err := NewRepository(testSources(), models.BlendLatest, logger.NewLogger("error"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// DAL 2025-26 has pace 999, DEN 2025-26 has def rating 999
	dal, err := repo.Team("DAL")
	if err != nil {
		t.Fatalf("expected DAL profile, got %v", err)
	}
	if dal.Pace != models.LeagueAveragePace {
		t.Errorf("expected clamped pace %f, got %f", models.LeagueAveragePace, dal.Pace)
	}

	den, err := repo.Team("DEN")
	if err != nil {
		t.Fatalf("expected DEN profile, got %v", err)
	}
	if den.DefensiveRating != models.LeagueAverageDefRating {
		t.Errorf("expected clamped def rating %f, got %f", models.LeagueAverageDefRating, den.DefensiveRating)
	}
}

func TestMissingSeasonFileIsFatal(t *testing.T) {
	sources := []SeasonSource{
		{Label: "2024-25", PlayersFile: "testdata/players_2024_25.csv", TeamsFile: "testdata/teams_2024_25.csv"},
		{Label: "2023-24", PlayersFile: "testdata/missing.csv", TeamsFile: "testdata/teams_2024_25.csv"},
	}

	_, err := NewRepository(sources, models.BlendLatest, logger.NewLogger("error"))
	if err == nil {
		t.Fatal("expected fatal error for missing season file")
	}
}

func TestMissingIdentityColumnIsFatal(t *testing.T) {
	dir := t.TempDir()
	playersFile := filepath.Join(dir, "players.csv")
	if err := os.WriteFile(playersFile, []byte("PLAYER_ID,PTS\n1,25.0\n"), 0o644); err != nil {
		t.Fatalf("failed to write test CSV: %v", err)
	}

	sources := []SeasonSource{
		{Label: "2025-26", PlayersFile: playersFile, TeamsFile: "testdata/teams_2025_26.csv"},
	}
	_, err := NewRepository(sources, models.BlendLatest, logger.NewLogger("error"))
	if err == nil {
		t.Fatal("expected fatal error for CSV missing PLAYER_NAME column")
	}
	if !strings.Contains(err.Error(), "PLAYER_NAME") {
		t.Errorf("error should name the missing column, got %v", err)
	}
}

func TestNoSourcesIsFatal(t *testing.T) {
	_, err := NewRepository(nil, models.BlendLatest, logger.NewLogger("error"))
	if !errors.Is(err, models.ErrNoSeasonData) {
		t.Fatalf("expected ErrNoSeasonData, got %v", err)
	}
}

func TestPlayersByTeam(t *testing.T) {
	repo, err := NewRepository(testSources(), models.BlendLatest, logger.NewLogger("error"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	roster := repo.PlayersByTeam("BOS")
	if len(roster) != 1 || roster[0].Name != "Jayson Tatum" {
		t.Errorf("expected Tatum on BOS roster, got %v", roster)
	}
}

func TestTeamLookupUnknown(t *testing.T) {
	repo, err := NewRepository(testSources(), models.BlendLatest, logger.NewLogger("error"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = repo.Team("XXX")
	if !errors.Is(err, models.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}
