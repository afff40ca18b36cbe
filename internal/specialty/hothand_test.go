package specialty

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func superstar() *models.PlayerSeasonRecord {
	return &models.PlayerSeasonRecord{Name: "Luka Dončić", Team: "DAL", Points: 25, Rebounds: 8, Assists: 9, Minutes: 36}
}

func TestProjectFromHotQ1Superstar(t *testing.T) {
	tracker := NewHotHandTracker(logrus.New())
	proj := tracker.ProjectFromHotQ1(superstar(), 10, DefaultHotThreshold)

	if !proj.HotStart {
		t.Fatal("10 points in Q1 is a hot start")
	}
	if proj.Archetype != models.ArchetypeSuperstar {
		t.Errorf("expected SUPERSTAR, got %s", proj.Archetype)
	}
	// 10 * (1 + 0.85 + 0.80 + 0.75) = 34
	if !almostEqual(proj.PredictedTotal, 34) {
		t.Errorf("expected 34 projected points, got %f", proj.PredictedTotal)
	}
	if !almostEqual(proj.VsAverage, 9) {
		t.Errorf("expected +9 vs average, got %f", proj.VsAverage)
	}
	if proj.Confidence != ConfidenceHigh {
		t.Errorf("superstar continuation should grade HIGH, got %s", proj.Confidence)
	}
}

func TestProjectFromHotQ1RolePlayer(t *testing.T) {
	tracker := NewHotHandTracker(logrus.New())
	role := &models.PlayerSeasonRecord{Name: "Bench Guy", Points: 8, Minutes: 18}

	proj := tracker.ProjectFromHotQ1(role, 6, DefaultHotThreshold)
	if proj.Archetype != models.ArchetypeRolePlayer {
		t.Fatalf("expected ROLE PLAYER, got %s", proj.Archetype)
	}
	// 6 * (1 + 0.50 + 0.40 + 0.35) = 13.5
	if !almostEqual(proj.PredictedTotal, 13.5) {
		t.Errorf("expected 13.5, got %f", proj.PredictedTotal)
	}
	if proj.Confidence != ConfidenceLow {
		t.Errorf("role-player continuation should grade LOW, got %s", proj.Confidence)
	}
}

func TestProjectFromColdQ1(t *testing.T) {
	tracker := NewHotHandTracker(logrus.New())
	proj := tracker.ProjectFromHotQ1(superstar(), 3, DefaultHotThreshold)

	if proj.HotStart {
		t.Fatal("3 points is below the hot threshold")
	}
	if !almostEqual(proj.PredictedTotal, 25) {
		t.Errorf("cold start should fall back to the season average, got %f", proj.PredictedTotal)
	}
}

func TestConsistencyScopes(t *testing.T) {
	tracker := NewHotHandTracker(logrus.New())

	var log models.GameLog
	// 6 of 10 games clear 20 points, the last 5 go 3-for-5
	points := []float64{25, 18, 22, 19, 24, 21, 15, 26, 17, 23}
	for _, p := range points {
		log = append(log, models.GameLogEntry{Matchup: "DAL vs. BOS", Points: p, Minutes: 30})
	}

	season := tracker.ConsistencySeason(log, models.StatPoints, 20)
	if season.Games != 10 || season.Hits != 6 || !almostEqual(season.HitRate, 0.6) {
		t.Errorf("unexpected season report: %+v", season)
	}

	last5 := tracker.ConsistencyLastN(log, models.StatPoints, 20, 5)
	if last5.Games != 5 || last5.Hits != 3 {
		t.Errorf("unexpected last-5 report: %+v", last5)
	}
	if last5.Scope != "Last 5" {
		t.Errorf("unexpected scope label %q", last5.Scope)
	}
}

func TestConsistencyHeadToHeadPriorSeasonFill(t *testing.T) {
	tracker := NewHotHandTracker(logrus.New())

	current := models.GameLog{
		{Matchup: "DAL vs. BOS", Points: 30},
		{Matchup: "DAL @ MIN", Points: 10},
	}
	prior := models.GameLog{
		{Matchup: "DAL @ BOS", Points: 28},
		{Matchup: "DAL vs. BOS", Points: 12},
	}

	report := tracker.ConsistencyHeadToHead(current, prior, "BOS", models.StatPoints, 20)
	if report.Games != 3 {
		t.Fatalf("thin current sample should pull prior-season meetings, got %d games", report.Games)
	}
	if report.Hits != 2 {
		t.Errorf("expected 2 hits, got %d", report.Hits)
	}
	if report.Scope != "H2H vs BOS" {
		t.Errorf("unexpected scope label %q", report.Scope)
	}
}
