package engine

import (
	"math"
	"testing"
	"time"

	"github.com/yourusername/courtside-edge/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func neutralInput() *factorInput {
	return &factorInput{
		player:     &models.PlayerSeasonRecord{Name: "Test", Points: 20, Rebounds: 6, Assists: 4, Minutes: 30},
		team:       &models.TeamSeasonProfile{Abbreviation: "DAL", Pace: 100, OffensiveRating: 110, DefensiveRating: 112, WinPct: 0.5},
		opponent:   &models.TeamSeasonProfile{Abbreviation: "BOS", Pace: 100, OffensiveRating: 110, DefensiveRating: 112, WinPct: 0.5},
		restDays:   1,
		leaguePace: 100,
		leagueOff:  110,
		leagueDef:  112,
	}
}

func TestApplyWeight(t *testing.T) {
	if got := applyWeight(1.2, 0); got != 1.0 {
		t.Errorf("weight 0 must be identity, got %f", got)
	}
	if got := applyWeight(1.2, 1); !almostEqual(got, 1.2) {
		t.Errorf("weight 1 must be full strength, got %f", got)
	}
	if got := applyWeight(1.2, 0.5); !almostEqual(got, 1.1) {
		t.Errorf("weight 0.5 must halve the boost, got %f", got)
	}
	if got := applyWeight(0.9, 0.5); !almostEqual(got, 0.95) {
		t.Errorf("weight interpolation must work below 1.0, got %f", got)
	}
}

func TestRestMultiplier(t *testing.T) {
	tests := []struct {
		restDays int
		minutes  float64
		expected float64
	}{
		{0, 36, 0.93}, // back-to-back, heavy minutes
		{0, 15, 1.08}, // back-to-back, bench player
		{0, 28, 0.97}, // back-to-back, medium usage
		{1, 36, 1.0},
		{2, 36, 1.03},
		{3, 36, 1.05},
		{5, 36, 1.05},
	}

	for _, tt := range tests {
		in := neutralInput()
		in.player.Minutes = tt.minutes
		in.restDays = tt.restDays
		if got := restMultiplier(in); !almostEqual(got, tt.expected) {
			t.Errorf("rest %d days at %.0f min = %f, expected %f", tt.restDays, tt.minutes, got, tt.expected)
		}
	}
}

func TestRestDaysFromLog(t *testing.T) {
	gameDate := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	entry := func(day int) models.GameLogEntry {
		return models.GameLogEntry{
			GameDate: time.Date(2026, time.January, day, 0, 0, 0, 0, time.UTC),
			Matchup:  "DAL vs. BOS",
		}
	}

	tests := []struct {
		name     string
		log      models.GameLog
		expected int
	}{
		{"back to back", models.GameLog{entry(14), entry(12)}, 0},
		{"one day rest", models.GameLog{entry(13), entry(11)}, 1},
		{"two days rest", models.GameLog{entry(12)}, 2},
		{"long layoff", models.GameLog{entry(8)}, 6},
		{"empty log", nil, 1},
		{"only future games", models.GameLog{entry(16)}, 1},
	}

	for _, tt := range tests {
		if got := restDaysFromLog(tt.log, gameDate); got != tt.expected {
			t.Errorf("%s: got %d rest days, expected %d", tt.name, got, tt.expected)
		}
	}

	// No game date means no schedule context
	if got := restDaysFromLog(models.GameLog{entry(14)}, time.Time{}); got != 1 {
		t.Errorf("zero game date should default to 1, got %d", got)
	}
}

func TestHomeAwayMultiplierTiers(t *testing.T) {
	tests := []struct {
		winPct   float64
		home     bool
		expected float64
	}{
		{0.60, true, 1.05},
		{0.60, false, 0.98},
		{0.35, true, 1.02},
		{0.35, false, 0.95},
		{0.50, true, 1.03},
		{0.50, false, 0.97},
	}

	for _, tt := range tests {
		in := neutralInput()
		in.team.WinPct = tt.winPct
		in.home = tt.home
		if got := homeAwayMultiplier(in); !almostEqual(got, tt.expected) {
			t.Errorf("winPct %.2f home=%v = %f, expected %f", tt.winPct, tt.home, got, tt.expected)
		}
	}
}

func TestHomeAwayPlayerSplitRefinement(t *testing.T) {
	in := neutralInput()
	in.home = true

	// 5 home games at 24 ppg, 5 road games at 16 ppg, overall 20 ppg
	for i := 0; i < 5; i++ {
		in.log = append(in.log, models.GameLogEntry{Matchup: "DAL vs. BOS", Points: 24, Minutes: 30})
	}
	for i := 0; i < 5; i++ {
		in.log = append(in.log, models.GameLogEntry{Matchup: "DAL @ BOS", Points: 16, Minutes: 30})
	}

	// Home split ratio 24/20 = 1.2 clamps to 1.08; base 1.03
	if got := homeAwayMultiplier(in); !almostEqual(got, 1.03*1.08) {
		t.Errorf("expected refined multiplier %f, got %f", 1.03*1.08, got)
	}
}

func TestRecentFormMultiplier(t *testing.T) {
	in := neutralInput()

	// Too few games stays neutral
	in.log = models.GameLog{{Points: 40, Minutes: 30}}
	if got := recentFormMultiplier(in); got != 1.0 {
		t.Errorf("short log should be neutral, got %f", got)
	}

	// 5 games at 24 pts (ratio 1.2), season rates for reb/ast
	in.log = nil
	for i := 0; i < 5; i++ {
		in.log = append(in.log, models.GameLogEntry{Points: 24, Rebounds: 6, Assists: 4, Minutes: 30})
	}
	// 0.5*1.2 + 0.25*1.0 + 0.25*1.0 = 1.1
	if got := recentFormMultiplier(in); !almostEqual(got, 1.1) {
		t.Errorf("expected 1.1, got %f", got)
	}

	// Extreme hot streak clamps
	in.log = nil
	for i := 0; i < 5; i++ {
		in.log = append(in.log, models.GameLogEntry{Points: 45, Rebounds: 14, Assists: 10, Minutes: 38})
	}
	if got := recentFormMultiplier(in); got != maxFormMultiplier {
		t.Errorf("expected clamp at %f, got %f", maxFormMultiplier, got)
	}
}

func TestHeadToHeadMultiplier(t *testing.T) {
	in := neutralInput()

	// One meeting is not enough signal
	in.log = models.GameLog{{Matchup: "DAL vs. BOS", Points: 35, Minutes: 30}}
	if got := headToHeadMultiplier(in); got != 1.0 {
		t.Errorf("single meeting should be neutral, got %f", got)
	}

	// Two current-season meetings at 30 ppg vs 20 season: ratio 1.5
	// damped by half and clamped to the factor ceiling
	in.log = models.GameLog{
		{Matchup: "DAL vs. BOS", Points: 30, Minutes: 30},
		{Matchup: "DAL @ BOS", Points: 30, Minutes: 30},
	}
	if got := headToHeadMultiplier(in); got != maxFormMultiplier {
		t.Errorf("expected clamp at %f, got %f", maxFormMultiplier, got)
	}

	// Prior season fills out a thin current sample
	in.log = models.GameLog{{Matchup: "DAL vs. BOS", Points: 22, Minutes: 30}}
	in.priorLog = models.GameLog{{Matchup: "DAL @ BOS", Points: 22, Minutes: 30}}
	// ratio 1.1 damped to 1.05
	if got := headToHeadMultiplier(in); !almostEqual(got, 1.05) {
		t.Errorf("expected 1.05 with prior-season fallback, got %f", got)
	}
}

func TestSystemFitNeutral(t *testing.T) {
	in := neutralInput()
	if got := systemFitMultiplier(in); !almostEqual(got, 1.0) {
		t.Errorf("average everything should be neutral, got %f", got)
	}

	in.player.Minutes = 0
	if got := systemFitMultiplier(in); got != 1.0 {
		t.Errorf("zero minutes should be neutral, got %f", got)
	}
}

func TestSystemFitScorerVsWeakDefense(t *testing.T) {
	in := neutralInput()
	in.player.Points = 27 // 0.9 pts/min at 30 minutes
	in.opponent.DefensiveRating = 118

	// Offensive fit stays 1.0, defensive matchup 1.15
	expected := 1.0*0.6 + 1.15*0.4
	if got := systemFitMultiplier(in); !almostEqual(got, expected) {
		t.Errorf("expected %f, got %f", expected, got)
	}
}

func TestSystemFitFastPaceScorer(t *testing.T) {
	in := neutralInput()
	in.player.Points = 27 // 0.9 pts/min
	in.team.Pace = 103    // fast tier

	expected := 1.10*0.6 + 1.0*0.4
	if got := systemFitMultiplier(in); !almostEqual(got, expected) {
		t.Errorf("expected %f, got %f", expected, got)
	}
}

func TestUpsideMultiplier(t *testing.T) {
	in := neutralInput()

	// No log data stays neutral
	if got := upsideMultiplier(in, models.StatPoints); got != 1.0 {
		t.Errorf("no log should be neutral, got %f", got)
	}

	// Flat 20-point games with a 40-point outlier: career-high and 90th
	// percentile ratios both 2.0, volatility from the outlier, plus the
	// 18+ ppg star bonus and the per-minute ceiling bonus
	day := time.Now()
	for i := 0; i < 9; i++ {
		in.log = append(in.log, models.GameLogEntry{GameDate: day, Points: 20, Minutes: 30})
	}
	in.log = append(in.log, models.GameLogEntry{GameDate: day, Points: 40, Minutes: 30})

	got := upsideMultiplier(in, models.StatPoints)
	if got <= 1.1 {
		t.Errorf("outlier history should produce real upside, got %f", got)
	}
	if got > maxUpsideMultiplier {
		t.Errorf("upside must cap at %f, got %f", maxUpsideMultiplier, got)
	}
}

func TestUpsideNeverBelowOne(t *testing.T) {
	in := neutralInput()
	for i := 0; i < 10; i++ {
		in.log = append(in.log, models.GameLogEntry{Points: 20, Minutes: 30})
	}
	if got := upsideMultiplier(in, models.StatPoints); got < 1.0 {
		t.Errorf("upside must never reduce a prediction, got %f", got)
	}
}
