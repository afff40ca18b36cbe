package specialty

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/models"
)

func neutralOpponent() *models.TeamSeasonProfile {
	return &models.TeamSeasonProfile{
		Abbreviation:       "BOS",
		Pace:               98,
		ThreesAllowed:      35,
		OppFieldGoalPct:    0.45,
		PaintPointsAllowed: 25,
		DefReboundPct:      0.73,
	}
}

func TestReboundChancesNeutralOpponent(t *testing.T) {
	analyzer := NewReboundAnalyzer(logrus.New())

	var log models.GameLog
	for i := 0; i < 10; i++ {
		log = append(log, models.GameLogEntry{Rebounds: 8, Minutes: 32})
	}

	player := &models.PlayerSeasonRecord{Name: "Big Man", Rebounds: 8, Minutes: 32}
	result := analyzer.Chances(player, neutralOpponent(), log, 30)

	// 8/32 = 0.25 reb/min, doubled to 0.5 chances/min; every opponent
	// factor neutral; 8 rpg earns the big-man position factor
	if !almostEqual(result.RebPerMinute, 0.25) {
		t.Errorf("expected 0.25 reb/min, got %f", result.RebPerMinute)
	}
	if !almostEqual(result.BaseChancesPerMin, 0.5) {
		t.Errorf("expected 0.5 base chances/min, got %f", result.BaseChancesPerMin)
	}
	if !almostEqual(result.Factors["position"], 1.15) {
		t.Errorf("expected position factor 1.15, got %f", result.Factors["position"])
	}
	if !almostEqual(result.ExpectedChances, 0.5*1.15*30) {
		t.Errorf("expected %f chances, got %f", 0.5*1.15*30, result.ExpectedChances)
	}
}

func TestReboundChancesFactorDirections(t *testing.T) {
	analyzer := NewReboundAnalyzer(logrus.New())
	player := &models.PlayerSeasonRecord{Name: "Wing", Rebounds: 4, Minutes: 30}

	// A cold-shooting, three-happy, glass-weak opponent inflates chances
	opp := neutralOpponent()
	opp.ThreesAllowed = 42
	opp.OppFieldGoalPct = 0.40
	opp.DefReboundPct = 0.68

	result := analyzer.Chances(player, opp, nil, 0)
	for _, name := range []string{"fg3a", "shooting", "dreb"} {
		if result.Factors[name] <= 1.0 {
			t.Errorf("factor %s should exceed 1.0, got %f", name, result.Factors[name])
		}
	}
	if !almostEqual(result.Factors["position"], 1.0) {
		t.Errorf("4 rpg is a guard, expected 1.0, got %f", result.Factors["position"])
	}
	// No log and no explicit minutes fall back to season minutes
	if !almostEqual(result.ExpectedMinutes, 30) {
		t.Errorf("expected season minutes, got %f", result.ExpectedMinutes)
	}
}

func TestReboundChancesMissingOpponentData(t *testing.T) {
	analyzer := NewReboundAnalyzer(logrus.New())
	player := &models.PlayerSeasonRecord{Name: "Wing", Rebounds: 5, Minutes: 28}

	// Zeroed defensive columns degrade to league averages, pace 0 is
	// implausible and degrades the same way
	opp := &models.TeamSeasonProfile{Abbreviation: "BOS"}
	result := analyzer.Chances(player, opp, nil, 0)

	for _, name := range []string{"fg3a", "shooting", "paint", "dreb", "pace"} {
		if !almostEqual(result.Factors[name], 1.0) {
			t.Errorf("missing data should leave %s neutral, got %f", name, result.Factors[name])
		}
	}
}
