package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func slateFeatures() []*models.MatchupFeatureSet {
	return []*models.MatchupFeatureSet{
		{
			PlayerName: "Luka Dončić", PlayerTeam: "DAL", Opponent: "BOS",
			SeasonPoints: 25, SeasonRebounds: 8, SeasonAssists: 9,
			PredictedPoints: 30, PredictedRebounds: 8, PredictedAssists: 9,
		},
		{
			PlayerName: "Mike Conley", PlayerTeam: "MIN", Opponent: "DAL",
			SeasonPoints: 11, SeasonRebounds: 3, SeasonAssists: 6,
			PredictedPoints: 9, PredictedRebounds: 3, PredictedAssists: 6,
		},
	}
}

func TestAnalyzeWithoutLines(t *testing.T) {
	analyzer := NewValueAnalyzer(logrus.New())
	plays := analyzer.Analyze(slateFeatures(), nil, time.Now())

	if len(plays) != 2 {
		t.Fatalf("expected 2 plays, got %d", len(plays))
	}

	// No posted lines, so value is the deviation from season averages:
	// Dončić +5 points, overall 10; Conley -2 points, overall -4
	if plays[0].PlayerName != "Luka Dončić" {
		t.Errorf("expected best value first, got %s", plays[0].PlayerName)
	}
	if !almostEqual(plays[0].PointsValue, 5) || !almostEqual(plays[0].OverallValue, 10) {
		t.Errorf("unexpected values: %+v", plays[0])
	}
	if !almostEqual(plays[1].OverallValue, -4) {
		t.Errorf("expected overall -4, got %f", plays[1].OverallValue)
	}

	if plays[0].Direction() != models.DirectionOver {
		t.Errorf("overall 10 should read OVER, got %q", plays[0].Direction())
	}
	if plays[1].Direction() != models.DirectionUnder {
		t.Errorf("overall -4 should read UNDER, got %q", plays[1].Direction())
	}
}

func TestAnalyzeWithPostedLines(t *testing.T) {
	analyzer := NewValueAnalyzer(logrus.New())
	lines := []models.OddsLine{
		{PlayerName: "Luka Dončić", Stat: models.StatPoints, Line: 27.5, Book: "draftkings"},
	}

	plays := analyzer.Analyze(slateFeatures(), lines, time.Now())

	// Posted points line replaces the season-average stand-in
	if !almostEqual(plays[0].PointsValue, 2.5) {
		t.Errorf("expected points value 2.5 against the posted line, got %f", plays[0].PointsValue)
	}
	if !almostEqual(plays[0].OverallValue, 5) {
		t.Errorf("expected overall 5, got %f", plays[0].OverallValue)
	}
}

func TestValueDirectionNeutralBand(t *testing.T) {
	play := models.ValuePlay{OverallValue: 0.5}
	if dir := play.Direction(); dir != "" {
		t.Errorf("overall 0.5 should be neutral, got %q", dir)
	}
	play.OverallValue = -0.9
	if dir := play.Direction(); dir != "" {
		t.Errorf("overall -0.9 should be neutral, got %q", dir)
	}
}
