package analysis

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/config"
	"github.com/yourusername/courtside-edge/internal/models"
)

func bettingConfig() config.BettingConfig {
	return config.BettingConfig{
		MinExpectedValue: 0,
		KellyFraction:    0.25,
		MaxKellyUnits:    3.0,
	}
}

func TestGenerateKeepsPositiveEV(t *testing.T) {
	gen := NewBetGenerator(bettingConfig(), logrus.New())
	features := slateFeatures()

	// Prediction 30 against a 25.5 line makes the over a strong play
	// and the under badly negative
	lines := []models.OddsLine{
		{PlayerName: "Luka Doncic", Stat: models.StatPoints, Line: 25.5,
			OverOdds: -110, UnderOdds: -110, Book: "draftkings"},
	}

	out := gen.Generate(features, lines, models.StatPoints)
	if len(out) != 1 {
		t.Fatalf("expected only the over to survive, got %d candidates", len(out))
	}

	c := out[0]
	if c.Direction != models.DirectionOver {
		t.Errorf("expected OVER, got %s", c.Direction)
	}
	if c.PlayerName != "Luka Dončić" {
		t.Errorf("fuzzy match should resolve the canonical name, got %s", c.PlayerName)
	}
	if c.ExpectedValue <= 0 {
		t.Errorf("expected positive EV, got %f", c.ExpectedValue)
	}
	if c.Probability <= 0.5 || c.Probability >= 1 {
		t.Errorf("over probability out of range: %f", c.Probability)
	}
	if c.KellyUnits <= 0 || c.KellyUnits > 3.0 {
		t.Errorf("kelly units out of range: %f", c.KellyUnits)
	}
	if c.Edge() <= 0 {
		t.Errorf("positive-EV candidate must beat the implied probability: %f", c.Edge())
	}
}

func TestGenerateIncludeNegative(t *testing.T) {
	cfg := bettingConfig()
	cfg.IncludeNegative = true
	gen := NewBetGenerator(cfg, logrus.New())

	lines := []models.OddsLine{
		{PlayerName: "Luka Dončić", Stat: models.StatPoints, Line: 25.5,
			OverOdds: -110, UnderOdds: -110, Book: "draftkings"},
	}

	out := gen.Generate(slateFeatures(), lines, models.StatPoints)
	if len(out) != 2 {
		t.Fatalf("expected both sides with include_negative, got %d", len(out))
	}
	if out[0].ExpectedValue < out[1].ExpectedValue {
		t.Error("candidates must sort by EV descending")
	}
	if out[0].Direction != models.DirectionOver {
		t.Errorf("over should rank first, got %s", out[0].Direction)
	}
}

func TestGenerateFiltersStatAndUnknownPlayers(t *testing.T) {
	gen := NewBetGenerator(bettingConfig(), logrus.New())

	lines := []models.OddsLine{
		{PlayerName: "Luka Dončić", Stat: models.StatRebounds, Line: 8.5,
			OverOdds: -110, UnderOdds: -110, Book: "fanduel"},
		{PlayerName: "Victor Wembanyama", Stat: models.StatPoints, Line: 24.5,
			OverOdds: -110, UnderOdds: -110, Book: "fanduel"},
	}

	out := gen.Generate(slateFeatures(), lines, models.StatPoints)
	if len(out) != 0 {
		t.Fatalf("wrong-stat rows and unknown players must be dropped, got %d", len(out))
	}
}

func TestGenerateMaxKellyClamp(t *testing.T) {
	cfg := bettingConfig()
	cfg.MaxKellyUnits = 0.1
	gen := NewBetGenerator(cfg, logrus.New())

	lines := []models.OddsLine{
		{PlayerName: "Luka Dončić", Stat: models.StatPoints, Line: 20.5,
			OverOdds: 100, UnderOdds: -110, Book: "draftkings"},
	}

	out := gen.Generate(slateFeatures(), lines, models.StatPoints)
	if len(out) == 0 {
		t.Fatal("expected a candidate")
	}
	if out[0].KellyUnits > 0.1 {
		t.Errorf("kelly units must clamp at the configured cap, got %f", out[0].KellyUnits)
	}
}

func TestGenerateOneSidedLine(t *testing.T) {
	cfg := bettingConfig()
	cfg.IncludeNegative = true
	gen := NewBetGenerator(cfg, logrus.New())

	// Book pulled the under
	lines := []models.OddsLine{
		{PlayerName: "Luka Dončić", Stat: models.StatPoints, Line: 25.5,
			OverOdds: -115, Book: "draftkings"},
	}

	out := gen.Generate(slateFeatures(), lines, models.StatPoints)
	if len(out) != 1 || out[0].Direction != models.DirectionOver {
		t.Fatalf("expected only the posted side, got %+v", out)
	}
}

func TestGroupByPrice(t *testing.T) {
	candidates := []models.BetCandidate{
		{AmericanOdds: -110},
		{AmericanOdds: 200},
		{AmericanOdds: 300},
		{AmericanOdds: 500},
		{AmericanOdds: 650},
	}

	grouped := GroupByPrice(candidates)
	if len(grouped.Mainline) != 2 {
		t.Errorf("expected 2 mainline (-110, +200), got %d", len(grouped.Mainline))
	}
	if len(grouped.Longshots) != 2 {
		t.Errorf("expected 2 longshots (+500, +650), got %d", len(grouped.Longshots))
	}
}

func TestFormatBetLine(t *testing.T) {
	c := &models.BetCandidate{
		PlayerName:    "Luka Dončić",
		Stat:          models.StatPoints,
		Line:          27.5,
		Direction:     models.DirectionOver,
		AmericanOdds:  -115,
		Book:          "draftkings",
		ExpectedValue: 0.052,
		FairValueOdds: -120,
		KellyUnits:    0.25,
	}

	tests := []struct {
		style    FormatStyle
		expected string
	}{
		{StyleDetailed, "Luka Dončić OVER 27.5 Points -115 (0.25u - FV: -120) @ DRAFTKINGS"},
		{StyleEV, "Luka Dončić OVER 27.5 Points -115 (EV: +5.2%)"},
		{StyleSimple, "Luka Dončić OVER 27.5 Points -115"},
	}

	for _, tt := range tests {
		if got := FormatBetLine(c, tt.style); got != tt.expected {
			t.Errorf("style %s:\n got %q\nwant %q", tt.style, got, tt.expected)
		}
	}
}

func TestFormatBetLinePositiveOdds(t *testing.T) {
	c := &models.BetCandidate{
		PlayerName:   "Mike Conley",
		Stat:         models.StatThrees,
		Line:         2.5,
		Direction:    models.DirectionUnder,
		AmericanOdds: 150,
	}
	if got := FormatBetLine(c, StyleSimple); got != "Mike Conley UNDER 2.5 Threes +150" {
		t.Errorf("unexpected line: %q", got)
	}
}
