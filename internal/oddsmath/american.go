// Package oddsmath provides American-odds conversions, a normal probability
// model for prop lines and expected-value / Kelly sizing helpers.
package oddsmath

import (
	"math"
	"strconv"
)

// AmericanToDecimal converts American odds to decimal odds
func AmericanToDecimal(odds int) float64 {
	if odds > 0 {
		return float64(odds)/100 + 1
	}
	return 100/math.Abs(float64(odds)) + 1
}

// AmericanToImpliedProb converts American odds to the book's implied probability
func AmericanToImpliedProb(odds int) float64 {
	if odds > 0 {
		return 100 / (float64(odds) + 100)
	}
	abs := math.Abs(float64(odds))
	return abs / (abs + 100)
}

// FairValueOdds converts a probability to no-vig American odds, rounded to
// the nearest 5 and saturated at +/-10000 for degenerate probabilities
func FairValueOdds(probability float64) int {
	if probability >= 1.0 {
		return -10000
	}
	if probability <= 0.0 {
		return 10000
	}

	var odds float64
	if probability >= 0.5 {
		odds = -100 * probability / (1 - probability)
	} else {
		odds = 100 * (1 - probability) / probability
	}

	rounded := int(math.Round(odds/5) * 5)
	if rounded < -10000 {
		return -10000
	}
	if rounded > 10000 {
		return 10000
	}
	return rounded
}

// FormatAmerican renders American odds with an explicit sign on positives
func FormatAmerican(odds int) string {
	if odds > 0 {
		return "+" + strconv.Itoa(odds)
	}
	return strconv.Itoa(odds)
}
