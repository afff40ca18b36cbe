package oddsmath

import (
	"math"

	"github.com/yourusername/courtside-edge/internal/models"
)

// Standard deviation as a fraction of the prediction, per stat. Threes,
// steals and blocks swing far more game to game than points do.
var stdDevFractions = map[models.StatType]float64{
	models.StatPoints:   0.20,
	models.StatRebounds: 0.25,
	models.StatAssists:  0.30,
	models.StatThrees:   0.35,
	models.StatSteals:   0.40,
	models.StatBlocks:   0.45,
}

const defaultStdDevFraction = 0.25

// StdDevFor estimates the standard deviation of a stat prediction
func StdDevFor(stat models.StatType, prediction float64) float64 {
	fraction, ok := stdDevFractions[stat]
	if !ok {
		fraction = defaultStdDevFraction
	}
	return prediction * fraction
}

// ProbOver returns the probability the outcome exceeds the line under a
// normal model. A near-zero prediction degrades to a coin flip. A
// standard deviation under 0.5 is floored at max(0.5, 10% of the
// prediction) rather than treated as degenerate, so low-variance props
// still price off the line instead of collapsing to 0.5.
func ProbOver(prediction, line, stdDev float64) float64 {
	if math.Abs(prediction) < 0.1 {
		return 0.5
	}
	if stdDev < 0.5 {
		stdDev = math.Max(0.5, 0.1*prediction)
	}

	z := (line - prediction) / stdDev
	return 1 - normCDF(z)
}

// ProbUnder returns the complement of ProbOver
func ProbUnder(prediction, line, stdDev float64) float64 {
	return 1 - ProbOver(prediction, line, stdDev)
}

// normCDF is the standard normal cumulative distribution function
func normCDF(z float64) float64 {
	return 0.5 * math.Erfc(-z/math.Sqrt2)
}

// ExpectedValue returns the expected profit of a $1 stake at the given
// American odds when the true win probability is p
func ExpectedValue(probability float64, odds int) float64 {
	b := AmericanToDecimal(odds) - 1
	return probability*b - (1 - probability)
}
