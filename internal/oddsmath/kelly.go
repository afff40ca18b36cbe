package oddsmath

// DefaultKellyFraction is quarter Kelly, a conservative sizing default.
const DefaultKellyFraction = 0.25

// MaxKellyUnits caps a single recommendation regardless of edge.
const MaxKellyUnits = 3.0

// KellyUnits returns the fractional-Kelly stake in units for a bet at the
// given American odds. Probabilities at or outside (0, 1) and negative-edge
// bets size to zero.
func KellyUnits(probability float64, odds int, fraction float64) float64 {
	if probability <= 0 || probability >= 1 {
		return 0
	}
	if fraction <= 0 {
		fraction = DefaultKellyFraction
	}

	b := AmericanToDecimal(odds) - 1
	q := 1 - probability

	fullKelly := (probability*b - q) / b
	if fullKelly <= 0 {
		return 0
	}

	units := fullKelly * fraction
	if units > MaxKellyUnits {
		return MaxKellyUnits
	}
	return units
}
