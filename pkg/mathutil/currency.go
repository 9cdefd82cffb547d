// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/consortium-simulator/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// RoundHalfUp rounds val to the given number of decimals with ties going
// toward positive infinity, the way the reference spreadsheet stores its
// intermediate cells. Non-finite input is returned unchanged.
func RoundHalfUp(val float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return roundHalfUpInt(val*factor) / factor
}

func roundHalfUpInt(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	floor := math.Floor(x)
	if x-floor >= 0.5 {
		return floor + 1
	}
	return floor
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// OrFallback returns val when it is finite and fallback otherwise.
func OrFallback(val, fallback float64) float64 {
	if !IsFinite(val) {
		return fallback
	}
	return val
}

// SafeRatio divides numerator by denominator, returning 0 whenever the result
// would not be a finite number.
func SafeRatio(numerator, denominator float64) float64 {
	return OrFallback(numerator/denominator, 0)
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// PercentToDecimal converts percentage points (15 means 15%) to a fraction.
func PercentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}
