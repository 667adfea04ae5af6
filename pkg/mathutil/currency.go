// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/clachance14/CostTrak-sub001/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// FloorAt returns val raised to floor when it falls below it. This is the
// shape of every "forecast never drops below spend" rule in the engine.
func FloorAt(val, floor float64) float64 {
	if val < floor {
		return floor
	}
	return val
}

// NonNegative clamps a value at zero.
func NonNegative(val float64) float64 {
	if val < 0 {
		return 0
	}
	return val
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// SafeDivide divides numerator by denominator, returning 0 when the
// denominator is 0 rather than propagating Inf/NaN into the reports.
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
