package service

import "math"

// RoundingPrecision is the scale factor for two-decimal rounding of monetary
// values in API responses.
const RoundingPrecision = 100

// round rounds a float64 value to two decimal places.
//
// The valuation engine itself never rounds; rounding happens once, here, at
// the service boundary, so that a summary's total always equals the sum of
// its rounded lines.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}
