// Package valuation implements the factoring valuation engine: conversion of
// nominal rates to effective annual rates, time-value discounting of single
// invoices, and aggregation of a portfolio's outstanding invoices into a
// settlement summary.
//
// Everything in this package is a pure function of its inputs. There is no
// I/O, no shared state, and no rounding: callers round for presentation.
package valuation

import "math"

// RateType identifies the convention a quoted annual rate is expressed in.
type RateType string

const (
	// RateTEA is an effective annual rate (tasa efectiva anual): compounding
	// is already applied, no conversion needed.
	RateTEA RateType = "TEA"

	// RateTNA is a nominal annual rate (tasa nominal anual): it must be
	// compounded to obtain the effective rate.
	RateTNA RateType = "TNA"
)

// commercialYearDays is the banking day-count used when compounding a nominal
// annual rate. This is a fixed domain constant, not configuration.
const commercialYearDays = 360

// Valid reports whether t is a known rate type.
func (t RateType) Valid() bool {
	return t == RateTEA || t == RateTNA
}

// EffectiveAnnualRate converts a quoted annual rate into an effective annual
// rate, both expressed as percentages.
//
// A TEA value is returned unchanged. A TNA value is treated as a nominal
// annual rate compounded daily over a 360-day commercial year:
//
//	EAR% = ((1 + v/100/360)^360 - 1) * 100
//
// Bounds on v (0 < v <= 100) are the caller's responsibility and are enforced
// at the trust boundary before conversion; this function applies only the
// stated formula. An unknown rate type yields 0.
func EffectiveAnnualRate(rateType RateType, value float64) float64 {
	switch rateType {
	case RateTEA:
		return value
	case RateTNA:
		daily := value / 100 / commercialYearDays
		return (math.Pow(1+daily, commercialYearDays) - 1) * 100
	}
	return 0
}
