package valuation

import (
	"math"
	"testing"
)

// TestEffectiveAnnualRate_TEA tests the identity conversion.
//
// WHY: A TEA value is already effective. Any drift here would silently change
// every discount computed for a portfolio created with that rate.
func TestEffectiveAnnualRate_TEA(t *testing.T) {
	t.Run("returns the value unchanged across the valid range", func(t *testing.T) {
		for _, v := range []float64{0.01, 1, 12.5, 36, 43.27, 99.99, 100} {
			if got := EffectiveAnnualRate(RateTEA, v); got != v {
				t.Errorf("EffectiveAnnualRate(TEA, %v) = %v, want identity", v, got)
			}
		}
	})
}

// TestEffectiveAnnualRate_TNA tests daily compounding over a 360-day
// commercial year.
//
// WHY: The TNA formula is the only real arithmetic in rate conversion and its
// constants (360-day year, percentage scaling) are easy to get subtly wrong.
func TestEffectiveAnnualRate_TNA(t *testing.T) {
	t.Run("36 percent nominal compounds to roughly 43.3 percent effective", func(t *testing.T) {
		got := EffectiveAnnualRate(RateTNA, 36.0)

		// (1 + 0.36/360)^360 - 1 = 0.43309...
		want := (math.Pow(1+0.36/360, 360) - 1) * 100
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("EffectiveAnnualRate(TNA, 36) = %v, want %v", got, want)
		}
		if got < 43.2 || got > 43.4 {
			t.Errorf("EffectiveAnnualRate(TNA, 36) = %v, expected around 43.3", got)
		}
	})

	t.Run("compounding never reduces the rate", func(t *testing.T) {
		for _, v := range []float64{0.5, 1, 5, 17.3, 36, 50, 100} {
			got := EffectiveAnnualRate(RateTNA, v)
			if got < v {
				t.Errorf("EffectiveAnnualRate(TNA, %v) = %v, daily compounding must not reduce the rate", v, got)
			}
		}
	})

	t.Run("zero nominal rate stays zero", func(t *testing.T) {
		if got := EffectiveAnnualRate(RateTNA, 0); got != 0 {
			t.Errorf("EffectiveAnnualRate(TNA, 0) = %v, want 0", got)
		}
	})
}

// TestRateTypeValid tests the rate type whitelist.
//
// WHY: Unknown rate types must be caught upstream; Valid is what the
// validation layer relies on for that.
func TestRateTypeValid(t *testing.T) {
	if !RateTEA.Valid() || !RateTNA.Valid() {
		t.Error("TEA and TNA must both be valid rate types")
	}
	if RateType("TCEA").Valid() {
		t.Error("unknown rate type reported as valid")
	}
	if RateType("").Valid() {
		t.Error("empty rate type reported as valid")
	}
}

// TestEffectiveAnnualRate_UnknownType tests the fallback for unrecognized
// rate types.
//
// WHY: The converter is documented to yield 0 for unknown types rather than
// guessing a convention; callers validate the type first.
func TestEffectiveAnnualRate_UnknownType(t *testing.T) {
	if got := EffectiveAnnualRate(RateType("TCEA"), 36); got != 0 {
		t.Errorf("EffectiveAnnualRate(unknown, 36) = %v, want 0", got)
	}
}
