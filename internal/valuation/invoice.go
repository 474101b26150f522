package valuation

import (
	"math"
	"time"
)

// discountYearDays is the day-count used to derive a per-diem compounding
// rate from an effective annual rate. Distinct from the 360-day commercial
// convention used for TNA conversion: that one is a creation-time quoting
// convention, this one is the discounting calendar.
const discountYearDays = 365

// InvoiceValue is the result of discounting a single invoice to a reference
// date.
type InvoiceValue struct {
	DaysRemaining     int     // whole calendar days until due; negative when past due
	DailyDiscountRate float64 // per-diem rate derived from the portfolio EAR
	DiscountedAmount  float64 // present value of the face amount
}

// DailyDiscountRate derives the per-diem compounding rate equivalent to the
// given effective annual rate (a percentage):
//
//	daily = (1 + EAR/100)^(1/365) - 1
func DailyDiscountRate(effectiveAnnualRate float64) float64 {
	return math.Pow(1+effectiveAnnualRate/100, 1.0/discountYearDays) - 1
}

// DaysBetween returns the number of whole calendar days from one date to
// another. Time-of-day and location are ignored; both arguments are treated
// as civil dates.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// ValueInvoice computes the present value of a face amount due at dueDate,
// discounted to referenceDate using the portfolio's effective annual rate.
//
// An invoice at or past maturity is worth exactly its face amount: the holder
// is entitled to full face value and no further discount applies. Only
// invoices not yet due are discounted:
//
//	discounted = face / (1 + daily)^daysRemaining
func ValueInvoice(faceAmount, effectiveAnnualRate float64, dueDate, referenceDate time.Time) InvoiceValue {
	days := DaysBetween(referenceDate, dueDate)
	daily := DailyDiscountRate(effectiveAnnualRate)

	discounted := faceAmount
	if days > 0 {
		discounted = faceAmount / math.Pow(1+daily, float64(days))
	}

	return InvoiceValue{
		DaysRemaining:     days,
		DailyDiscountRate: daily,
		DiscountedAmount:  discounted,
	}
}
