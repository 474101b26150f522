package valuation

import (
	"fmt"
	"math"
	"time"

	"github.com/quipufin/factoring-backend/internal/apperrors"
	"github.com/quipufin/factoring-backend/internal/model"
)

// InvoiceSettlement is one invoice's line in a settlement summary.
type InvoiceSettlement struct {
	InvoiceID         string    `json:"invoiceId"`
	InvoiceNumber     string    `json:"invoiceNumber"`
	FaceAmount        float64   `json:"faceAmount"`
	DueDate           time.Time `json:"dueDate"`
	DaysRemaining     int       `json:"daysRemaining"`
	DailyDiscountRate float64   `json:"dailyDiscountRate"`
	DiscountedAmount  float64   `json:"discountedAmount"`
}

// SettlementSummary is the discounted value of a portfolio's invoices as of a
// reference date. PerInvoice preserves the portfolio's insertion order and
// TotalDiscountedAmount is the sum over it.
type SettlementSummary struct {
	ReferenceDate         time.Time           `json:"referenceDate"`
	PerInvoice            []InvoiceSettlement `json:"perInvoice"`
	TotalDiscountedAmount float64             `json:"totalDiscountedAmount"`
}

// Aggregate values every invoice in the portfolio as of referenceDate and sums
// the results.
//
// A portfolio with no invoices is a valid input: the summary has an empty
// PerInvoice and a zero total. The result depends only on the inputs, so
// repeated calls with the same arguments produce identical summaries.
//
// Aggregation is strict: a portfolio that cannot supply a usable rate, or any
// invoice with a non-positive face amount or a foreign portfolio reference,
// fails the whole aggregation. A partial summary would misstate the total.
func Aggregate(p model.Portfolio, referenceDate time.Time) (SettlementSummary, error) {
	if err := checkRate(p.EffectiveAnnualRate); err != nil {
		return SettlementSummary{}, err
	}

	summary := SettlementSummary{
		ReferenceDate: referenceDate,
		PerInvoice:    make([]InvoiceSettlement, 0, len(p.Invoices)),
	}

	for _, inv := range p.Invoices {
		if inv.PortfolioID != p.ID {
			return SettlementSummary{}, fmt.Errorf("invoice %s belongs to portfolio %s, not %s: %w",
				inv.ID, inv.PortfolioID, p.ID, apperrors.ErrDataInconsistency)
		}
		if inv.FaceAmount <= 0 {
			return SettlementSummary{}, fmt.Errorf("invoice %s has face amount %v: %w",
				inv.ID, inv.FaceAmount, apperrors.ErrDataInconsistency)
		}

		v := ValueInvoice(inv.FaceAmount, p.EffectiveAnnualRate, inv.DueDate, referenceDate)
		summary.PerInvoice = append(summary.PerInvoice, InvoiceSettlement{
			InvoiceID:         inv.ID,
			InvoiceNumber:     inv.InvoiceNumber,
			FaceAmount:        inv.FaceAmount,
			DueDate:           inv.DueDate,
			DaysRemaining:     v.DaysRemaining,
			DailyDiscountRate: v.DailyDiscountRate,
			DiscountedAmount:  v.DiscountedAmount,
		})
		summary.TotalDiscountedAmount += v.DiscountedAmount
	}

	return summary, nil
}

// checkRate rejects rates the discounting formula cannot work with. There is
// no implicit defaulting to a zero rate: a bad rate is a data-integrity
// failure, not a valuation of zero interest. The (0, 100] window applies to
// the rate as entered, before conversion; a nominal rate near that bound
// converts to an effective rate well above 100 and is still discountable.
func checkRate(ear float64) error {
	if math.IsNaN(ear) || math.IsInf(ear, 0) || ear < 0 {
		return fmt.Errorf("effective annual rate %v: %w", ear, apperrors.ErrPortfolioRateInvalid)
	}
	return nil
}
