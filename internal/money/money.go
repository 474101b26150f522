// Package money handles the two currency concerns of the factoring service:
// the fixed USD-to-PEN conversion applied when an invoice is created, and
// formatting PEN amounts for display. Conversion is done in exact decimal
// arithmetic so 100 USD persists as exactly 370 PEN.
package money

import (
	"fmt"
	"math"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/quipufin/factoring-backend/internal/apperrors"
)

// Supported currency codes.
const (
	PEN = "PEN"
	USD = "USD"
)

// usdToPEN is the fixed commercial exchange rate applied at invoice creation.
// Invoices are always persisted in PEN.
var usdToPEN = decimal.RequireFromString("3.7")

// ToPEN converts an amount in the given currency to PEN.
//
// PEN amounts pass through unchanged. USD amounts are multiplied by the fixed
// 3.7 rate using decimal arithmetic, so the conversion is exact for any input
// that is exact in two decimal places. Any other currency is rejected.
func ToPEN(amount float64, currency string) (float64, error) {
	switch currency {
	case PEN:
		return amount, nil
	case USD:
		converted, _ := decimal.NewFromFloat(amount).Mul(usdToPEN).Float64()
		return converted, nil
	default:
		return 0, fmt.Errorf("%q: %w", currency, apperrors.ErrUnsupportedCurrency)
	}
}

// Supported reports whether the given currency code can be accepted on an
// invoice creation request.
func Supported(currency string) bool {
	return currency == PEN || currency == USD
}

// FormatPEN renders an amount as a PEN money string (e.g. "S/123.45") for
// reports. The amount is rounded to centimos first.
func FormatPEN(amount float64) string {
	cents := int64(math.Round(amount * 100))
	return gomoney.New(cents, gomoney.PEN).Display()
}
