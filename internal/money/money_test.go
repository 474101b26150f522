package money

import (
	"errors"
	"strings"
	"testing"

	"github.com/quipufin/factoring-backend/internal/apperrors"
)

// TestToPEN tests the fixed-rate conversion applied at invoice creation.
//
// WHY: Invoices are persisted in PEN only. The conversion must be exact
// (100 USD is 370 PEN, not 369.999...) because the stored amount is the face
// value every later valuation discounts.
func TestToPEN(t *testing.T) {
	t.Run("USD converts at exactly 3.7", func(t *testing.T) {
		got, err := ToPEN(100, USD)
		if err != nil {
			t.Fatalf("ToPEN() returned unexpected error: %v", err)
		}
		if got != 370 {
			t.Errorf("ToPEN(100, USD) = %v, want exactly 370", got)
		}
	})

	t.Run("USD cents convert exactly", func(t *testing.T) {
		got, err := ToPEN(10.50, USD)
		if err != nil {
			t.Fatalf("ToPEN() returned unexpected error: %v", err)
		}
		if got != 38.85 {
			t.Errorf("ToPEN(10.50, USD) = %v, want exactly 38.85", got)
		}
	})

	t.Run("PEN passes through unchanged", func(t *testing.T) {
		got, err := ToPEN(1234.56, PEN)
		if err != nil {
			t.Fatalf("ToPEN() returned unexpected error: %v", err)
		}
		if got != 1234.56 {
			t.Errorf("ToPEN(1234.56, PEN) = %v, want identity", got)
		}
	})

	t.Run("unknown currency is rejected", func(t *testing.T) {
		_, err := ToPEN(10, "EUR")
		if !errors.Is(err, apperrors.ErrUnsupportedCurrency) {
			t.Errorf("ToPEN(10, EUR) = %v, want ErrUnsupportedCurrency", err)
		}
	})
}

// TestSupported tests the currency whitelist.
//
// WHY: Validation uses this to reject requests before any conversion runs.
func TestSupported(t *testing.T) {
	if !Supported(PEN) || !Supported(USD) {
		t.Error("PEN and USD must both be supported")
	}
	if Supported("EUR") || Supported("") {
		t.Error("only PEN and USD may be supported")
	}
}

// TestFormatPEN tests display formatting for reports.
//
// WHY: The PDF export shows money to users; it must carry the sol symbol and
// two decimals.
func TestFormatPEN(t *testing.T) {
	got := FormatPEN(970.879)
	if !strings.Contains(got, "970.88") {
		t.Errorf("FormatPEN(970.879) = %q, want the amount rounded to centimos", got)
	}
	if !strings.Contains(got, "S/") {
		t.Errorf("FormatPEN(970.879) = %q, want the sol symbol", got)
	}
}
