package valuation

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/quipufin/factoring-backend/internal/apperrors"
	"github.com/quipufin/factoring-backend/internal/model"
)

func testPortfolio(ear float64, invoices ...model.Invoice) model.Portfolio {
	for i := range invoices {
		invoices[i].PortfolioID = "p-1"
	}
	return model.Portfolio{
		ID:                  "p-1",
		Name:                "Cartera Norte",
		EffectiveAnnualRate: ear,
		Status:              model.PortfolioActive,
		Invoices:            invoices,
	}
}

// TestAggregate tests portfolio-level aggregation of invoice valuations.
//
// WHY: The settlement amount credited to a user is this total. It must be the
// exact sum of the per-invoice values, preserve insertion order, and treat an
// empty portfolio as a valid zero rather than an error.
func TestAggregate(t *testing.T) {
	ref := date(2025, time.February, 1)

	t.Run("empty portfolio yields empty summary with zero total", func(t *testing.T) {
		summary, err := Aggregate(testPortfolio(43.31), ref)
		if err != nil {
			t.Fatalf("Aggregate() returned unexpected error: %v", err)
		}
		if len(summary.PerInvoice) != 0 {
			t.Errorf("PerInvoice has %d entries, want 0", len(summary.PerInvoice))
		}
		if summary.TotalDiscountedAmount != 0 {
			t.Errorf("TotalDiscountedAmount = %v, want 0", summary.TotalDiscountedAmount)
		}
	})

	t.Run("total equals the sum of per-invoice amounts", func(t *testing.T) {
		p := testPortfolio(43.31,
			model.Invoice{ID: "i-1", InvoiceNumber: "F001-10", FaceAmount: 1000, DueDate: ref.AddDate(0, 0, 30)},
			model.Invoice{ID: "i-2", InvoiceNumber: "F001-11", FaceAmount: 2500.75, DueDate: ref.AddDate(0, 0, 90)},
			model.Invoice{ID: "i-3", InvoiceNumber: "F001-12", FaceAmount: 400, DueDate: ref.AddDate(0, 0, -5)},
		)

		summary, err := Aggregate(p, ref)
		if err != nil {
			t.Fatalf("Aggregate() returned unexpected error: %v", err)
		}
		if len(summary.PerInvoice) != 3 {
			t.Fatalf("PerInvoice has %d entries, want 3", len(summary.PerInvoice))
		}

		var sum float64
		for _, line := range summary.PerInvoice {
			sum += line.DiscountedAmount
		}
		if summary.TotalDiscountedAmount != sum {
			t.Errorf("TotalDiscountedAmount = %v, want sum of lines %v", summary.TotalDiscountedAmount, sum)
		}

		// Insertion order preserved.
		if summary.PerInvoice[0].InvoiceID != "i-1" || summary.PerInvoice[2].InvoiceID != "i-3" {
			t.Error("PerInvoice does not preserve the portfolio's invoice order")
		}

		// Past-due invoice contributes exactly its face amount.
		if summary.PerInvoice[2].DiscountedAmount != 400 {
			t.Errorf("past-due line = %v, want face value 400", summary.PerInvoice[2].DiscountedAmount)
		}
	})

	t.Run("repeated aggregation is bit-identical", func(t *testing.T) {
		p := testPortfolio(18.5,
			model.Invoice{ID: "i-1", InvoiceNumber: "F002-01", FaceAmount: 1234.56, DueDate: ref.AddDate(0, 0, 61)},
			model.Invoice{ID: "i-2", InvoiceNumber: "F002-02", FaceAmount: 78.9, DueDate: ref.AddDate(0, 0, 200)},
		)

		first, err := Aggregate(p, ref)
		if err != nil {
			t.Fatalf("Aggregate() returned unexpected error: %v", err)
		}
		second, err := Aggregate(p, ref)
		if err != nil {
			t.Fatalf("Aggregate() returned unexpected error: %v", err)
		}

		if !reflect.DeepEqual(first, second) {
			t.Error("identical inputs produced different summaries")
		}
	})

	t.Run("values a converted nominal rate whose effective rate exceeds 100", func(t *testing.T) {
		// TNA 100 passes the input bound but compounds to roughly 171.45
		// effective. The aggregator must still value it.
		ear := EffectiveAnnualRate(RateTNA, 100)
		if ear <= 100 {
			t.Fatalf("EffectiveAnnualRate(TNA, 100) = %v, expected above 100", ear)
		}

		p := testPortfolio(ear,
			model.Invoice{ID: "i-1", InvoiceNumber: "F003-01", FaceAmount: 1000, DueDate: ref.AddDate(0, 0, 30)},
		)
		summary, err := Aggregate(p, ref)
		if err != nil {
			t.Fatalf("Aggregate() returned unexpected error: %v", err)
		}
		got := summary.PerInvoice[0].DiscountedAmount
		if got <= 0 || got >= 1000 {
			t.Errorf("discounted amount = %v, want a positive value below the face amount", got)
		}
	})

	t.Run("rejects a portfolio with an unusable rate", func(t *testing.T) {
		for _, ear := range []float64{-1, math.NaN(), math.Inf(1)} {
			p := testPortfolio(ear,
				model.Invoice{ID: "i-1", FaceAmount: 100, DueDate: ref.AddDate(0, 0, 10)},
			)
			_, err := Aggregate(p, ref)
			if !errors.Is(err, apperrors.ErrPortfolioRateInvalid) {
				t.Errorf("Aggregate() with rate %v returned %v, want ErrPortfolioRateInvalid", ear, err)
			}
		}
	})

	t.Run("one bad invoice fails the whole aggregation", func(t *testing.T) {
		p := testPortfolio(20,
			model.Invoice{ID: "i-1", FaceAmount: 100, DueDate: ref.AddDate(0, 0, 10)},
			model.Invoice{ID: "i-2", FaceAmount: 0, DueDate: ref.AddDate(0, 0, 20)},
		)
		_, err := Aggregate(p, ref)
		if !errors.Is(err, apperrors.ErrDataInconsistency) {
			t.Errorf("Aggregate() = %v, want ErrDataInconsistency for non-positive face amount", err)
		}
	})

	t.Run("rejects an invoice referencing another portfolio", func(t *testing.T) {
		p := testPortfolio(20)
		p.Invoices = []model.Invoice{
			{ID: "i-1", PortfolioID: "p-other", FaceAmount: 100, DueDate: ref.AddDate(0, 0, 10)},
		}
		_, err := Aggregate(p, ref)
		if !errors.Is(err, apperrors.ErrDataInconsistency) {
			t.Errorf("Aggregate() = %v, want ErrDataInconsistency for foreign invoice", err)
		}
	})
}
