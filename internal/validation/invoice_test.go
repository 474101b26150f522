package validation

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/quipufin/factoring-backend/internal/api/request"
)

func validInvoiceRequest() request.CreateInvoiceRequest {
	return request.CreateInvoiceRequest{
		Client:        "Comercial Andina SAC",
		InvoiceNumber: "F001-00042",
		Amount:        1500,
		Currency:      "PEN",
		DueDate:       "2025-07-01",
		PortfolioID:   uuid.New().String(),
	}
}

// TestValidateCreateInvoice tests the invoice creation rules.
//
// WHY: An invoice with a non-positive amount or an unbounded due date would
// poison every later valuation of its portfolio; these checks are the only
// gate.
func TestValidateCreateInvoice(t *testing.T) {
	t.Run("accepts a valid request and parses the due date", func(t *testing.T) {
		got, err := ValidateCreateInvoice(validInvoiceRequest(), today)
		if err != nil {
			t.Fatalf("ValidateCreateInvoice() returned unexpected error: %v", err)
		}
		want := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("parsed due date = %v, want %v", got, want)
		}
	})

	t.Run("accepts a past due date", func(t *testing.T) {
		req := validInvoiceRequest()
		req.DueDate = "2024-12-01"
		if _, err := ValidateCreateInvoice(req, today); err != nil {
			t.Errorf("past due dates are valid input, got %v", err)
		}
	})

	t.Run("accepts USD", func(t *testing.T) {
		req := validInvoiceRequest()
		req.Currency = "USD"
		if _, err := ValidateCreateInvoice(req, today); err != nil {
			t.Errorf("USD must be accepted, got %v", err)
		}
	})

	t.Run("rejects invalid fields", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*request.CreateInvoiceRequest)
			field  string
		}{
			{"empty client", func(r *request.CreateInvoiceRequest) { r.Client = "" }, "client"},
			{"empty invoice number", func(r *request.CreateInvoiceRequest) { r.InvoiceNumber = " " }, "invoiceNumber"},
			{"zero amount", func(r *request.CreateInvoiceRequest) { r.Amount = 0 }, "amount"},
			{"negative amount", func(r *request.CreateInvoiceRequest) { r.Amount = -100 }, "amount"},
			{"unsupported currency", func(r *request.CreateInvoiceRequest) { r.Currency = "EUR" }, "currency"},
			{"due date beyond one year", func(r *request.CreateInvoiceRequest) { r.DueDate = "2026-03-11" }, "dueDate"},
			{"missing due date", func(r *request.CreateInvoiceRequest) { r.DueDate = "" }, "dueDate"},
			{"bad portfolio id", func(r *request.CreateInvoiceRequest) { r.PortfolioID = "not-a-uuid" }, "portfolioId"},
			{"missing portfolio id", func(r *request.CreateInvoiceRequest) { r.PortfolioID = "" }, "portfolioId"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := validInvoiceRequest()
				tc.mutate(&req)

				_, err := ValidateCreateInvoice(req, today)
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				vErr, ok := err.(*Error)
				if !ok {
					t.Fatalf("expected *validation.Error, got %T", err)
				}
				if _, present := vErr.Fields[tc.field]; !present {
					t.Errorf("expected error on field %q, got %v", tc.field, vErr.Fields)
				}
			})
		}
	})
}
