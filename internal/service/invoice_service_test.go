package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/quipufin/factoring-backend/internal/api/request"
	"github.com/quipufin/factoring-backend/internal/apperrors"
	"github.com/quipufin/factoring-backend/internal/testutil"
	"github.com/quipufin/factoring-backend/internal/validation"
)

// TestInvoiceService_CreateInvoice tests invoice creation.
//
// WHY: Creation is the single point where currency conversion happens. A USD
// invoice must be stored in PEN at the fixed rate, and invoices must never
// land on settled portfolios.
func TestInvoiceService_CreateInvoice(t *testing.T) {
	dueDate := time.Now().AddDate(0, 0, 30).Format(validation.DateFormat)

	t.Run("stores a PEN invoice unchanged", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvoiceService(t, db)

		p := testutil.NewPortfolio().Build(t, db)

		inv, err := svc.CreateInvoice(request.CreateInvoiceRequest{
			Client:        "Acme SAC",
			InvoiceNumber: "F001-1234",
			Amount:        1500.50,
			Currency:      "PEN",
			DueDate:       dueDate,
			PortfolioID:   p.ID,
		})
		if err != nil {
			t.Fatalf("CreateInvoice() returned unexpected error: %v", err)
		}

		if inv.FaceAmount != 1500.50 {
			t.Errorf("Expected face amount 1500.50, got %v", inv.FaceAmount)
		}
		if inv.Currency != "PEN" {
			t.Errorf("Expected stored currency PEN, got %s", inv.Currency)
		}
		testutil.AssertRowCount(t, db, "invoice", 1)
	})

	t.Run("converts USD to PEN at the fixed rate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvoiceService(t, db)

		p := testutil.NewPortfolio().Build(t, db)

		inv, err := svc.CreateInvoice(request.CreateInvoiceRequest{
			Client:        "Acme SAC",
			InvoiceNumber: "F001-1234",
			Amount:        100,
			Currency:      "USD",
			DueDate:       dueDate,
			PortfolioID:   p.ID,
		})
		if err != nil {
			t.Fatalf("CreateInvoice() returned unexpected error: %v", err)
		}

		// 100 USD at 3.7 is exactly 370 PEN.
		if inv.FaceAmount != 370 {
			t.Errorf("Expected face amount 370, got %v", inv.FaceAmount)
		}
		if inv.Currency != "PEN" {
			t.Errorf("Expected stored currency PEN, got %s", inv.Currency)
		}
	})

	t.Run("rejects unsupported currencies", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvoiceService(t, db)

		p := testutil.NewPortfolio().Build(t, db)

		_, err := svc.CreateInvoice(request.CreateInvoiceRequest{
			Client:        "Acme SAC",
			InvoiceNumber: "F001-1234",
			Amount:        100,
			Currency:      "EUR",
			DueDate:       dueDate,
			PortfolioID:   p.ID,
		})
		if err == nil {
			t.Fatal("Expected error for EUR invoice, got nil")
		}
		testutil.AssertRowCount(t, db, "invoice", 0)
	})

	t.Run("refuses invoices on a settled portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvoiceService(t, db)

		p := testutil.NewPortfolio().Settled().Build(t, db)

		_, err := svc.CreateInvoice(request.CreateInvoiceRequest{
			Client:        "Acme SAC",
			InvoiceNumber: "F001-1234",
			Amount:        100,
			Currency:      "PEN",
			DueDate:       dueDate,
			PortfolioID:   p.ID,
		})
		if !errors.Is(err, apperrors.ErrPortfolioNotActive) {
			t.Errorf("Expected ErrPortfolioNotActive, got %v", err)
		}
	})

	t.Run("unknown portfolio returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvoiceService(t, db)

		_, err := svc.CreateInvoice(request.CreateInvoiceRequest{
			Client:        "Acme SAC",
			InvoiceNumber: "F001-1234",
			Amount:        100,
			Currency:      "PEN",
			DueDate:       dueDate,
			PortfolioID:   testutil.MakeID(),
		})
		if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
		}
	})

	t.Run("accepts a past due date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvoiceService(t, db)

		p := testutil.NewPortfolio().Build(t, db)

		// Overdue receivables are still purchasable; they value at face.
		_, err := svc.CreateInvoice(request.CreateInvoiceRequest{
			Client:        "Acme SAC",
			InvoiceNumber: "F001-1234",
			Amount:        100,
			Currency:      "PEN",
			DueDate:       time.Now().AddDate(0, -2, 0).Format(validation.DateFormat),
			PortfolioID:   p.ID,
		})
		if err != nil {
			t.Fatalf("CreateInvoice() returned unexpected error: %v", err)
		}
	})
}

// TestInvoiceService_DeleteInvoice tests the deletion guards.
//
// WHY: Invoices of a settled portfolio back the recorded settlement amount
// and must stay; invoices of active portfolios can be corrected by deletion.
func TestInvoiceService_DeleteInvoice(t *testing.T) {
	t.Run("deletes an invoice from an active portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvoiceService(t, db)

		p := testutil.NewPortfolio().Build(t, db)
		inv := testutil.NewInvoice(p.ID).Build(t, db)

		if err := svc.DeleteInvoice(inv.ID); err != nil {
			t.Fatalf("DeleteInvoice() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "invoice", 0)
	})

	t.Run("refuses to delete from a settled portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvoiceService(t, db)

		p := testutil.NewPortfolio().Settled().Build(t, db)
		inv := testutil.NewInvoice(p.ID).Build(t, db)

		err := svc.DeleteInvoice(inv.ID)
		if !errors.Is(err, apperrors.ErrPortfolioNotActive) {
			t.Errorf("Expected ErrPortfolioNotActive, got %v", err)
		}
		testutil.AssertRowCount(t, db, "invoice", 1)
	})

	t.Run("unknown invoice returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvoiceService(t, db)

		err := svc.DeleteInvoice(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrInvoiceNotFound) {
			t.Errorf("Expected ErrInvoiceNotFound, got %v", err)
		}
	})
}

// TestInvoiceService_GetMonthlyTotals tests the due-month grouping.
func TestInvoiceService_GetMonthlyTotals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestInvoiceService(t, db)

	p := testutil.NewPortfolio().Build(t, db)
	base := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	testutil.NewInvoice(p.ID).WithAmount(1000).WithDueDate(base).Build(t, db)
	testutil.NewInvoice(p.ID).WithAmount(500).WithDueDate(base.AddDate(0, 0, 5)).Build(t, db)
	testutil.NewInvoice(p.ID).WithAmount(200).WithDueDate(base.AddDate(0, 1, 0)).Build(t, db)

	totals, err := svc.GetMonthlyTotals()
	if err != nil {
		t.Fatalf("GetMonthlyTotals() returned unexpected error: %v", err)
	}

	if len(totals) != 2 {
		t.Fatalf("Expected 2 monthly buckets, got %d", len(totals))
	}
	if totals[0].Month != "2025-04" || totals[0].TotalFaceAmount != 1500 {
		t.Errorf("Expected 2025-04 bucket of 1500, got %s %v", totals[0].Month, totals[0].TotalFaceAmount)
	}
	if totals[1].Month != "2025-05" || totals[1].TotalFaceAmount != 200 {
		t.Errorf("Expected 2025-05 bucket of 200, got %s %v", totals[1].Month, totals[1].TotalFaceAmount)
	}
}
