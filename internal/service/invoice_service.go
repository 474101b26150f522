package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quipufin/factoring-backend/internal/api/request"
	"github.com/quipufin/factoring-backend/internal/apperrors"
	"github.com/quipufin/factoring-backend/internal/model"
	"github.com/quipufin/factoring-backend/internal/money"
	"github.com/quipufin/factoring-backend/internal/repository"
	"github.com/quipufin/factoring-backend/internal/validation"
)

// InvoiceService handles invoice business logic. Invoices are created
// against active portfolios only, converted to PEN at creation, and never
// modified afterwards.
type InvoiceService struct {
	invoiceRepo   *repository.InvoiceRepository
	portfolioRepo *repository.PortfolioRepository
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	invoiceRepo *repository.InvoiceRepository,
	portfolioRepo *repository.PortfolioRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:   invoiceRepo,
		portfolioRepo: portfolioRepo,
	}
}

// CreateInvoice validates the request, converts the amount to PEN, and
// persists the invoice against its portfolio. The portfolio must exist and
// be active: invoices cannot be added to settled history.
func (s *InvoiceService) CreateInvoice(req request.CreateInvoiceRequest) (model.Invoice, error) {
	dueDate, err := validation.ValidateCreateInvoice(req, time.Now())
	if err != nil {
		return model.Invoice{}, err
	}

	p, err := s.portfolioRepo.GetPortfolioOnID(req.PortfolioID)
	if err != nil {
		return model.Invoice{}, err
	}
	if p.Status != model.PortfolioActive {
		return model.Invoice{}, fmt.Errorf("portfolio %s: %w", p.ID, apperrors.ErrPortfolioNotActive)
	}

	amount, err := money.ToPEN(req.Amount, req.Currency)
	if err != nil {
		return model.Invoice{}, err
	}

	inv := model.Invoice{
		ID:            uuid.New().String(),
		PortfolioID:   p.ID,
		Client:        req.Client,
		InvoiceNumber: req.InvoiceNumber,
		FaceAmount:    amount,
		Currency:      money.PEN,
		DueDate:       dueDate,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.invoiceRepo.Create(inv); err != nil {
		return model.Invoice{}, err
	}

	return inv, nil
}

// GetAllInvoices retrieves every invoice.
func (s *InvoiceService) GetAllInvoices() ([]model.Invoice, error) {
	return s.invoiceRepo.GetInvoices()
}

// GetInvoice retrieves one invoice by ID.
func (s *InvoiceService) GetInvoice(invoiceID string) (model.Invoice, error) {
	if err := validation.ValidateUUID(invoiceID); err != nil {
		return model.Invoice{}, err
	}
	return s.invoiceRepo.GetInvoiceOnID(invoiceID)
}

// DeleteInvoice removes an invoice while its portfolio is still active.
// Invoices of a settled portfolio are part of the settlement record and
// cannot be removed.
func (s *InvoiceService) DeleteInvoice(invoiceID string) error {
	if err := validation.ValidateUUID(invoiceID); err != nil {
		return err
	}

	inv, err := s.invoiceRepo.GetInvoiceOnID(invoiceID)
	if err != nil {
		return err
	}

	p, err := s.portfolioRepo.GetPortfolioOnID(inv.PortfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			return fmt.Errorf("invoice %s references missing portfolio %s: %w",
				inv.ID, inv.PortfolioID, apperrors.ErrDataInconsistency)
		}
		return err
	}
	if p.Status != model.PortfolioActive {
		return fmt.Errorf("portfolio %s: %w", p.ID, apperrors.ErrPortfolioNotActive)
	}

	return s.invoiceRepo.Delete(invoiceID)
}

// GetMonthlyTotals returns invoice face totals grouped by due month.
func (s *InvoiceService) GetMonthlyTotals() ([]model.MonthlyTotal, error) {
	return s.invoiceRepo.GetMonthlyTotals()
}
