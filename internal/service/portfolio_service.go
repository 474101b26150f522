package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quipufin/factoring-backend/internal/api/request"
	"github.com/quipufin/factoring-backend/internal/apperrors"
	"github.com/quipufin/factoring-backend/internal/model"
	"github.com/quipufin/factoring-backend/internal/repository"
	"github.com/quipufin/factoring-backend/internal/validation"
	"github.com/quipufin/factoring-backend/internal/valuation"
)

// PortfolioService handles portfolio business logic: creation with rate
// conversion, valuation previews, and the one-way settlement transition that
// credits the discounted total to a user's balance.
type PortfolioService struct {
	db             *sql.DB
	portfolioRepo  *repository.PortfolioRepository
	invoiceRepo    *repository.InvoiceRepository
	userRepo       *repository.UserRepository
	settlementRepo *repository.SettlementRepository
}

// NewPortfolioService creates a new PortfolioService. The database handle is
// needed alongside the repositories because settlement spans three tables in
// one transaction.
func NewPortfolioService(
	db *sql.DB,
	portfolioRepo *repository.PortfolioRepository,
	invoiceRepo *repository.InvoiceRepository,
	userRepo *repository.UserRepository,
	settlementRepo *repository.SettlementRepository,
) *PortfolioService {
	return &PortfolioService{
		db:             db,
		portfolioRepo:  portfolioRepo,
		invoiceRepo:    invoiceRepo,
		userRepo:       userRepo,
		settlementRepo: settlementRepo,
	}
}

// CreatePortfolio validates the request, converts the quoted rate to an
// effective annual rate, and persists the new portfolio in the active state.
// The conversion happens exactly once, here; discounting later always reads
// the stored EAR, so the quoting convention cannot drift between creation
// and valuation.
func (s *PortfolioService) CreatePortfolio(req request.CreatePortfolioRequest) (model.Portfolio, error) {
	discountDate, err := validation.ValidateCreatePortfolio(req, time.Now())
	if err != nil {
		return model.Portfolio{}, err
	}

	p := model.Portfolio{
		ID:                  uuid.New().String(),
		Name:                req.Name,
		EffectiveAnnualRate: valuation.EffectiveAnnualRate(valuation.RateType(req.RateType), req.RateValue),
		DiscountDate:        discountDate,
		Status:              model.PortfolioActive,
		CreatedAt:           time.Now().UTC(),
		Invoices:            []model.Invoice{},
	}

	if err := s.portfolioRepo.Create(p); err != nil {
		return model.Portfolio{}, err
	}

	return p, nil
}

// GetAllPortfolios retrieves every portfolio with its invoices attached.
func (s *PortfolioService) GetAllPortfolios() ([]model.Portfolio, error) {
	portfolios, err := s.portfolioRepo.GetPortfolios()
	if err != nil {
		return nil, err
	}

	for i := range portfolios {
		invoices, err := s.invoiceRepo.GetInvoicesOnPortfolioID(portfolios[i].ID)
		if err != nil {
			return nil, err
		}
		portfolios[i].Invoices = invoices
	}

	return portfolios, nil
}

// GetPortfolio retrieves one portfolio with its invoices attached.
func (s *PortfolioService) GetPortfolio(portfolioID string) (model.Portfolio, error) {
	if err := validation.ValidateUUID(portfolioID); err != nil {
		return model.Portfolio{}, err
	}

	p, err := s.portfolioRepo.GetPortfolioOnID(portfolioID)
	if err != nil {
		return model.Portfolio{}, err
	}

	invoices, err := s.invoiceRepo.GetInvoicesOnPortfolioID(p.ID)
	if err != nil {
		return model.Portfolio{}, err
	}
	p.Invoices = invoices

	return p, nil
}

// RenamePortfolio changes a portfolio's display name. The rate and discount
// date are fixed at creation; renaming a settled portfolio is rejected
// because settled records are immutable history.
func (s *PortfolioService) RenamePortfolio(portfolioID string, req request.UpdatePortfolioRequest) (model.Portfolio, error) {
	if err := validation.ValidateUUID(portfolioID); err != nil {
		return model.Portfolio{}, err
	}
	if err := validation.ValidateUpdatePortfolio(req); err != nil {
		return model.Portfolio{}, err
	}

	p, err := s.portfolioRepo.GetPortfolioOnID(portfolioID)
	if err != nil {
		return model.Portfolio{}, err
	}
	if p.Status != model.PortfolioActive {
		return model.Portfolio{}, apperrors.ErrPortfolioNotActive
	}

	if err := s.portfolioRepo.UpdateName(portfolioID, req.Name); err != nil {
		return model.Portfolio{}, err
	}

	return s.GetPortfolio(portfolioID)
}

// DeletePortfolio removes an active portfolio and, via the schema, its
// invoices. Settled portfolios are immutable history and cannot be deleted.
func (s *PortfolioService) DeletePortfolio(portfolioID string) error {
	if err := validation.ValidateUUID(portfolioID); err != nil {
		return err
	}

	p, err := s.portfolioRepo.GetPortfolioOnID(portfolioID)
	if err != nil {
		return err
	}
	if p.Status != model.PortfolioActive {
		return apperrors.ErrPortfolioNotActive
	}

	return s.portfolioRepo.Delete(portfolioID)
}

// AdvanceSummary values a portfolio's invoices as of referenceDate and
// returns the settlement summary with amounts rounded to centimos. This is
// the "receive today" preview: it performs no writes and is idempotent for a
// fixed reference date.
func (s *PortfolioService) AdvanceSummary(portfolioID string, referenceDate time.Time) (valuation.SettlementSummary, error) {
	p, err := s.GetPortfolio(portfolioID)
	if err != nil {
		return valuation.SettlementSummary{}, err
	}

	return s.summarize(p, referenceDate)
}

// summarize runs the valuation engine and rounds for presentation. The total
// is recomputed from the rounded lines so the response is internally
// consistent to the centimo.
func (s *PortfolioService) summarize(p model.Portfolio, referenceDate time.Time) (valuation.SettlementSummary, error) {
	summary, err := valuation.Aggregate(p, referenceDate)
	if err != nil {
		return valuation.SettlementSummary{}, err
	}

	var total float64
	for i := range summary.PerInvoice {
		summary.PerInvoice[i].DiscountedAmount = round(summary.PerInvoice[i].DiscountedAmount)
		total += summary.PerInvoice[i].DiscountedAmount
	}
	summary.TotalDiscountedAmount = round(total)

	return summary, nil
}

// SettlementResult is what a successful settlement returns to the caller:
// the credited summary and the user's balance after the credit.
type SettlementResult struct {
	Summary        valuation.SettlementSummary `json:"summary"`
	UpdatedBalance float64                     `json:"updatedBalance"`
}

// Settle performs the active -> settled transition for the given portfolio
// and credits its discounted total, valued now, to the given user.
//
// The transition and the ledger credit are one database transaction. The
// status update carries a status predicate, so of two racing settlement
// requests exactly one flips the row and the other observes zero affected
// rows and fails with an integrity error; no balance is changed in that case.
func (s *PortfolioService) Settle(userID, portfolioID string) (SettlementResult, error) {
	if err := validation.ValidateUUID(userID); err != nil {
		return SettlementResult{}, err
	}

	p, err := s.GetPortfolio(portfolioID)
	if err != nil {
		return SettlementResult{}, err
	}
	if p.Status != model.PortfolioActive {
		return SettlementResult{}, fmt.Errorf("portfolio %s: %w", portfolioID, apperrors.ErrPortfolioNotActive)
	}

	// The user must resolve before any state changes.
	if _, err := s.userRepo.GetUserOnID(userID); err != nil {
		return SettlementResult{}, err
	}

	now := time.Now().UTC()
	summary, err := s.summarize(p, now)
	if err != nil {
		return SettlementResult{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return SettlementResult{}, fmt.Errorf("failed to begin settlement transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	settled, err := s.portfolioRepo.MarkSettledTx(tx, portfolioID, summary.TotalDiscountedAmount, now)
	if err != nil {
		return SettlementResult{}, err
	}
	if !settled {
		return SettlementResult{}, fmt.Errorf("portfolio %s: %w", portfolioID, apperrors.ErrPortfolioNotActive)
	}

	balance, err := s.userRepo.CreditBalanceTx(tx, userID, summary.TotalDiscountedAmount)
	if err != nil {
		return SettlementResult{}, err
	}

	err = s.settlementRepo.CreateTx(tx, model.Settlement{
		ID:                    uuid.New().String(),
		PortfolioID:           portfolioID,
		UserID:                userID,
		ReferenceDate:         summary.ReferenceDate,
		TotalDiscountedAmount: summary.TotalDiscountedAmount,
		CreatedAt:             now,
	})
	if err != nil {
		return SettlementResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return SettlementResult{}, fmt.Errorf("failed to commit settlement: %w", err)
	}

	return SettlementResult{Summary: summary, UpdatedBalance: round(balance)}, nil
}

// GetPortfolioTotals values every portfolio as of today and returns face and
// discounted totals per portfolio, for the dashboard listing.
func (s *PortfolioService) GetPortfolioTotals() ([]model.PortfolioTotals, error) {
	portfolios, err := s.GetAllPortfolios()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	totals := make([]model.PortfolioTotals, 0, len(portfolios))

	for _, p := range portfolios {
		summary, err := s.summarize(p, now)
		if err != nil {
			return nil, err
		}

		var face float64
		for _, inv := range p.Invoices {
			face += inv.FaceAmount
		}

		totals = append(totals, model.PortfolioTotals{
			ID:                    p.ID,
			Name:                  p.Name,
			Status:                p.Status,
			TotalFaceAmount:       round(face),
			TotalDiscountedAmount: summary.TotalDiscountedAmount,
		})
	}

	return totals, nil
}

// GetMonthlyTotals returns invoice face totals grouped by due month.
func (s *PortfolioService) GetMonthlyTotals() ([]model.MonthlyTotal, error) {
	return s.invoiceRepo.GetMonthlyTotals()
}
