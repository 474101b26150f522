package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quipufin/factoring-backend/internal/api/middleware"
	"github.com/quipufin/factoring-backend/internal/api/request"
	"github.com/quipufin/factoring-backend/internal/model"
	"github.com/quipufin/factoring-backend/internal/service"
	"github.com/quipufin/factoring-backend/internal/validation"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	snapshotService  *service.SnapshotService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService, snapshotService *service.SnapshotService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		snapshotService:  snapshotService,
	}
}

// PortfolioResponse represents a portfolio in API responses. Dates travel as
// YYYY-MM-DD, timestamps as RFC 3339.
type PortfolioResponse struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	EffectiveAnnualRate float64           `json:"effectiveAnnualRate"`
	DiscountDate        string            `json:"discountDate"`
	Status              string            `json:"status"`
	SettledAt           *time.Time        `json:"settledAt,omitempty"`
	SettlementAmount    *float64          `json:"settlementAmount,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
	Invoices            []InvoiceResponse `json:"invoices,omitempty"`
}

func toPortfolioResponse(p model.Portfolio) PortfolioResponse {
	resp := PortfolioResponse{
		ID:                  p.ID,
		Name:                p.Name,
		EffectiveAnnualRate: p.EffectiveAnnualRate,
		DiscountDate:        p.DiscountDate.Format(validation.DateFormat),
		Status:              string(p.Status),
		SettledAt:           p.SettledAt,
		SettlementAmount:    p.SettlementAmount,
		CreatedAt:           p.CreatedAt,
	}
	for _, inv := range p.Invoices {
		resp.Invoices = append(resp.Invoices, toInvoiceResponse(inv))
	}
	return resp
}

// Portfolios lists every portfolio without invoices
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	portfolios, err := h.portfolioService.GetAllPortfolios()
	if err != nil {
		respondServiceError(w, "Failed to retrieve portfolios", err)
		return
	}

	response := make([]PortfolioResponse, len(portfolios))
	for i, p := range portfolios {
		response[i] = toPortfolioResponse(p)
	}

	respondJSON(w, http.StatusOK, response)
}

// Portfolio retrieves a single portfolio with its invoices
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolioService.GetPortfolio(chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, "Failed to retrieve portfolio", err)
		return
	}

	respondJSON(w, http.StatusOK, toPortfolioResponse(portfolio))
}

// CreatePortfolio creates a new active portfolio from a quoted rate
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(req)
	if err != nil {
		respondServiceError(w, "Failed to create portfolio", err)
		return
	}

	respondJSON(w, http.StatusCreated, toPortfolioResponse(portfolio))
}

// UpdatePortfolio renames an active portfolio
func (h *PortfolioHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	portfolio, err := h.portfolioService.RenamePortfolio(chi.URLParam(r, "id"), req)
	if err != nil {
		respondServiceError(w, "Failed to update portfolio", err)
		return
	}

	respondJSON(w, http.StatusOK, toPortfolioResponse(portfolio))
}

// DeletePortfolio removes an active portfolio and its invoices
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	if err := h.portfolioService.DeletePortfolio(chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, "Failed to delete portfolio", err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Advance previews the settlement of a portfolio as of a reference date.
// The date query parameter defaults to today.
func (h *PortfolioHandler) Advance(w http.ResponseWriter, r *http.Request) {
	referenceDate := time.Now()

	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := validation.ParseDate(d)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{
				"error":  "Failed to parse date",
				"detail": err.Error(),
			})
			return
		}
		referenceDate = parsed
	}

	summary, err := h.portfolioService.AdvanceSummary(chi.URLParam(r, "id"), referenceDate)
	if err != nil {
		respondServiceError(w, "Failed to compute advance summary", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// Settle settles the portfolio and credits the authenticated user
func (h *PortfolioHandler) Settle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	result, err := h.portfolioService.Settle(userID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, "Failed to settle portfolio", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// PortfolioTotals reports the live face and discounted totals per portfolio
func (h *PortfolioHandler) PortfolioTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.portfolioService.GetPortfolioTotals()
	if err != nil {
		respondServiceError(w, "Failed to get portfolio totals", err)
		return
	}

	respondJSON(w, http.StatusOK, totals)
}

// MonthlyTotals groups invoice face amounts by due month
func (h *PortfolioHandler) MonthlyTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.portfolioService.GetMonthlyTotals()
	if err != nil {
		respondServiceError(w, "Failed to get monthly totals", err)
		return
	}

	respondJSON(w, http.StatusOK, totals)
}

// SnapshotResponse represents a stored daily valuation in API responses
type SnapshotResponse struct {
	PortfolioID           string    `json:"portfolioId"`
	PortfolioName         string    `json:"portfolioName"`
	Date                  string    `json:"date"`
	TotalFaceAmount       float64   `json:"totalFaceAmount"`
	TotalDiscountedAmount float64   `json:"totalDiscountedAmount"`
	CalculatedAt          time.Time `json:"calculatedAt"`
}

// PortfolioHistory returns stored daily valuations within a date range.
// start_date and end_date default to the epoch and today; portfolio_id is optional.
func (h *PortfolioHandler) PortfolioHistory(w http.ResponseWriter, r *http.Request) {
	startDate := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Now()
	var err error

	if d := r.URL.Query().Get("start_date"); d != "" {
		if startDate, err = validation.ParseDate(d); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{
				"error":  "Failed to parse start_date",
				"detail": err.Error(),
			})
			return
		}
	}
	if d := r.URL.Query().Get("end_date"); d != "" {
		if endDate, err = validation.ParseDate(d); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{
				"error":  "Failed to parse end_date",
				"detail": err.Error(),
			})
			return
		}
	}

	portfolioID := r.URL.Query().Get("portfolio_id")
	if portfolioID != "" {
		if err := validation.ValidateUUID(portfolioID); err != nil {
			respondServiceError(w, "Invalid portfolio_id", err)
			return
		}
	}

	snapshots, err := h.snapshotService.GetHistory(startDate, endDate, portfolioID)
	if err != nil {
		respondServiceError(w, "Failed to get portfolio history", err)
		return
	}

	response := make([]SnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		response[i] = SnapshotResponse{
			PortfolioID:           s.PortfolioID,
			PortfolioName:         s.PortfolioName,
			Date:                  s.Date.Format(validation.DateFormat),
			TotalFaceAmount:       s.TotalFaceAmount,
			TotalDiscountedAmount: s.TotalDiscountedAmount,
			CalculatedAt:          s.CalculatedAt,
		}
	}

	respondJSON(w, http.StatusOK, response)
}
