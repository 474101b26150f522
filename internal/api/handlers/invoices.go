package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quipufin/factoring-backend/internal/api/request"
	"github.com/quipufin/factoring-backend/internal/model"
	"github.com/quipufin/factoring-backend/internal/service"
	"github.com/quipufin/factoring-backend/internal/validation"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// InvoiceResponse represents an invoice in API responses. Face amounts are
// always PEN; the original currency is converted at creation.
type InvoiceResponse struct {
	ID            string    `json:"id"`
	PortfolioID   string    `json:"portfolioId"`
	Client        string    `json:"client"`
	InvoiceNumber string    `json:"invoiceNumber"`
	FaceAmount    float64   `json:"faceAmount"`
	Currency      string    `json:"currency"`
	DueDate       string    `json:"dueDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toInvoiceResponse(inv model.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		PortfolioID:   inv.PortfolioID,
		Client:        inv.Client,
		InvoiceNumber: inv.InvoiceNumber,
		FaceAmount:    inv.FaceAmount,
		Currency:      inv.Currency,
		DueDate:       inv.DueDate.Format(validation.DateFormat),
		CreatedAt:     inv.CreatedAt,
	}
}

// Invoices lists every invoice
func (h *InvoiceHandler) Invoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoiceService.GetAllInvoices()
	if err != nil {
		respondServiceError(w, "Failed to retrieve invoices", err)
		return
	}

	response := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		response[i] = toInvoiceResponse(inv)
	}

	respondJSON(w, http.StatusOK, response)
}

// Invoice retrieves a single invoice
func (h *InvoiceHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.invoiceService.GetInvoice(chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, "Failed to retrieve invoice", err)
		return
	}

	respondJSON(w, http.StatusOK, toInvoiceResponse(invoice))
}

// CreateInvoice registers an invoice against an active portfolio
func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req request.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(req)
	if err != nil {
		respondServiceError(w, "Failed to create invoice", err)
		return
	}

	respondJSON(w, http.StatusCreated, toInvoiceResponse(invoice))
}

// DeleteInvoice removes an invoice from an active portfolio
func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.invoiceService.DeleteInvoice(chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, "Failed to delete invoice", err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// MonthlyTotals groups invoice face amounts by due month
func (h *InvoiceHandler) MonthlyTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.invoiceService.GetMonthlyTotals()
	if err != nil {
		respondServiceError(w, "Failed to get monthly totals", err)
		return
	}

	respondJSON(w, http.StatusOK, totals)
}
