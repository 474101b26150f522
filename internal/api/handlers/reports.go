package handlers

import (
	"bytes"
	"log"
	"net/http"

	"github.com/quipufin/factoring-backend/internal/service"
)

// ReportHandler handles report export HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// ExportPDF streams a PDF listing of every portfolio with its live valuation.
// The document is rendered into memory first so a rendering failure can still
// produce a clean error response.
func (h *ReportHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.reportService.WritePortfolioReport(&buf); err != nil {
		respondServiceError(w, "Failed to export portfolio report", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="portfolio-report.pdf"`)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Failed to stream portfolio report: %v", err)
	}
}
