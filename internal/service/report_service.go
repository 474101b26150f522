package service

import (
	"fmt"
	"io"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/quipufin/factoring-backend/internal/money"
)

// ReportService renders portfolio reports as PDF documents.
type ReportService struct {
	portfolioService *PortfolioService
}

// NewReportService creates a new ReportService.
func NewReportService(portfolioService *PortfolioService) *ReportService {
	return &ReportService{portfolioService: portfolioService}
}

// WritePortfolioReport renders a listing of every portfolio with its live
// valuation and streams the PDF to w.
func (s *ReportService) WritePortfolioReport(w io.Writer) error {
	totals, err := s.portfolioService.GetPortfolioTotals()
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Portfolio Valuation Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Portfolio Valuation Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("As of %s", time.Now().Format("2006-01-02")))
	pdf.Ln(12)

	widths := []float64{75, 25, 42, 43}
	headers := []string{"Portfolio", "Status", "Face Amount", "Discounted"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, t := range totals {
		pdf.CellFormat(widths[0], 8, t.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, string(t.Status), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, money.FormatPEN(t.TotalFaceAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 8, money.FormatPEN(t.TotalDiscountedAmount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if len(totals) == 0 {
		pdf.CellFormat(185, 8, "No portfolios", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render portfolio report: %w", err)
	}
	return nil
}
