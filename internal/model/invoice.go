package model

import "time"

// Invoice represents a receivable purchased into a portfolio.
//
// Invoices are immutable once created. Amounts are always stored in PEN:
// USD input is converted at the fixed commercial rate before persisting.
// DueDate is a calendar date, not a timestamp; day counts in the valuation
// engine rely on that.
type Invoice struct {
	ID            string    `json:"id"`
	PortfolioID   string    `json:"portfolioId"`
	Client        string    `json:"client"`
	InvoiceNumber string    `json:"invoiceNumber"`
	FaceAmount    float64   `json:"faceAmount"`
	Currency      string    `json:"currency"`
	DueDate       time.Time `json:"dueDate"`
	CreatedAt     time.Time `json:"createdAt"`
}
