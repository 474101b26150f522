package request

// CreateInvoiceRequest represents the request body for creating an invoice
// against an active portfolio. Amount is in the given currency; USD amounts
// are converted to PEN server-side before persisting.
type CreateInvoiceRequest struct {
	Client        string  `json:"client"`
	InvoiceNumber string  `json:"invoiceNumber"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	DueDate       string  `json:"dueDate"` // YYYY-MM-DD
	PortfolioID   string  `json:"portfolioId"`
}
