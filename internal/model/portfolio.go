package model

import "time"

// PortfolioStatus is the lifecycle state of a portfolio.
// A portfolio starts active and moves to settled exactly once, when its
// discounted value is paid out. There is no transition back.
type PortfolioStatus string

const (
	// PortfolioActive means the portfolio accepts invoices and can be settled.
	PortfolioActive PortfolioStatus = "active"

	// PortfolioSettled means the portfolio has been paid out. Its invoices
	// remain as records but no further operations are allowed.
	PortfolioSettled PortfolioStatus = "settled"
)

// Portfolio represents a named collection of invoices discounted at a single
// effective annual rate.
type Portfolio struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	EffectiveAnnualRate float64         `json:"effectiveAnnualRate"` // percentage in [0,100]
	DiscountDate        time.Time       `json:"discountDate"`
	Status              PortfolioStatus `json:"status"`
	SettledAt           *time.Time      `json:"settledAt,omitempty"`
	SettlementAmount    *float64        `json:"settlementAmount,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	Invoices            []Invoice       `json:"invoices"`
}

// PortfolioTotals holds face and discounted totals for one portfolio,
// used by the dashboard listing.
type PortfolioTotals struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Status                PortfolioStatus `json:"status"`
	TotalFaceAmount       float64         `json:"totalFaceAmount"`
	TotalDiscountedAmount float64         `json:"totalDiscountedAmount"`
}

// MonthlyTotal is the face amount of invoices grouped by due month.
type MonthlyTotal struct {
	Month           string  `json:"month"` // YYYY-MM
	TotalFaceAmount float64 `json:"totalFaceAmount"`
}

// PortfolioValueSnapshot is a pre-calculated daily valuation of a portfolio,
// refreshed by the snapshot job. It backs the history endpoint so historical
// charts do not recompute every invoice on every request.
type PortfolioValueSnapshot struct {
	PortfolioID           string    `json:"portfolioId"`
	PortfolioName         string    `json:"portfolioName"`
	Date                  time.Time `json:"date"`
	TotalFaceAmount       float64   `json:"totalFaceAmount"`
	TotalDiscountedAmount float64   `json:"totalDiscountedAmount"`
	CalculatedAt          time.Time `json:"calculatedAt"`
}
