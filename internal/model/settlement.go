package model

import "time"

// Settlement records a completed portfolio payout: which user received the
// discounted total of which portfolio, valued at which reference date.
// One row exists per settled portfolio.
type Settlement struct {
	ID                    string    `json:"id"`
	PortfolioID           string    `json:"portfolioId"`
	UserID                string    `json:"userId"`
	ReferenceDate         time.Time `json:"referenceDate"`
	TotalDiscountedAmount float64   `json:"totalDiscountedAmount"`
	CreatedAt             time.Time `json:"createdAt"`
}
