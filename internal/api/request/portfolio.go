package request

// CreatePortfolioRequest represents the request body for creating a portfolio.
// RateType selects the quoting convention; the server converts TNA values to
// an effective annual rate before persisting.
type CreatePortfolioRequest struct {
	Name         string  `json:"name"`
	RateType     string  `json:"rateType"`
	RateValue    float64 `json:"rateValue"`
	DiscountDate string  `json:"discountDate"` // YYYY-MM-DD
}

// UpdatePortfolioRequest represents the request body for renaming a
// portfolio. Rate and discount date are fixed at creation.
type UpdatePortfolioRequest struct {
	Name string `json:"name"`
}
