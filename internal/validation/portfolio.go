package validation

import (
	"strings"
	"time"

	"github.com/quipufin/factoring-backend/internal/api/request"
	"github.com/quipufin/factoring-backend/internal/valuation"
)

// ValidateCreatePortfolio enforces the portfolio creation invariants at the
// trust boundary: rate type and bounds, name, and the one-year forward window
// on the discount date. These rules hold server-side regardless of what any
// client-side form allowed.
//
// On success it returns the parsed discount date.
func ValidateCreatePortfolio(req request.CreatePortfolioRequest, today time.Time) (time.Time, error) {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if !valuation.RateType(req.RateType).Valid() {
		errors["rateType"] = "rate type must be TEA or TNA"
	}

	// The converter itself performs no bounds checks; this is where the
	// (0, 100] window is enforced.
	if req.RateValue <= 0 {
		errors["rateValue"] = "rate must be greater than 0"
	} else if req.RateValue > 100 {
		errors["rateValue"] = "rate cannot exceed 100"
	}

	var discountDate time.Time
	if req.DiscountDate == "" {
		errors["discountDate"] = "discount date is required"
	} else {
		parsed, err := ParseDate(req.DiscountDate)
		if err != nil {
			errors["discountDate"] = err.Error()
		} else {
			day := midnight(today)
			if parsed.Before(day) {
				errors["discountDate"] = "discount date cannot be in the past"
			} else if parsed.After(day.AddDate(1, 0, 0)) {
				errors["discountDate"] = "discount date cannot be more than one year out"
			} else {
				discountDate = parsed
			}
		}
	}

	if len(errors) > 0 {
		return time.Time{}, &Error{Fields: errors}
	}
	return discountDate, nil
}

// ValidateUpdatePortfolio enforces the rename constraints.
func ValidateUpdatePortfolio(req request.UpdatePortfolioRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name cannot be empty"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
