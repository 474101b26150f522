package validation

import (
	"strings"
	"time"

	"github.com/quipufin/factoring-backend/internal/api/request"
	"github.com/quipufin/factoring-backend/internal/money"
)

// ValidateCreateInvoice enforces the invoice creation invariants: required
// display fields, a strictly positive amount, a supported currency, a valid
// portfolio reference, and a due date no more than one year out. Past due
// dates are allowed; the valuation engine treats them as already matured.
//
// On success it returns the parsed due date.
func ValidateCreateInvoice(req request.CreateInvoiceRequest, today time.Time) (time.Time, error) {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Client) == "" {
		errors["client"] = "client is required"
	} else if len(req.Client) > 100 {
		errors["client"] = "client must be 100 characters or less"
	}

	if strings.TrimSpace(req.InvoiceNumber) == "" {
		errors["invoiceNumber"] = "invoice number is required"
	} else if len(req.InvoiceNumber) > 50 {
		errors["invoiceNumber"] = "invoice number must be 50 characters or less"
	}

	if req.Amount <= 0 {
		errors["amount"] = "amount must be positive"
	}

	if !money.Supported(req.Currency) {
		errors["currency"] = "currency must be PEN or USD"
	}

	if err := ValidateUUID(req.PortfolioID); err != nil {
		errors["portfolioId"] = err.Error()
	}

	var dueDate time.Time
	if req.DueDate == "" {
		errors["dueDate"] = "due date is required"
	} else {
		parsed, err := ParseDate(req.DueDate)
		if err != nil {
			errors["dueDate"] = err.Error()
		} else if parsed.After(midnight(today).AddDate(1, 0, 0)) {
			errors["dueDate"] = "due date cannot be more than one year out"
		} else {
			dueDate = parsed
		}
	}

	if len(errors) > 0 {
		return time.Time{}, &Error{Fields: errors}
	}
	return dueDate, nil
}
