package validation

import (
	"strings"

	"github.com/quipufin/factoring-backend/internal/api/request"
)

// ValidateRegister enforces account creation constraints. Password policy is
// deliberately minimal; the hash cost is the real defense.
func ValidateRegister(req request.RegisterRequest) error {
	errors := make(map[string]string)

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errors["email"] = "email is required"
	} else if !strings.Contains(email, "@") || len(email) > 255 {
		errors["email"] = "email is not valid"
	}

	if len(req.Password) < 8 {
		errors["password"] = "password must be at least 8 characters"
	} else if len(req.Password) > 72 {
		// bcrypt truncates beyond 72 bytes
		errors["password"] = "password must be 72 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
