package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrInvoiceNotFound indicates that an invoice with the given ID does not exist.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrUserNotFound indicates that a user with the given ID or email does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidRateType indicates that a rate type is not one of TEA or TNA.
	ErrInvalidRateType = errors.New("rate type must be TEA or TNA")

	// ErrRateOutOfRange indicates that a rate value is outside (0, 100].
	ErrRateOutOfRange = errors.New("rate must be greater than 0 and at most 100")

	// ErrDiscountDateOutOfRange indicates a discount date before today or more
	// than one year in the future.
	ErrDiscountDateOutOfRange = errors.New("discount date must be between today and one year from today")

	// ErrDueDateOutOfRange indicates a due date more than one year in the future.
	ErrDueDateOutOfRange = errors.New("due date must be at most one year from today")

	// ErrNonPositiveAmount indicates that an invoice amount is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrUnsupportedCurrency indicates a currency other than PEN or USD.
	ErrUnsupportedCurrency = errors.New("currency must be PEN or USD")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrDuplicateEmail indicates that a user with the same email already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Integrity errors represent caller or state-machine misuse. They are not
// transient and must not be retried.
var (
	// ErrPortfolioNotActive indicates an operation that requires an active
	// portfolio was attempted against a settled one. Settlement of a settled
	// portfolio is the canonical case: the active -> settled transition is
	// irreversible and happens at most once.
	ErrPortfolioNotActive = errors.New("portfolio is not active")

	// ErrPortfolioRateInvalid indicates that a portfolio cannot supply a usable
	// effective annual rate for discounting.
	ErrPortfolioRateInvalid = errors.New("portfolio rate is missing or invalid")

	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., an invoice references a portfolio that does not exist).
	ErrDataInconsistency = errors.New("data inconsistency detected")
)

// Authentication errors.
var (
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken indicates a missing, malformed, or expired session token.
	ErrInvalidToken = errors.New("invalid or expired session token")
)
