package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/quipufin/factoring-backend/internal/model"
	"github.com/quipufin/factoring-backend/internal/repository"
)

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	// Simple creation with defaults
//	portfolio := testutil.NewPortfolio().Build(t, db)
//
//	// Customized portfolio
//	portfolio := testutil.NewPortfolio().
//	    WithRate(43.31).
//	    WithDiscountDate(time.Now()).
//	    Settled().
//	    Build(t, db)
type PortfolioBuilder struct {
	ID                  string
	Name                string
	EffectiveAnnualRate float64
	DiscountDate        time.Time
	Status              model.PortfolioStatus
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:                  MakeID(),
		Name:                MakePortfolioName("Test Portfolio"),
		EffectiveAnnualRate: 25,
		DiscountDate:        time.Now().UTC().Truncate(24 * time.Hour),
		Status:              model.PortfolioActive,
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// WithRate sets a custom effective annual rate.
func (b *PortfolioBuilder) WithRate(rate float64) *PortfolioBuilder {
	b.EffectiveAnnualRate = rate
	return b
}

// WithDiscountDate sets a custom discount date.
func (b *PortfolioBuilder) WithDiscountDate(date time.Time) *PortfolioBuilder {
	b.DiscountDate = date
	return b
}

// Settled marks the portfolio as settled.
func (b *PortfolioBuilder) Settled() *PortfolioBuilder {
	b.Status = model.PortfolioSettled
	return b
}

// Build persists the portfolio and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	p := model.Portfolio{
		ID:                  b.ID,
		Name:                b.Name,
		EffectiveAnnualRate: b.EffectiveAnnualRate,
		DiscountDate:        b.DiscountDate,
		Status:              b.Status,
		CreatedAt:           time.Now().UTC(),
	}

	repo := repository.NewPortfolioRepository(db)
	if err := repo.Create(p); err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}

	return p
}

// InvoiceBuilder provides a fluent interface for creating test invoices.
type InvoiceBuilder struct {
	ID            string
	PortfolioID   string
	Client        string
	InvoiceNumber string
	FaceAmount    float64
	DueDate       time.Time
}

// NewInvoice creates an InvoiceBuilder against the given portfolio.
// The default invoice is 1000 PEN due in 30 days.
func NewInvoice(portfolioID string) *InvoiceBuilder {
	return &InvoiceBuilder{
		ID:            MakeID(),
		PortfolioID:   portfolioID,
		Client:        "Test Client",
		InvoiceNumber: "F001-" + randomAlphanumeric(4),
		FaceAmount:    1000,
		DueDate:       time.Now().UTC().AddDate(0, 0, 30),
	}
}

// WithAmount sets a custom face amount.
func (b *InvoiceBuilder) WithAmount(amount float64) *InvoiceBuilder {
	b.FaceAmount = amount
	return b
}

// WithDueDate sets a custom due date.
func (b *InvoiceBuilder) WithDueDate(date time.Time) *InvoiceBuilder {
	b.DueDate = date
	return b
}

// WithClient sets a custom client name.
func (b *InvoiceBuilder) WithClient(client string) *InvoiceBuilder {
	b.Client = client
	return b
}

// Build persists the invoice and returns it.
func (b *InvoiceBuilder) Build(t *testing.T, db *sql.DB) model.Invoice {
	t.Helper()

	inv := model.Invoice{
		ID:            b.ID,
		PortfolioID:   b.PortfolioID,
		Client:        b.Client,
		InvoiceNumber: b.InvoiceNumber,
		FaceAmount:    b.FaceAmount,
		Currency:      "PEN",
		DueDate:       b.DueDate,
		CreatedAt:     time.Now().UTC(),
	}

	repo := repository.NewInvoiceRepository(db)
	if err := repo.Create(inv); err != nil {
		t.Fatalf("Failed to create test invoice: %v", err)
	}

	return inv
}

// CreateUser persists a user with the given email and a fixed password hash.
// The hash is not a real bcrypt digest; use the auth package when the test
// needs to verify passwords.
func CreateUser(t *testing.T, db *sql.DB, email string) model.User {
	t.Helper()

	u := model.User{
		ID:           MakeID(),
		Email:        email,
		PasswordHash: "x",
		Balance:      0,
		CreatedAt:    time.Now().UTC(),
	}

	repo := repository.NewUserRepository(db)
	if err := repo.Create(u); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return u
}
