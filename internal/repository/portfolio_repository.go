package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/quipufin/factoring-backend/internal/apperrors"
	"github.com/quipufin/factoring-backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio table.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// Create inserts a new portfolio row.
func (s *PortfolioRepository) Create(p model.Portfolio) error {
	query := `
          INSERT INTO portfolio (id, name, effective_annual_rate, discount_date, status, created_at)
          VALUES (?, ?, ?, ?, ?, ?)
      `

	_, err := s.db.Exec(query,
		p.ID,
		p.Name,
		p.EffectiveAnnualRate,
		formatDate(p.DiscountDate),
		string(p.Status),
		formatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}

	return nil
}

// GetPortfolios retrieves all portfolios ordered by creation time.
// Returns an empty slice when the table is empty. Invoices are not loaded;
// callers that need them attach them via the invoice repository.
func (s *PortfolioRepository) GetPortfolios() ([]model.Portfolio, error) {
	query := `
          SELECT id, name, effective_annual_rate, discount_date, status, settled_at, settlement_amount, created_at
          FROM portfolio
          ORDER BY created_at, id
      `

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}

	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}

// GetPortfoliosByStatus retrieves portfolios in the given lifecycle state.
func (s *PortfolioRepository) GetPortfoliosByStatus(status model.PortfolioStatus) ([]model.Portfolio, error) {
	query := `
          SELECT id, name, effective_annual_rate, discount_date, status, settled_at, settlement_amount, created_at
          FROM portfolio
          WHERE status = ?
          ORDER BY created_at, id
      `

	rows, err := s.db.Query(query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}

	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}

// GetPortfolioOnID retrieves a single portfolio by its ID.
func (s *PortfolioRepository) GetPortfolioOnID(portfolioID string) (model.Portfolio, error) {
	query := `
          SELECT id, name, effective_annual_rate, discount_date, status, settled_at, settlement_amount, created_at
          FROM portfolio
          WHERE id = ?
      `

	row := s.db.QueryRow(query, portfolioID)
	p, err := scanPortfolio(row)
	if err == sql.ErrNoRows {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, err
	}

	return p, nil
}

// UpdateName renames a portfolio.
func (s *PortfolioRepository) UpdateName(portfolioID, name string) error {
	result, err := s.db.Exec(`UPDATE portfolio SET name = ? WHERE id = ?`, name, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPortfolioNotFound
	}

	return nil
}

// Delete removes a portfolio. Invoices cascade via the schema.
func (s *PortfolioRepository) Delete(portfolioID string) error {
	result, err := s.db.Exec(`DELETE FROM portfolio WHERE id = ?`, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPortfolioNotFound
	}

	return nil
}

// MarkSettledTx transitions a portfolio from active to settled inside the
// given transaction. The status predicate makes the check-then-transition a
// single compare-and-set, so two concurrent settlement requests cannot both
// succeed. Returns false when the portfolio was not active.
func (s *PortfolioRepository) MarkSettledTx(tx *sql.Tx, portfolioID string, amount float64, settledAt time.Time) (bool, error) {
	query := `
          UPDATE portfolio
          SET status = ?, settled_at = ?, settlement_amount = ?
          WHERE id = ? AND status = ?
      `

	result, err := tx.Exec(query,
		string(model.PortfolioSettled),
		formatTime(settledAt),
		amount,
		portfolioID,
		string(model.PortfolioActive),
	)
	if err != nil {
		return false, fmt.Errorf("failed to settle portfolio: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read settle result: %w", err)
	}

	return affected == 1, nil
}

// scanner abstracts *sql.Row and *sql.Rows for the shared scan path.
type scanner interface {
	Scan(dest ...any) error
}

func scanPortfolio(row scanner) (model.Portfolio, error) {
	var p model.Portfolio
	var discountDate, createdAt string
	var settledAt sql.NullString
	var settlementAmount sql.NullFloat64
	var status string

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.EffectiveAnnualRate,
		&discountDate,
		&status,
		&settledAt,
		&settlementAmount,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.Portfolio{}, err
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to scan portfolio row: %w", err)
	}

	p.Status = model.PortfolioStatus(status)

	if p.DiscountDate, err = parseDate(discountDate); err != nil {
		return model.Portfolio{}, err
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Portfolio{}, err
	}
	if settledAt.Valid {
		t, err := parseTime(settledAt.String)
		if err != nil {
			return model.Portfolio{}, err
		}
		p.SettledAt = &t
	}
	if settlementAmount.Valid {
		v := settlementAmount.Float64
		p.SettlementAmount = &v
	}

	return p, nil
}
