package repository

import (
	"database/sql"
	"fmt"

	"github.com/quipufin/factoring-backend/internal/apperrors"
	"github.com/quipufin/factoring-backend/internal/model"
)

// InvoiceRepository provides data access methods for the invoice table.
type InvoiceRepository struct {
	db *sql.DB
}

// NewInvoiceRepository creates a new InvoiceRepository with the provided database connection.
func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create inserts a new invoice row. Amounts are expected in PEN; currency
// conversion happens in the service layer before this point.
func (s *InvoiceRepository) Create(inv model.Invoice) error {
	query := `
          INSERT INTO invoice (id, portfolio_id, client, invoice_number, face_amount, currency, due_date, created_at)
          VALUES (?, ?, ?, ?, ?, ?, ?, ?)
      `

	_, err := s.db.Exec(query,
		inv.ID,
		inv.PortfolioID,
		inv.Client,
		inv.InvoiceNumber,
		inv.FaceAmount,
		inv.Currency,
		formatDate(inv.DueDate),
		formatTime(inv.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}

	return nil
}

const invoiceColumns = `id, portfolio_id, client, invoice_number, face_amount, currency, due_date, created_at`

// GetInvoices retrieves all invoices ordered by creation time.
func (s *InvoiceRepository) GetInvoices() ([]model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoice ORDER BY created_at, id`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice table: %w", err)
	}
	defer rows.Close()

	return collectInvoices(rows)
}

// GetInvoicesOnPortfolioID retrieves a portfolio's invoices in insertion
// order. The valuation aggregator depends on that ordering.
func (s *InvoiceRepository) GetInvoicesOnPortfolioID(portfolioID string) ([]model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoice WHERE portfolio_id = ? ORDER BY created_at, id`

	rows, err := s.db.Query(query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice table: %w", err)
	}
	defer rows.Close()

	return collectInvoices(rows)
}

// GetInvoiceOnID retrieves a single invoice by its ID.
func (s *InvoiceRepository) GetInvoiceOnID(invoiceID string) (model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoice WHERE id = ?`

	inv, err := scanInvoice(s.db.QueryRow(query, invoiceID))
	if err == sql.ErrNoRows {
		return model.Invoice{}, apperrors.ErrInvoiceNotFound
	}
	if err != nil {
		return model.Invoice{}, err
	}

	return inv, nil
}

// Delete removes an invoice.
func (s *InvoiceRepository) Delete(invoiceID string) error {
	result, err := s.db.Exec(`DELETE FROM invoice WHERE id = ?`, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvoiceNotFound
	}

	return nil
}

// GetMonthlyTotals returns the face amount of all invoices grouped by due
// month, ascending. Months without invoices are absent.
func (s *InvoiceRepository) GetMonthlyTotals() ([]model.MonthlyTotal, error) {
	query := `
          SELECT strftime('%Y-%m', due_date) AS month, SUM(face_amount)
          FROM invoice
          GROUP BY month
          ORDER BY month
      `

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", err)
	}
	defer rows.Close()

	totals := []model.MonthlyTotal{}

	for rows.Next() {
		var t model.MonthlyTotal
		if err := rows.Scan(&t.Month, &t.TotalFaceAmount); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		totals = append(totals, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly totals: %w", err)
	}

	return totals, nil
}

func collectInvoices(rows *sql.Rows) ([]model.Invoice, error) {
	invoices := []model.Invoice{}

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice table: %w", err)
	}

	return invoices, nil
}

func scanInvoice(row scanner) (model.Invoice, error) {
	var inv model.Invoice
	var dueDate, createdAt string

	err := row.Scan(
		&inv.ID,
		&inv.PortfolioID,
		&inv.Client,
		&inv.InvoiceNumber,
		&inv.FaceAmount,
		&inv.Currency,
		&dueDate,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.Invoice{}, err
	}
	if err != nil {
		return model.Invoice{}, fmt.Errorf("failed to scan invoice row: %w", err)
	}

	if inv.DueDate, err = parseDate(dueDate); err != nil {
		return model.Invoice{}, err
	}
	if inv.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Invoice{}, err
	}

	return inv, nil
}
