package repository

import (
	"database/sql"
	"fmt"

	"github.com/quipufin/factoring-backend/internal/model"
)

// SettlementRepository provides data access methods for the settlement table,
// the audit record of portfolio payouts.
type SettlementRepository struct {
	db *sql.DB
}

// NewSettlementRepository creates a new SettlementRepository with the provided database connection.
func NewSettlementRepository(db *sql.DB) *SettlementRepository {
	return &SettlementRepository{db: db}
}

// CreateTx inserts a settlement record inside the given transaction.
func (s *SettlementRepository) CreateTx(tx *sql.Tx, stl model.Settlement) error {
	query := `
          INSERT INTO settlement (id, portfolio_id, user_id, reference_date, total_discounted_amount, created_at)
          VALUES (?, ?, ?, ?, ?, ?)
      `

	_, err := tx.Exec(query,
		stl.ID,
		stl.PortfolioID,
		stl.UserID,
		formatDate(stl.ReferenceDate),
		stl.TotalDiscountedAmount,
		formatTime(stl.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	return nil
}

// GetSettlementsOnUserID retrieves a user's settlements, newest first.
func (s *SettlementRepository) GetSettlementsOnUserID(userID string) ([]model.Settlement, error) {
	query := `
          SELECT id, portfolio_id, user_id, reference_date, total_discounted_amount, created_at
          FROM settlement
          WHERE user_id = ?
          ORDER BY created_at DESC, id
      `

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlement table: %w", err)
	}
	defer rows.Close()

	settlements := []model.Settlement{}

	for rows.Next() {
		var stl model.Settlement
		var referenceDate, createdAt string

		err := rows.Scan(
			&stl.ID,
			&stl.PortfolioID,
			&stl.UserID,
			&referenceDate,
			&stl.TotalDiscountedAmount,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}

		if stl.ReferenceDate, err = parseDate(referenceDate); err != nil {
			return nil, err
		}
		if stl.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}

		settlements = append(settlements, stl)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settlement table: %w", err)
	}

	return settlements, nil
}
