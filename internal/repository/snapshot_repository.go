package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quipufin/factoring-backend/internal/model"
)

// SnapshotRepository provides data access methods for the
// portfolio_value_snapshot table, the pre-calculated daily valuations behind
// the history endpoint.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Upsert writes one portfolio/date snapshot, replacing any existing row for
// the same portfolio and date so the refresh job is safe to re-run.
func (s *SnapshotRepository) Upsert(snap model.PortfolioValueSnapshot) error {
	query := `
          INSERT INTO portfolio_value_snapshot (id, portfolio_id, date, total_face_amount, total_discounted_amount, calculated_at)
          VALUES (?, ?, ?, ?, ?, ?)
          ON CONFLICT(portfolio_id, date) DO UPDATE SET
              total_face_amount = excluded.total_face_amount,
              total_discounted_amount = excluded.total_discounted_amount,
              calculated_at = excluded.calculated_at
      `

	_, err := s.db.Exec(query,
		uuid.New().String(),
		snap.PortfolioID,
		formatDate(snap.Date),
		snap.TotalFaceAmount,
		snap.TotalDiscountedAmount,
		formatTime(snap.CalculatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	return nil
}

// GetRange retrieves snapshots within [startDate, endDate], oldest first.
// When portfolioID is empty, all portfolios are included.
func (s *SnapshotRepository) GetRange(startDate, endDate time.Time, portfolioID string) ([]model.PortfolioValueSnapshot, error) {
	query := `
          SELECT s.portfolio_id, p.name, s.date, s.total_face_amount, s.total_discounted_amount, s.calculated_at
          FROM portfolio_value_snapshot s
          JOIN portfolio p ON p.id = s.portfolio_id
          WHERE s.date >= ? AND s.date <= ?
      `
	args := []any{formatDate(startDate), formatDate(endDate)}

	if portfolioID != "" {
		query += " AND s.portfolio_id = ?"
		args = append(args, portfolioID)
	}

	query += " ORDER BY s.date, p.name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.PortfolioValueSnapshot{}

	for rows.Next() {
		var snap model.PortfolioValueSnapshot
		var date, calculatedAt string

		err := rows.Scan(
			&snap.PortfolioID,
			&snap.PortfolioName,
			&date,
			&snap.TotalFaceAmount,
			&snap.TotalDiscountedAmount,
			&calculatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}

		if snap.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		if snap.CalculatedAt, err = parseTime(calculatedAt); err != nil {
			return nil, err
		}

		snapshots = append(snapshots, snap)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot table: %w", err)
	}

	return snapshots, nil
}
