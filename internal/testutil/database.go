package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE portfolio (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			effective_annual_rate FLOAT NOT NULL,
			discount_date DATE NOT NULL,
			status VARCHAR(10) NOT NULL DEFAULT 'active',
			settled_at DATETIME,
			settlement_amount FLOAT,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE invoice (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			client VARCHAR(100) NOT NULL,
			invoice_number VARCHAR(50) NOT NULL,
			face_amount FLOAT NOT NULL,
			currency VARCHAR(3) NOT NULL,
			due_date DATE NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE
		);

		CREATE TABLE app_user (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(100) NOT NULL,
			balance FLOAT NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE settlement (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL UNIQUE,
			user_id VARCHAR(36) NOT NULL,
			reference_date DATE NOT NULL,
			total_discounted_amount FLOAT NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE,
			FOREIGN KEY(user_id) REFERENCES app_user(id)
		);

		CREATE TABLE portfolio_value_snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			total_face_amount FLOAT NOT NULL,
			total_discounted_amount FLOAT NOT NULL,
			calculated_at DATETIME NOT NULL,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE,
			CONSTRAINT uq_portfolio_snapshot_date UNIQUE (portfolio_id, date)
		);

		CREATE INDEX ix_invoice_portfolio_id ON invoice(portfolio_id);
		CREATE INDEX ix_invoice_due_date ON invoice(due_date);
		CREATE INDEX ix_settlement_user_id ON settlement(user_id);
		CREATE INDEX ix_snapshot_portfolio_date ON portfolio_value_snapshot(portfolio_id, date);
		CREATE INDEX ix_snapshot_date ON portfolio_value_snapshot(date);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables in dependency order.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
	tables := []string{
		"portfolio_value_snapshot",
		"settlement",
		"invoice",
		"portfolio",
		"app_user",
	}

	for _, table := range tables {
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
