package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/quipufin/factoring-backend/internal/apperrors"
	"github.com/quipufin/factoring-backend/internal/model"
)

// UserRepository provides data access methods for the app_user table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user row. A duplicate email surfaces as
// apperrors.ErrDuplicateEmail.
func (s *UserRepository) Create(u model.User) error {
	query := `
          INSERT INTO app_user (id, email, password_hash, balance, created_at)
          VALUES (?, ?, ?, ?, ?)
      `

	_, err := s.db.Exec(query, u.ID, u.Email, u.PasswordHash, u.Balance, formatTime(u.CreatedAt))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserOnID retrieves a single user by ID.
func (s *UserRepository) GetUserOnID(userID string) (model.User, error) {
	query := `SELECT id, email, password_hash, balance, created_at FROM app_user WHERE id = ?`
	return s.getUser(query, userID)
}

// GetUserOnEmail retrieves a single user by email.
func (s *UserRepository) GetUserOnEmail(email string) (model.User, error) {
	query := `SELECT id, email, password_hash, balance, created_at FROM app_user WHERE email = ?`
	return s.getUser(query, email)
}

func (s *UserRepository) getUser(query string, arg any) (model.User, error) {
	var u model.User
	var createdAt string

	err := s.db.QueryRow(query, arg).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Balance,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.User{}, err
	}

	return u, nil
}

// CreditBalanceTx adds an amount to a user's balance inside the given
// transaction and returns the updated balance. Used by settlement, which
// must update portfolio state and the ledger atomically.
func (s *UserRepository) CreditBalanceTx(tx *sql.Tx, userID string, amount float64) (float64, error) {
	result, err := tx.Exec(`UPDATE app_user SET balance = balance + ? WHERE id = ?`, amount, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to credit balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read credit result: %w", err)
	}
	if affected == 0 {
		return 0, apperrors.ErrUserNotFound
	}

	var balance float64
	if err := tx.QueryRow(`SELECT balance FROM app_user WHERE id = ?`, userID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to read updated balance: %w", err)
	}

	return balance, nil
}
