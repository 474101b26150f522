package model

import "time"

// User represents an account that can receive settlement credits.
// The balance is the internal ledger updated when a portfolio is settled.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Balance      float64   `json:"balance"`
	CreatedAt    time.Time `json:"createdAt"`
}
