// Package auth issues and verifies session tokens and hashes passwords.
// Tokens are fernet: symmetric, signed, and carrying an issue timestamp so a
// TTL can be enforced at verification time.
package auth

import (
	"fmt"
	"log"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/quipufin/factoring-backend/internal/apperrors"
)

// DefaultTTL is how long a session token stays valid after login.
const DefaultTTL = 24 * time.Hour

// Sessions mints and verifies fernet session tokens. The payload is the user
// ID; everything else a handler needs it loads by that ID.
type Sessions struct {
	keys []*fernet.Key
	ttl  time.Duration
}

// NewSessions builds a Sessions from a base64 fernet key. An empty key
// generates an ephemeral one, which is fine for development but invalidates
// every session on restart.
func NewSessions(encodedKey string, ttl time.Duration) (*Sessions, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if encodedKey == "" {
		var key fernet.Key
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
		log.Println("SESSION_KEY not set, using an ephemeral key; sessions will not survive a restart")
		return &Sessions{keys: []*fernet.Key{&key}, ttl: ttl}, nil
	}

	keys, err := fernet.DecodeKeys(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session key: %w", err)
	}

	return &Sessions{keys: keys, ttl: ttl}, nil
}

// Mint creates a token for the given user ID.
func (s *Sessions) Mint(userID string) (string, error) {
	tok, err := fernet.EncryptAndSign([]byte(userID), s.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return string(tok), nil
}

// Verify checks a token's signature and age and returns the user ID it was
// minted for.
func (s *Sessions) Verify(token string) (string, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), s.ttl, s.keys)
	if msg == nil {
		return "", apperrors.ErrInvalidToken
	}
	return string(msg), nil
}
