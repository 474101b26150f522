package service_test

import (
	"errors"
	"testing"

	"github.com/quipufin/factoring-backend/internal/api/request"
	"github.com/quipufin/factoring-backend/internal/apperrors"
	"github.com/quipufin/factoring-backend/internal/auth"
	"github.com/quipufin/factoring-backend/internal/repository"
	"github.com/quipufin/factoring-backend/internal/service"
	"github.com/quipufin/factoring-backend/internal/testutil"
)

// TestAuthService tests registration and login.
//
// WHY: Login is the gate in front of settlement. Registration must hash the
// password, logins must fail identically for unknown emails and wrong
// passwords, and a good login must yield a verifiable session token.
func TestAuthService(t *testing.T) {
	setup := func(t *testing.T) (*service.AuthService, *auth.Sessions) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		sessions, err := auth.NewSessions("", 0)
		if err != nil {
			t.Fatalf("Failed to create sessions: %v", err)
		}
		return service.NewAuthService(repository.NewUserRepository(db), sessions), sessions
	}

	t.Run("register stores a hash, not the password", func(t *testing.T) {
		svc, _ := setup(t)

		user, err := svc.Register(request.RegisterRequest{
			Email:    "ana@example.com",
			Password: "correct horse",
		})
		if err != nil {
			t.Fatalf("Register() returned unexpected error: %v", err)
		}

		if user.PasswordHash == "correct horse" || user.PasswordHash == "" {
			t.Error("Expected a password hash distinct from the password")
		}
		if user.Balance != 0 {
			t.Errorf("Expected zero starting balance, got %v", user.Balance)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		svc, _ := setup(t)

		req := request.RegisterRequest{Email: "ana@example.com", Password: "correct horse"}
		if _, err := svc.Register(req); err != nil {
			t.Fatalf("First Register() returned unexpected error: %v", err)
		}

		_, err := svc.Register(req)
		if !errors.Is(err, apperrors.ErrDuplicateEmail) {
			t.Errorf("Expected ErrDuplicateEmail, got %v", err)
		}
	})

	t.Run("login yields a verifiable token", func(t *testing.T) {
		svc, sessions := setup(t)

		user, err := svc.Register(request.RegisterRequest{
			Email:    "ana@example.com",
			Password: "correct horse",
		})
		if err != nil {
			t.Fatalf("Register() returned unexpected error: %v", err)
		}

		session, err := svc.Login(request.LoginRequest{
			Email:    "ana@example.com",
			Password: "correct horse",
		})
		if err != nil {
			t.Fatalf("Login() returned unexpected error: %v", err)
		}

		if session.UserID != user.ID {
			t.Errorf("Expected session for user %s, got %s", user.ID, session.UserID)
		}

		verified, err := sessions.Verify(session.Token)
		if err != nil {
			t.Fatalf("Verify() returned unexpected error: %v", err)
		}
		if verified != user.ID {
			t.Errorf("Token verified to %s, expected %s", verified, user.ID)
		}
	})

	t.Run("wrong password and unknown email fail the same way", func(t *testing.T) {
		svc, _ := setup(t)

		if _, err := svc.Register(request.RegisterRequest{
			Email:    "ana@example.com",
			Password: "correct horse",
		}); err != nil {
			t.Fatalf("Register() returned unexpected error: %v", err)
		}

		_, wrongPass := svc.Login(request.LoginRequest{Email: "ana@example.com", Password: "wrong"})
		_, unknown := svc.Login(request.LoginRequest{Email: "nobody@example.com", Password: "wrong"})

		if !errors.Is(wrongPass, apperrors.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
		}
		if !errors.Is(unknown, apperrors.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials for unknown email, got %v", unknown)
		}
	})

	t.Run("short passwords are rejected", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Register(request.RegisterRequest{
			Email:    "ana@example.com",
			Password: "short",
		})
		if err == nil {
			t.Fatal("Expected validation error for short password, got nil")
		}
	})
}
