package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quipufin/factoring-backend/internal/auth"
)

// TestRequireSession tests the session middleware.
//
// WHY: Settlement sits behind this middleware. A missing or forged token must
// never reach the handler, and a valid one must surface the right user ID.
func TestRequireSession(t *testing.T) {
	sessions, err := auth.NewSessions("", 0)
	if err != nil {
		t.Fatalf("Failed to create sessions: %v", err)
	}

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := RequireSession(sessions)(next)

	t.Run("missing header returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/portfolio/x/settle", nil)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("malformed token returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/portfolio/x/settle", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("token from a different key returns 401", func(t *testing.T) {
		other, err := auth.NewSessions("", 0)
		if err != nil {
			t.Fatalf("Failed to create sessions: %v", err)
		}
		token, err := other.Mint("user-1")
		if err != nil {
			t.Fatalf("Failed to mint token: %v", err)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/portfolio/x/settle", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("valid token passes the user ID through", func(t *testing.T) {
		token, err := sessions.Mint("user-42")
		if err != nil {
			t.Fatalf("Failed to mint token: %v", err)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/portfolio/x/settle", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if gotUserID != "user-42" {
			t.Errorf("Expected user-42 in context, got %q", gotUserID)
		}
	})
}
