package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestValidateIDMiddleware(t *testing.T) {
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	router := chi.NewRouter()
	router.Route("/{id}", func(r chi.Router) {
		r.Use(ValidateIDMiddleware)
		r.Get("/", next)
	})

	t.Run("valid UUID passes through", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodGet, "/550e8400-e29b-41d4-a716-446655440000/", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if !reached {
			t.Error("Expected the handler to be reached")
		}
	})

	t.Run("invalid UUID returns 400", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodGet, "/not-a-uuid/", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
		if reached {
			t.Error("Expected the handler not to be reached")
		}
	})
}
