package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/api/middleware"
)

// TestAPIKey tests the developer route guard.
//
// WHY: The developer namespace exposes telemetry and credential management;
// the guard must reject wrong or missing keys and stay out of the way when no
// key is configured.
func TestAPIKey(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("empty configured key disables the guard", func(t *testing.T) {
		guarded := middleware.APIKey("")(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/api/developer/telemetry", nil)
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200 with no key configured, got %d", rec.Code)
		}
	})

	t.Run("matching key passes", func(t *testing.T) {
		guarded := middleware.APIKey("dev-key")(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/api/developer/telemetry", nil)
		req.Header.Set("X-API-Key", "dev-key")
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200 with the right key, got %d", rec.Code)
		}
	})

	t.Run("missing key is rejected", func(t *testing.T) {
		guarded := middleware.APIKey("dev-key")(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/api/developer/telemetry", nil)
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401 without a key, got %d", rec.Code)
		}
	})

	t.Run("wrong key is rejected", func(t *testing.T) {
		guarded := middleware.APIKey("dev-key")(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/api/developer/telemetry", nil)
		req.Header.Set("X-API-Key", "guess")
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401 with the wrong key, got %d", rec.Code)
		}
	})
}
