package web

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestNewMux_PublicRoutes runs requests through the full middleware chain.
func TestNewMux_PublicRoutes(t *testing.T) {
	setupStores(t)
	RateLimitPerSecond = 100
	h := NewMux("../../../static", stores)

	t.Run("schedule JSON", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/schedule?date=2025-03-01", nil)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200. Body: %s", rec.Code, rec.Body.String())
		}
		if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
			t.Error("security headers missing")
		}
	})

	t.Run("coach route redirects anonymous", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/day", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want 303", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("redirect = %q, want /login", loc)
		}
	})

	t.Run("JSON submit bypasses CSRF", func(t *testing.T) {
		body := bytes.NewBufferString(`{"TargetDate":"2025-03-01","Time":"10:00","Requester":"Amy","Note":""}`)
		req := httptest.NewRequest("POST", "/requests", body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Errorf("status = %d, want 201. Body: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("form submit without CSRF token rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/requests", bytes.NewBufferString("Requester=Amy"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("unknown path 404s", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/nope", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
