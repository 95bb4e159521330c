package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestSessionStore_CreateGet verifies a created token resolves to a session.
func TestSessionStore_CreateGet(t *testing.T) {
	ss := NewSessionStore()
	token, err := ss.Create()
	if err != nil {
		t.Fatal(err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if _, ok := ss.Get(token); !ok {
		t.Error("session not found after Create")
	}
}

// TestSessionStore_Expiry verifies sessions older than 24 hours are rejected
// and evicted.
func TestSessionStore_Expiry(t *testing.T) {
	ss := NewSessionStore()
	token, err := ss.Create()
	if err != nil {
		t.Fatal(err)
	}
	ss.sessions[token] = Session{CreatedAt: time.Now().Add(-25 * time.Hour)}

	if _, ok := ss.Get(token); ok {
		t.Error("expired session still valid")
	}
	if _, ok := ss.sessions[token]; ok {
		t.Error("expired session not evicted")
	}
}

// TestSessionStore_Delete verifies logout removes the session.
func TestSessionStore_Delete(t *testing.T) {
	ss := NewSessionStore()
	token, err := ss.Create()
	if err != nil {
		t.Fatal(err)
	}
	ss.Delete(token)
	if _, ok := ss.Get(token); ok {
		t.Error("session valid after Delete")
	}
}

// TestAuth_SetsContext verifies a valid cookie marks the request as coach.
func TestAuth_SetsContext(t *testing.T) {
	ss := NewSessionStore()
	token, err := ss.Create()
	if err != nil {
		t.Fatal(err)
	}

	var sawCoach bool
	handler := Auth(ss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawCoach = IsCoach(r.Context())
	}))

	req := httptest.NewRequest("GET", "/day", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !sawCoach {
		t.Error("valid cookie did not yield coach context")
	}
}

// TestAuth_BadToken verifies an unknown token leaves the request anonymous.
func TestAuth_BadToken(t *testing.T) {
	ss := NewSessionStore()

	var sawCoach bool
	handler := Auth(ss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawCoach = IsCoach(r.Context())
	}))

	req := httptest.NewRequest("GET", "/day", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "bogus"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if sawCoach {
		t.Error("bogus token yielded coach context")
	}
}

// TestRequireCoach verifies anonymous requests are redirected to /login and
// coach requests pass through.
func TestRequireCoach(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/day", nil)
	rr := httptest.NewRecorder()
	RequireCoach(next).ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Errorf("anonymous status = %d, want 303", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect = %q, want /login", loc)
	}

	req = httptest.NewRequest("GET", "/day", nil)
	req = req.WithContext(ContextWithCoach(req.Context()))
	rr = httptest.NewRecorder()
	RequireCoach(next).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("coach status = %d, want 200", rr.Code)
	}
}
