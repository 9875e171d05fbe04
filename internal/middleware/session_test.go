package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func sessionEcho(t *testing.T, m *SessionManager) http.Handler {
	t.Helper()
	return m.Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd := GetSession(r)
		if sd.ID == "" {
			t.Fatalf("expected a session id")
		}
		_, _ = w.Write([]byte(sd.ID))
	}))
}

func TestSessionPersistsAcrossRequests(t *testing.T) {
	m := NewSessionManager("key", false, zap.NewNop())
	h := sessionEcho(t, m)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	first := rec.Body.String()
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected a session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Body.String() != first {
		t.Fatalf("expected the same session id, got %q then %q", first, rec.Body.String())
	}
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	m := NewSessionManager("key", false, zap.NewNop())
	h := sessionEcho(t, m)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	first := rec.Body.String()
	c := rec.Result().Cookies()[0]
	c.Value = strings.Replace(c.Value, ".", "x.", 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Body.String() == first {
		t.Fatalf("tampered cookie must not resume the session")
	}
}

func TestCSRF(t *testing.T) {
	m := NewSessionManager("key", false, zap.NewNop())
	var token string
	h := m.Session(CSRF(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = GetSession(r).CSRFToken
		w.WriteHeader(http.StatusNoContent)
	})))

	// safe method passes and yields the token
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("GET should pass CSRF, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()

	// POST without the token is rejected
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without token, got %d", rec.Code)
	}

	// POST with the session token passes
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("csrf_token="+token))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 with valid token, got %d", rec.Code)
	}
}
