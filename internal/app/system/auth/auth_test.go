package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testKey = "this-is-a-32-character-long-key!"

// fakeFetcher accepts exactly one token, or fails every lookup when err is set.
type fakeFetcher struct {
	token string
	admin *SessionAdmin
	err   error
	calls int
}

func (f *fakeFetcher) FetchAdmin(_ context.Context, token string) (*SessionAdmin, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if token != f.token {
		return nil, nil
	}
	a := *f.admin
	a.Token = token
	return &a, nil
}

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	sm, err := NewSessionManager(testKey, "", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	return sm
}

// loginCookie runs CreateSession and returns the cookie it set.
func loginCookie(t *testing.T, sm *SessionManager, token string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", nil)
	if err := sm.CreateSession(rec, req, token); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == sm.name {
			return c
		}
	}
	t.Fatal("CreateSession() did not set the session cookie")
	return nil
}

func TestNewSessionManager(t *testing.T) {
	const placeholder = "dev-only-session-key-not-for-production"

	tests := []struct {
		name    string
		key     string
		secure  bool
		wantErr bool
	}{
		{"strong key dev", testKey, false, false},
		{"strong key prod", testKey, true, false},
		{"empty key", "", false, true},
		{"short key dev is tolerated", "short", false, false},
		{"short key prod", "short", true, true},
		{"placeholder key prod", placeholder, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm, err := NewSessionManager(tt.key, "trips-test", "", time.Hour, tt.secure, zap.NewNop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewSessionManager() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && sm == nil {
				t.Error("NewSessionManager() returned nil manager without error")
			}
			var cfgErr *SessionConfigError
			if err != nil && !errors.As(err, &cfgErr) {
				t.Errorf("error type = %T, want *SessionConfigError", err)
			}
		})
	}
}

func TestNewSessionManager_MaxAgeDefault(t *testing.T) {
	sm, err := NewSessionManager(testKey, "", "", 0, false, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if sm.MaxAge() != 12*time.Hour {
		t.Errorf("MaxAge() = %v, want 12h", sm.MaxAge())
	}
}

func TestNewSessionManager_CookieName(t *testing.T) {
	tests := []struct{ configured, want string }{
		{"", "stratatrips-admin"},
		{"custom-session", "custom-session"},
	}
	for _, tt := range tests {
		sm, err := NewSessionManager(testKey, tt.configured, "", time.Hour, false, zap.NewNop())
		if err != nil {
			t.Fatalf("NewSessionManager(%q) error = %v", tt.configured, err)
		}
		if c := loginCookie(t, sm, "tok"); c.Name != tt.want {
			t.Errorf("cookie name = %q, want %q", c.Name, tt.want)
		}
	}
}

func TestCurrentAdmin(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := CurrentAdmin(req); ok {
		t.Error("CurrentAdmin() should return false without an admin in context")
	}

	admin := &SessionAdmin{ID: primitive.NewObjectID().Hex(), Email: "ops@example.com", Role: "admin"}
	req = WithTestAdmin(req, admin)
	got, ok := CurrentAdmin(req)
	if !ok || got.Email != "ops@example.com" {
		t.Errorf("CurrentAdmin() = %+v, %v", got, ok)
	}
}

func TestRequireAdmin(t *testing.T) {
	sm := newTestManager(t)
	h := sm.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/admin/packages", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status without admin = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Errorf("401 body should be JSON error, got %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req := WithTestAdmin(httptest.NewRequest("GET", "/api/admin/packages", nil), &SessionAdmin{ID: "x"})
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status with admin = %d, want 200", rec.Code)
	}
}

func TestLoadSessionAdmin_RoundTrip(t *testing.T) {
	sm := newTestManager(t)
	f := &fakeFetcher{token: "tok-1", admin: &SessionAdmin{ID: "abc", Email: "ops@example.com", Role: "admin"}}
	sm.SetAdminFetcher(f)

	cookie := loginCookie(t, sm, "tok-1")
	if !cookie.HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}

	var seen *SessionAdmin
	h := sm.LoadSessionAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CurrentAdmin(r)
	}))

	req := httptest.NewRequest("GET", "/api/admin/session", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen == nil {
		t.Fatal("LoadSessionAdmin() should inject the admin")
	}
	if seen.Token != "tok-1" || seen.Email != "ops@example.com" {
		t.Errorf("admin = %+v", seen)
	}
	if sm.SessionToken(req) != "tok-1" {
		t.Errorf("SessionToken() = %q, want tok-1", sm.SessionToken(req))
	}
}

func TestLoadSessionAdmin_RejectedTokenClearsCookie(t *testing.T) {
	sm := newTestManager(t)
	f := &fakeFetcher{token: "current", admin: &SessionAdmin{ID: "abc"}}
	sm.SetAdminFetcher(f)

	cookie := loginCookie(t, sm, "revoked")

	var seen bool
	h := sm.LoadSessionAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, seen = CurrentAdmin(r)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/packages", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(rec, req)

	if seen {
		t.Error("rejected token should not inject an admin")
	}
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == sm.name && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("rejected token should expire the cookie")
	}
}

func TestLoadSessionAdmin_LookupFailureKeepsCookie(t *testing.T) {
	sm := newTestManager(t)
	f := &fakeFetcher{token: "tok", admin: &SessionAdmin{ID: "abc"}, err: errors.New("server selection timeout")}
	sm.SetAdminFetcher(f)

	cookie := loginCookie(t, sm, "tok")

	var seen bool
	h := sm.LoadSessionAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, seen = CurrentAdmin(r)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/packages", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(rec, req)

	if seen {
		t.Error("failed lookup should not inject an admin")
	}
	if f.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1", f.calls)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == sm.name {
			t.Errorf("failed lookup rewrote the cookie (MaxAge %d)", c.MaxAge)
		}
	}

	// The same cookie is honoured once the store answers again.
	f.err = nil
	var again *SessionAdmin
	h = sm.LoadSessionAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		again, _ = CurrentAdmin(r)
	}))
	req = httptest.NewRequest("GET", "/api/admin/packages", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if again == nil || again.Token != "tok" {
		t.Errorf("admin after recovery = %+v, want token tok", again)
	}
}

func TestLoadSessionAdmin_NoCookie(t *testing.T) {
	sm := newTestManager(t)
	f := &fakeFetcher{token: "x", admin: &SessionAdmin{}}
	sm.SetAdminFetcher(f)

	h := sm.LoadSessionAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if f.calls != 0 {
		t.Error("fetcher should not be called without a token")
	}
}

func TestDestroySession(t *testing.T) {
	sm := newTestManager(t)
	cookie := loginCookie(t, sm, "tok")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	req.AddCookie(cookie)
	sm.DestroySession(rec, req)

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == sm.name {
			found = true
			if c.MaxAge >= 0 {
				t.Errorf("cookie MaxAge = %d, want negative", c.MaxAge)
			}
		}
	}
	if !found {
		t.Error("DestroySession() should write an expiring cookie")
	}
}

func TestGenerateSessionToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		tok, err := GenerateSessionToken()
		if err != nil {
			t.Fatalf("GenerateSessionToken() error = %v", err)
		}
		if len(tok) < 40 {
			t.Errorf("token too short: %q", tok)
		}
		if seen[tok] {
			t.Fatal("GenerateSessionToken() repeated a token")
		}
		seen[tok] = true
	}
}

func TestSessionConfigError(t *testing.T) {
	err := &SessionConfigError{Message: "test error"}
	if err.Error() != "test error" {
		t.Errorf("SessionConfigError.Error() = %q, want %q", err.Error(), "test error")
	}
}
