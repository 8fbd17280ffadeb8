package throttle

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestAllow_Burst(t *testing.T) {
	l := New(6, 2, zap.NewNop())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if !l.Allow("1.2.3.4") || !l.Allow("1.2.3.4") {
		t.Fatal("first two requests should fit the burst")
	}
	if l.Allow("1.2.3.4") {
		t.Error("third immediate request should be throttled")
	}
	if !l.Allow("5.6.7.8") {
		t.Error("a different IP has its own bucket")
	}

	// 6 per minute refills one token every 10s
	now = now.Add(10 * time.Second)
	if !l.Allow("1.2.3.4") {
		t.Error("request after refill should pass")
	}
}

func TestAllow_Disabled(t *testing.T) {
	l := New(0, 1, zap.NewNop())
	for i := 0; i < 100; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatal("disabled limiter should allow everything")
		}
	}
	if l.Len() != 0 {
		t.Error("disabled limiter should not track visitors")
	}
}

func TestPrune(t *testing.T) {
	l := New(60, 1, zap.NewNop())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("old")
	now = now.Add(20 * time.Minute)
	l.Allow("fresh")

	if n := l.Prune(10 * time.Minute); n != 1 {
		t.Errorf("Prune() = %d, want 1", n)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestMiddleware(t *testing.T) {
	l := New(1, 1, zap.NewNop())
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/enquiries", nil)
	req.RemoteAddr = "9.9.9.9:1234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first request status = %d, want 201", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("429 should carry Retry-After")
	}
}
