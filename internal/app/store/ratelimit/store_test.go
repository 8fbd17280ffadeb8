package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/stratatrips/internal/testutil"
)

func TestStore_CheckAllowed_NoRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 5, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	allowed, remaining, lockedUntil := store.CheckAllowed(ctx, "new@example.com")

	if !allowed {
		t.Error("CheckAllowed() should return true for an unseen email")
	}
	if remaining != 5 {
		t.Errorf("CheckAllowed() remaining = %d, want 5", remaining)
	}
	if lockedUntil != nil {
		t.Error("CheckAllowed() lockedUntil should be nil")
	}
}

func TestStore_RecordFailure_IncreasesCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 5, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 1; i <= 3; i++ {
		lockedOut, _ := store.RecordFailure(ctx, "admin@example.com")
		if lockedOut {
			t.Fatalf("RecordFailure() locked out after %d attempts", i)
		}
	}

	attempt, err := store.GetAttempt(ctx, "ADMIN@example.com")
	if err != nil {
		t.Fatalf("GetAttempt() error = %v", err)
	}
	if attempt == nil || attempt.AttemptCount != 3 {
		t.Fatalf("GetAttempt() = %+v, want 3 attempts", attempt)
	}

	_, remaining, _ := store.CheckAllowed(ctx, "admin@example.com")
	if remaining != 2 {
		t.Errorf("CheckAllowed() remaining = %d, want 2", remaining)
	}
}

func TestStore_RecordFailure_TriggersLockout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 3, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.RecordFailure(ctx, "admin@example.com")
	store.RecordFailure(ctx, "admin@example.com")
	lockedOut, lockedUntil := store.RecordFailure(ctx, "admin@example.com")

	if !lockedOut {
		t.Fatal("third failure should lock out")
	}
	if lockedUntil == nil || lockedUntil.Before(time.Now().Add(29*time.Minute)) {
		t.Errorf("lockedUntil = %v, want ~30m from now", lockedUntil)
	}

	allowed, remaining, until := store.CheckAllowed(ctx, "Admin@Example.com")
	if allowed || remaining != -1 || until == nil {
		t.Errorf("CheckAllowed() = %v, %d, %v; want locked", allowed, remaining, until)
	}
}

func TestStore_RecordFailure_ConcurrentFailuresAllCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 100, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	const n = 12
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.RecordFailure(ctx, "burst@example.com")
		}()
	}
	wg.Wait()

	attempt, err := store.GetAttempt(ctx, "burst@example.com")
	if err != nil {
		t.Fatalf("GetAttempt() error = %v", err)
	}
	if attempt == nil || attempt.AttemptCount != n {
		t.Errorf("AttemptCount = %+v, want %d", attempt, n)
	}
}

func TestStore_ClearOnSuccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 5, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.RecordFailure(ctx, "admin@example.com")
	if err := store.ClearOnSuccess(ctx, "admin@example.com"); err != nil {
		t.Fatalf("ClearOnSuccess() error = %v", err)
	}
	attempt, err := store.GetAttempt(ctx, "admin@example.com")
	if err != nil || attempt != nil {
		t.Errorf("GetAttempt() after clear = %v, %v, want nil, nil", attempt, err)
	}
}

func TestStore_WindowExpiry_ResetsCounter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 3, 50*time.Millisecond, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.RecordFailure(ctx, "admin@example.com")
	store.RecordFailure(ctx, "admin@example.com")
	time.Sleep(100 * time.Millisecond)

	lockedOut, _ := store.RecordFailure(ctx, "admin@example.com")
	if lockedOut {
		t.Error("failure in a fresh window should not lock out")
	}
	attempt, _ := store.GetAttempt(ctx, "admin@example.com")
	if attempt == nil || attempt.AttemptCount != 1 {
		t.Errorf("AttemptCount = %+v, want 1 after window reset", attempt)
	}
}

func TestStore_PurgeStale(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 5, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.RecordFailure(ctx, "old@example.com")
	time.Sleep(20 * time.Millisecond)

	n, err := store.PurgeStale(ctx, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("PurgeStale() error = %v", err)
	}
	if n != 1 {
		t.Errorf("PurgeStale() = %d, want 1", n)
	}

	store.RecordFailure(ctx, "fresh@example.com")
	n, _ = store.PurgeStale(ctx, time.Hour)
	if n != 0 {
		t.Errorf("PurgeStale() removed a fresh record")
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := map[string]string{
		"Admin@Example.com":  "admin@example.com",
		"  spaced@x.com  ":   "spaced@x.com",
		"already@lower.case": "already@lower.case",
	}
	for in, want := range tests {
		if got := normalizeEmail(in); got != want {
			t.Errorf("normalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}
