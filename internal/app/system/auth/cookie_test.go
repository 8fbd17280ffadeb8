package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// decodeErr satisfies securecookie.Error.
type decodeErr struct {
	msg    string
	decode bool
}

func (e decodeErr) Error() string    { return e.msg }
func (e decodeErr) IsDecode() bool   { return e.decode }
func (e decodeErr) IsUsage() bool    { return false }
func (e decodeErr) IsInternal() bool { return !e.decode }
func (e decodeErr) Cause() error     { return nil }

func TestClassifyCookieError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want cookieFault
	}{
		{"nil", nil, faultNone},
		{"expired", decodeErr{"securecookie: expired timestamp", true}, faultExpired},
		{"mac", decodeErr{"securecookie: the value is not valid (MAC)", true}, faultForged},
		{"hash", decodeErr{"hash mismatch", true}, faultForged},
		{"decrypt", decodeErr{"securecookie: decrypt failed", true}, faultDecrypt},
		{"base64", decodeErr{"illegal base64 data", true}, faultDecode},
		{"other decode", decodeErr{"value too long", true}, faultGarbled},
		{"internal", decodeErr{"securecookie: hash key is not set", false}, faultInternal},
		{"plain error", errors.New("store offline"), faultInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyCookieError(tt.err); got != tt.want {
				t.Errorf("classifyCookieError() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLogCookieError_LevelAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sm := &SessionManager{logger: zap.New(core)}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
	req.Header.Set("User-Agent", "curl/8")
	sm.logCookieError(req, decodeErr{"the value is not valid (MAC)", true})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", e.Level)
	}
	fields := e.ContextMap()
	if fields["category"] != "mac_invalid" {
		t.Errorf("category = %v", fields["category"])
	}
	if fields["user_agent"] != "curl/8" {
		t.Errorf("user_agent = %v, want curl/8", fields["user_agent"])
	}
}

func TestLogCookieError_BelowLevelIsSilent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sm := &SessionManager{logger: zap.New(core)}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
	sm.logCookieError(req, decodeErr{"expired timestamp", true})

	if n := logs.Len(); n != 0 {
		t.Errorf("expired cookie logged %d entries at info, want 0", n)
	}
}

func TestCheckSigningKey(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)

	if err := checkSigningKey("", false, logger); err == nil {
		t.Error("empty key accepted")
	}
	if err := checkSigningKey("please-change-me-0123456789abcdef", true, logger); err == nil {
		t.Error("placeholder key accepted in production")
	}
	if err := checkSigningKey("please-change-me-0123456789abcdef", false, logger); err != nil {
		t.Errorf("placeholder key in dev = %v, want nil", err)
	}
	if logs.FilterMessage("weak session key accepted outside production").Len() != 1 {
		t.Error("weak dev key was not logged")
	}
	if err := checkSigningKey("q7Vd2LmX9pR4tZ8wB1nK6cH3yF0sJ5gA", true, logger); err != nil {
		t.Errorf("random key in production = %v", err)
	}
}

func TestIsPlaceholderKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"dev-only-key", true},
		{"CHANGE-ME-NOW", true},
		{"changeme", true},
		{"my-Password-is-long-enough-for-it", true},
		{"trips-example-key", true},
		{"q7Vd2LmX9pR4tZ8wB1nK6cH3yF0sJ5gA", false},
		{"bright-harbour-lantern-quietly-77", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := isPlaceholderKey(tt.key); got != tt.want {
				t.Errorf("isPlaceholderKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}
