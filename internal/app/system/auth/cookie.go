package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// cookieFault is the logging treatment for an unreadable admin cookie.
type cookieFault struct {
	category string
	level    zapcore.Level
}

var (
	faultNone     = cookieFault{"none", zapcore.DebugLevel}
	faultExpired  = cookieFault{"expired", zapcore.DebugLevel}
	faultForged   = cookieFault{"mac_invalid", zapcore.WarnLevel}
	faultDecrypt  = cookieFault{"decrypt_failed", zapcore.InfoLevel}
	faultDecode   = cookieFault{"decode_failed", zapcore.InfoLevel}
	faultGarbled  = cookieFault{"decode_other", zapcore.InfoLevel}
	faultInternal = cookieFault{"backend", zapcore.ErrorLevel}
)

// decodeRules are matched in order against a lowercased securecookie decode error.
var decodeRules = []struct {
	needles []string
	fault   cookieFault
}{
	{[]string{"expired timestamp"}, faultExpired},
	{[]string{"mac", "hash"}, faultForged},
	{[]string{"decrypt"}, faultDecrypt},
	{[]string{"base64", "decode"}, faultDecode},
}

func classifyCookieError(err error) cookieFault {
	if err == nil {
		return faultNone
	}
	var scErr securecookie.Error
	if !errors.As(err, &scErr) || !scErr.IsDecode() {
		return faultInternal
	}
	msg := strings.ToLower(err.Error())
	for _, rule := range decodeRules {
		for _, n := range rule.needles {
			if strings.Contains(msg, n) {
				return rule.fault
			}
		}
	}
	return faultGarbled
}

// logCookieError records a rejected cookie. The request proceeds without an admin.
func (sm *SessionManager) logCookieError(r *http.Request, err error) {
	f := classifyCookieError(err)
	ce := sm.logger.Check(f.level, "admin cookie rejected")
	if ce == nil {
		return
	}
	fields := []zap.Field{
		zap.String("category", f.category),
		zap.String("path", r.URL.Path),
	}
	switch f {
	case faultForged:
		fields = append(fields,
			zap.String("remote_addr", r.RemoteAddr),
			zap.String("user_agent", r.UserAgent()))
	case faultInternal, faultGarbled:
		fields = append(fields, zap.Error(err))
	}
	ce.Write(fields...)
}

// minKeyLen is the shortest signing key accepted in production.
const minKeyLen = 32

// placeholderMarkers flag keys copied from sample configs.
var placeholderMarkers = []string{
	"dev-only", "change-me", "changeme", "placeholder", "default",
	"example", "insecure", "test-key", "secret123", "password",
}

func isPlaceholderKey(key string) bool {
	lower := strings.ToLower(key)
	for _, m := range placeholderMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// checkSigningKey rejects an empty key always and a weak key when secure.
// In dev a weak key is logged and accepted.
func checkSigningKey(key string, secure bool, logger *zap.Logger) error {
	if key == "" {
		return &SessionConfigError{Message: "session key is empty; provide at least 32 random characters"}
	}
	short := len(key) < minKeyLen
	placeholder := isPlaceholderKey(key)
	if !short && !placeholder {
		return nil
	}
	if secure {
		return &SessionConfigError{Message: "session key is too weak for production; provide at least 32 random characters"}
	}
	logger.Warn("weak session key accepted outside production",
		zap.Int("length", len(key)),
		zap.Bool("placeholder", placeholder))
	return nil
}
