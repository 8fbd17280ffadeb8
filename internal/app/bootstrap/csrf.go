// internal/app/bootstrap/csrf.go
package bootstrap

import (
	"net/http"
	"net/url"

	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// csrfHeader carries the token returned by GET /api/admin/session.
const csrfHeader = "X-CSRF-Token"

// newCSRF builds the gorilla/csrf middleware for the admin API. Safe methods
// pass through and receive a token; mutations must echo it in csrfHeader.
// Cookie name is "stratatrips_csrf" to avoid collisions with other services
// on the same domain.
func newCSRF(appCfg AppConfig, secure bool, logger *zap.Logger) func(http.Handler) http.Handler {
	opts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("stratatrips_csrf"),
		csrf.RequestHeader(csrfHeader),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			jsonutil.Forbidden(w, "CSRF token invalid or missing")
		})),
	}
	if origins := trustedOrigins(appCfg.BaseURL, secure); len(origins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(origins))
	}
	if appCfg.SessionDomain != "" {
		opts = append(opts, csrf.Domain(appCfg.SessionDomain))
	}
	protect := csrf.Protect([]byte(appCfg.CSRFKey), opts...)

	return func(next http.Handler) http.Handler {
		h := protect(next)
		if secure {
			return h
		}
		// Without TLS the Referer/Origin checks must be told the request is plaintext.
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(req))
		})
	}
}

// trustedOrigins lists the hosts allowed to send admin mutations besides the
// API's own host: the front end at baseURL and, outside production, the
// usual local dev servers.
func trustedOrigins(baseURL string, secure bool) []string {
	var origins []string
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		origins = append(origins, u.Host)
	}
	if !secure {
		origins = append(origins,
			"localhost:8080",
			"localhost:3000",
			"localhost:5173",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
			"127.0.0.1:5173",
		)
	}
	return origins
}
