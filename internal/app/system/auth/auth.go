package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// The cookie carries only the opaque token. Who the token belongs to, and
// whether it is still valid, lives in the admin_sessions collection.
const sessionTokenKey = "session_token"

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the signed admin session cookie and the middleware that
// resolves it to an admin on every request.
type SessionManager struct {
	store   *sessions.CookieStore
	logger  *zap.Logger
	name    string
	maxAge  time.Duration
	fetcher AdminFetcher
}

// NewSessionManager builds the cookie store for admin sessions. An empty name
// becomes "stratatrips-admin" and a non-positive maxAge becomes 12h. With
// secure set the key must be at least 32 characters and not a placeholder,
// and cookies are marked Secure.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if err := checkSigningKey(sessionKey, secure, logger); err != nil {
		return nil, err
	}

	if name == "" {
		name = "stratatrips-admin"
	}
	if maxAge <= 0 {
		maxAge = 12 * time.Hour
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(int(maxAge.Seconds()))

	logger.Info("session manager initialized",
		zap.Bool("secure", secure),
		zap.String("name", name),
		zap.String("domain", domain),
		zap.Duration("max_age", maxAge))

	return &SessionManager{
		store:  store,
		logger: logger,
		name:   name,
		maxAge: maxAge,
	}, nil
}

// SessionConfigError is returned when session configuration is invalid.
type SessionConfigError struct {
	Message string
}

func (e *SessionConfigError) Error() string {
	return e.Message
}

// MaxAge is how long a new admin session stays valid.
func (sm *SessionManager) MaxAge() time.Duration {
	return sm.maxAge
}

// SetAdminFetcher sets the AdminFetcher used by LoadSessionAdmin. It must be
// called after database initialization.
func (sm *SessionManager) SetAdminFetcher(f AdminFetcher) {
	sm.fetcher = f
}

/*─────────────────────────────────────────────────────────────────────────────*
| AdminFetcher interface                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// AdminFetcher resolves a session token to the admin that owns it.
// Implementations return (nil, nil) when the session ended or expired, or when
// the admin is missing or inactive. An error means the answer is unknown.
type AdminFetcher interface {
	FetchAdmin(ctx context.Context, token string) (*SessionAdmin, error)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Current-Admin helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionAdmin is the authenticated admin in the request context.
type SessionAdmin struct {
	ID    string
	Email string
	Role  string
	Token string
}

type ctxKey string

const currentAdminKey ctxKey = "currentAdmin"

// CurrentAdmin returns the admin & "found?" flag from the request context.
func CurrentAdmin(r *http.Request) (*SessionAdmin, bool) {
	a, ok := r.Context().Value(currentAdminKey).(*SessionAdmin)
	return a, ok
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// LoadSessionAdmin returns middleware that injects the admin into context when
// the cookie carries a token the fetcher still accepts. A token the fetcher
// rejects is removed from the cookie. When the fetcher fails the request
// continues without an admin and the cookie is kept for the next request.
func (sm *SessionManager) LoadSessionAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			sm.logCookieError(r, err)
		}

		token := getString(sess, sessionTokenKey)
		if token != "" && sm.fetcher != nil {
			a, err := sm.fetcher.FetchAdmin(r.Context(), token)
			switch {
			case err != nil:
				sm.logger.Warn("admin session lookup failed; cookie kept",
					zap.String("path", r.URL.Path),
					zap.Error(err))
			case a != nil:
				r = withAdmin(r, a)
			default:
				sm.logger.Info("admin session invalidated: token ended, expired or admin inactive",
					zap.String("path", r.URL.Path))
				delete(sess.Values, sessionTokenKey)
				sess.Options.MaxAge = -1
				_ = sess.Save(r, w) // Best effort to clear
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin returns middleware that answers 401 JSON unless an admin is in context.
func (sm *SessionManager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentAdmin(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		jsonutil.Unauthorized(w, "Unauthorized")
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Helpers                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func withAdmin(r *http.Request, a *SessionAdmin) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentAdminKey, a))
}

// WithTestAdmin injects a SessionAdmin into the request context for testing.
func WithTestAdmin(r *http.Request, a *SessionAdmin) *http.Request {
	return withAdmin(r, a)
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if s == nil {
		return ""
	}
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

/*─────────────────────────────────────────────────────────────────────────────*
| Session Management                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// CreateSession writes token into the admin cookie. The caller is
// responsible for persisting the matching server-side session record.
func (sm *SessionManager) CreateSession(w http.ResponseWriter, r *http.Request, token string) error {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		sess, _ = sm.store.New(r, sm.name)
	}
	// Rotate: never reuse whatever was in the cookie before login.
	sess.Values = map[any]any{sessionTokenKey: token}
	sess.Options.MaxAge = int(sm.maxAge.Seconds())
	return sess.Save(r, w)
}

// SessionToken returns the token stored in the request's cookie, if any.
func (sm *SessionManager) SessionToken(r *http.Request) string {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		return ""
	}
	return getString(sess, sessionTokenKey)
}

// GenerateSessionToken generates a random URL-safe token for session tracking.
func GenerateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DestroySession expires the admin cookie.
func (sm *SessionManager) DestroySession(w http.ResponseWriter, r *http.Request) {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		sess, _ = sm.store.New(r, sm.name)
	}
	delete(sess.Values, sessionTokenKey)
	sess.Options.MaxAge = -1
	_ = sess.Save(r, w)
}
