// internal/app/features/login/login.go
package login

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/stratatrips/internal/app/store/adminsessions"
	"github.com/dalemusser/stratatrips/internal/app/store/adminusers"
	"github.com/dalemusser/stratatrips/internal/app/store/ratelimit"
	"github.com/dalemusser/stratatrips/internal/app/system/auth"
	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatrips/internal/app/system/network"
	"github.com/dalemusser/stratatrips/internal/app/system/reqval"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrorInvalidCredentials is the body sent for every failed password check.
const ErrorInvalidCredentials = "INVALID_CREDENTIALS"

// Handler provides admin login and session handlers.
type Handler struct {
	admins     *adminusers.Store
	sessions   *adminsessions.Store
	limiter    *ratelimit.Store // nil disables lockout
	sessionMgr *auth.SessionManager
	logger     *zap.Logger
}

// NewHandler creates a new login Handler.
// limiter can be nil to disable login lockout.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, limiter *ratelimit.Store, logger *zap.Logger) *Handler {
	return &Handler{
		admins:     adminusers.New(db),
		sessions:   adminsessions.New(db),
		limiter:    limiter,
		sessionMgr: sessionMgr,
		logger:     logger,
	}
}

// Routes returns a chi.Router with POST / mounted. It is mounted outside the
// CSRF group since there is no session to protect before login.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.Login)
	return r
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=1024"`
}

// AdminView is the admin as returned to the client.
type AdminView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Login handles POST /api/admin/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := jsonutil.Decode(w, r, &req); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	if details := reqval.Struct(req); details != nil {
		jsonutil.ValidationError(w, details)
		return
	}

	ctx := r.Context()
	ip := network.ClientIP(r)

	if h.limiter != nil {
		allowed, _, lockedUntil := h.limiter.CheckAllowed(ctx, req.Email)
		if !allowed {
			h.logger.Warn("admin login rate limited", zap.String("email", req.Email), zap.String("ip", ip))
			if lockedUntil != nil {
				secs := int(math.Ceil(time.Until(*lockedUntil).Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
			}
			jsonutil.TooManyRequests(w, "Too many failed login attempts. Please try again later.")
			return
		}
	}

	admin, err := h.admins.Authenticate(ctx, req.Email, req.Password)
	if errors.Is(err, adminusers.ErrInvalidCredentials) {
		if h.limiter != nil {
			if locked, _ := h.limiter.RecordFailure(ctx, req.Email); locked {
				h.logger.Warn("admin login locked out", zap.String("email", req.Email), zap.String("ip", ip))
			}
		}
		h.logger.Info("admin login failed", zap.String("email", req.Email), zap.String("ip", ip))
		jsonutil.Unauthorized(w, ErrorInvalidCredentials)
		return
	}
	if err != nil {
		h.logger.Error("admin login lookup failed", zap.Error(err))
		jsonutil.InternalError(w, "Internal server error")
		return
	}

	if h.limiter != nil {
		if err := h.limiter.ClearOnSuccess(ctx, req.Email); err != nil {
			h.logger.Warn("failed to clear login attempts", zap.Error(err))
		}
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		h.logger.Error("generate session token", zap.Error(err))
		jsonutil.InternalError(w, "Internal server error")
		return
	}
	if _, err := h.sessions.Create(ctx, token, admin.ID, ip, r.UserAgent(), h.sessionMgr.MaxAge()); err != nil {
		h.logger.Error("store admin session", zap.Error(err))
		jsonutil.InternalError(w, "Internal server error")
		return
	}
	if err := h.sessionMgr.CreateSession(w, r, token); err != nil {
		h.logger.Error("write admin session cookie", zap.Error(err))
		jsonutil.InternalError(w, "Internal server error")
		return
	}
	if err := h.admins.TouchLogin(ctx, admin.ID); err != nil {
		h.logger.Warn("failed to record last login", zap.Error(err))
	}

	h.logger.Info("admin logged in", zap.String("admin_id", admin.ID.Hex()), zap.String("ip", ip))
	jsonutil.OK(w, map[string]any{
		"admin": AdminView{ID: admin.ID.Hex(), Email: admin.Email, Role: admin.Role},
	})
}

// Session handles GET /api/admin/session. It runs behind RequireAdmin and the
// CSRF middleware, and hands the client the token for later mutations.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	a, ok := auth.CurrentAdmin(r)
	if !ok {
		jsonutil.Unauthorized(w, "Unauthorized")
		return
	}
	jsonutil.OK(w, map[string]any{
		"admin":     AdminView{ID: a.ID, Email: a.Email, Role: a.Role},
		"csrfToken": csrf.Token(r),
	})
}
