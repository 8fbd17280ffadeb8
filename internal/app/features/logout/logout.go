// internal/app/features/logout/logout.go
package logout

import (
	"net/http"

	"github.com/dalemusser/stratatrips/internal/app/store/adminsessions"
	"github.com/dalemusser/stratatrips/internal/app/system/auth"
	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides the admin logout handler.
type Handler struct {
	sessionMgr *auth.SessionManager
	sessions   *adminsessions.Store
	logger     *zap.Logger
}

// NewHandler creates a new logout Handler.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		sessionMgr: sessionMgr,
		sessions:   adminsessions.New(db),
		logger:     logger,
	}
}

// Routes returns a chi.Router with POST / mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.handleLogout)
	return r
}

// handleLogout ends the server-side session and expires the cookie. Logging
// out without a session still succeeds.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := h.sessionMgr.SessionToken(r)
	a, ok := auth.CurrentAdmin(r)
	if ok {
		token = a.Token
	}
	if token != "" {
		if err := h.sessions.End(r.Context(), token, adminsessions.EndReasonLogout); err != nil {
			h.logger.Warn("failed to end admin session", zap.Error(err))
		}
	}
	if ok {
		h.logger.Info("admin logged out", zap.String("admin_id", a.ID))
	}

	h.sessionMgr.DestroySession(w, r)
	jsonutil.Success(w)
}
