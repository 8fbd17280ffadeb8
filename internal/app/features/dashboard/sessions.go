// internal/app/features/dashboard/sessions.go
package dashboard

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/stratatrips/internal/app/store/adminsessions"
	"github.com/dalemusser/stratatrips/internal/app/system/auth"
	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const maxListedSessions = 100

// SessionView is one active admin session.
type SessionView struct {
	ID         string    `json:"id"`
	AdminID    string    `json:"adminId"`
	AdminEmail string    `json:"adminEmail"`
	IPAddress  string    `json:"ipAddress"`
	Device     string    `json:"device"`
	LoginAt    time.Time `json:"loginAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
	Current    bool      `json:"current"`
}

// listSessions handles GET /api/admin/dashboard/sessions.
func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	current, _ := auth.CurrentAdmin(r)

	active, err := h.sessions.ListActive(ctx, maxListedSessions)
	if err != nil {
		h.fail(w, "list sessions", err)
		return
	}

	emails := make(map[primitive.ObjectID]string)
	views := make([]SessionView, 0, len(active))
	for _, sess := range active {
		email, seen := emails[sess.AdminID]
		if !seen {
			if a, err := h.admins.GetByID(ctx, sess.AdminID.Hex()); err == nil && a != nil {
				email = a.Email
			}
			emails[sess.AdminID] = email
		}
		views = append(views, SessionView{
			ID:         sess.ID.Hex(),
			AdminID:    sess.AdminID.Hex(),
			AdminEmail: email,
			IPAddress:  sess.IPAddress,
			Device:     parseUserAgent(sess.UserAgent),
			LoginAt:    sess.LoginAt,
			ExpiresAt:  sess.ExpiresAt,
			Current:    current != nil && sess.Token == current.Token,
		})
	}

	jsonutil.OK(w, map[string]any{"sessions": views})
}

// endSession handles DELETE /api/admin/dashboard/sessions/{id}. An admin
// cannot end their own session here; that is what logout is for.
func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	sess, err := h.sessions.GetByID(ctx, id)
	if err != nil {
		jsonutil.StoreError(w, r, h.logger, "Session", err)
		return
	}
	if sess == nil {
		jsonutil.NotFound(w, "Session not found")
		return
	}

	current, _ := auth.CurrentAdmin(r)
	if current != nil && sess.Token == current.Token {
		jsonutil.BadRequest(w, "Cannot end your own session; log out instead")
		return
	}

	if err := h.sessions.End(ctx, sess.Token, adminsessions.EndReasonRevoked); err != nil {
		h.fail(w, "end session", err)
		return
	}

	fields := []zap.Field{
		zap.String("session_id", id),
		zap.String("session_admin_id", sess.AdminID.Hex()),
	}
	if current != nil {
		fields = append(fields, zap.String("admin_id", current.ID))
	}
	h.logger.Info("admin session revoked", fields...)
	jsonutil.Success(w)
}

// parseUserAgent reduces a user agent to a device family.
func parseUserAgent(ua string) string {
	switch {
	case ua == "":
		return "Unknown"
	case strings.Contains(ua, "iPhone"):
		return "iPhone"
	case strings.Contains(ua, "iPad"):
		return "iPad"
	case strings.Contains(ua, "Android"):
		return "Android"
	case strings.Contains(ua, "Mac OS"):
		return "Mac"
	case strings.Contains(ua, "Windows"):
		return "Windows"
	case strings.Contains(ua, "Linux"):
		return "Linux"
	default:
		return "Browser"
	}
}
