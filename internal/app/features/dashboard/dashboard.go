// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/stratatrips/internal/app/store/adminsessions"
	"github.com/dalemusser/stratatrips/internal/app/store/adminusers"
	chatstore "github.com/dalemusser/stratatrips/internal/app/store/chats"
	enquirystore "github.com/dalemusser/stratatrips/internal/app/store/enquiries"
	packagestore "github.com/dalemusser/stratatrips/internal/app/store/packages"
	"github.com/dalemusser/stratatrips/internal/app/system/capabilities"
	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatrips/internal/app/system/timeouts"
	"github.com/dalemusser/stratatrips/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides dashboard handlers.
type Handler struct {
	packages  *packagestore.Store
	enquiries *enquirystore.Store
	chats     *chatstore.Store
	sessions  *adminsessions.Store
	admins    *adminusers.Store
	caps      capabilities.Set
	logger    *zap.Logger
}

// NewHandler creates a new dashboard Handler.
func NewHandler(db *mongo.Database, caps capabilities.Set, logger *zap.Logger) *Handler {
	return &Handler{
		packages:  packagestore.New(db),
		enquiries: enquirystore.New(db),
		chats:     chatstore.New(db),
		sessions:  adminsessions.New(db),
		admins:    adminusers.New(db),
		caps:      caps,
		logger:    logger,
	}
}

// Routes returns a chi.Router with dashboard routes mounted. Callers mount it
// behind RequireAdmin.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.overview)
	r.Get("/sessions", h.listSessions)
	r.Delete("/sessions/{id}", h.endSession)
	return r
}

// Overview is the GET /api/admin/dashboard response.
type Overview struct {
	Packages       map[string]int64 `json:"packages"`
	Enquiries      map[string]int64 `json:"enquiries"`
	Leads          int64            `json:"leads"`
	ActiveSessions int64            `json:"activeSessions"`
	Capabilities   capabilities.Set `json:"capabilities"`
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pkgCounts, err := h.packages.CountByStatus(ctx)
	if err != nil {
		h.fail(w, "count packages", err)
		return
	}
	enqCounts, err := h.enquiries.CountByStatus(ctx)
	if err != nil {
		h.fail(w, "count enquiries", err)
		return
	}
	leads, err := h.chats.CountLeads(ctx)
	if err != nil {
		h.fail(w, "count leads", err)
		return
	}
	active, err := h.sessions.CountActive(ctx)
	if err != nil {
		h.fail(w, "count sessions", err)
		return
	}

	jsonutil.OK(w, Overview{
		Packages:       byStatus(pkgCounts, models.AllPackageStatuses()),
		Enquiries:      byStatus(enqCounts, models.AllEnquiryStatuses()),
		Leads:          leads,
		ActiveSessions: active,
		Capabilities:   h.caps,
	})
}

func (h *Handler) fail(w http.ResponseWriter, what string, err error) {
	h.logger.Error("dashboard: "+what, zap.Error(err))
	jsonutil.InternalError(w, "Internal server error")
}

// byStatus reports every known status, zero when absent, plus a total.
// Unknown statuses found in the data still count towards the total.
func byStatus(counts map[string]int64, statuses []string) map[string]int64 {
	out := make(map[string]int64, len(statuses)+1)
	for _, s := range statuses {
		out[s] = 0
	}
	var total int64
	for s, n := range counts {
		if _, known := out[s]; known {
			out[s] = n
		}
		total += n
	}
	out["total"] = total
	return out
}
