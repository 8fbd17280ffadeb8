// Package enquiries runs the lead funnel: visitors submit the contact or
// package form, the enquiry is stored, and the agency is emailed on a
// best-effort basis. Admins work the leads through their statuses.
package enquiries

import (
	"context"
	"net/http"
	"strings"
	"time"

	enquirystore "github.com/dalemusser/stratatrips/internal/app/store/enquiries"
	"github.com/dalemusser/stratatrips/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatrips/internal/app/system/normalize"
	"github.com/dalemusser/stratatrips/internal/app/system/reqval"
	"github.com/dalemusser/stratatrips/internal/app/system/timeouts"
	"github.com/dalemusser/stratatrips/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Admin list bounds.
const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// Notifier delivers the new-enquiry email.
type Notifier interface {
	EnquiryNotification(ctx context.Context, e *models.Enquiry) error
}

// Handler serves enquiry endpoints.
type Handler struct {
	store    *enquirystore.Store
	notifier Notifier
	logger   *zap.Logger

	// background runs the notification off the request path.
	background func(func())
}

// NewHandler creates an enquiry Handler. notifier may be nil.
func NewHandler(db *mongo.Database, notifier Notifier, logger *zap.Logger) *Handler {
	return &Handler{
		store:      enquirystore.New(db),
		notifier:   notifier,
		logger:     logger,
		background: func(f func()) { go f() },
	}
}

// Routes mounts POST /api/enquiries.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	return r
}

// AdminRoutes mounts /api/admin/enquiries.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.AdminList)
	r.Get("/{id}", h.AdminGet)
	r.Patch("/{id}", h.AdminUpdateStatus)
	r.Delete("/{id}", h.AdminDelete)
	return r
}

type createRequest struct {
	FullName           string `json:"fullName" validate:"required,notblank,max=120"`
	Email              string `json:"email" validate:"required,email,max=254"`
	CountryCode        string `json:"countryCode" validate:"required,max=8"`
	Phone              string `json:"phone" validate:"required,min=6,max=20"`
	PackageID          string `json:"packageId" validate:"omitempty,mongodb"`
	PackageSlug        string `json:"packageSlug" validate:"omitempty,slug,max=120"`
	PreferredStartDate string `json:"preferredStartDate" validate:"max=40"`
	NumberOfAdults     int    `json:"numberOfAdults" validate:"min=1,max=50"`
	NumberOfChildren   int    `json:"numberOfChildren" validate:"min=0,max=50"`
	Budget             string `json:"budget" validate:"max=100"`
	Message            string `json:"message" validate:"max=5000"`
	Source             string `json:"source" validate:"max=60"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted in_progress closed"`
}

// parseStartDate accepts a calendar date or a full RFC 3339 timestamp.
func parseStartDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, true
		}
	}
	return nil, false
}

// Create handles POST /api/enquiries. The response never depends on the
// outcome of the notification email.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := jsonutil.Decode(w, r, &req); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	details := reqval.Struct(req)
	start, ok := parseStartDate(req.PreferredStartDate)
	if !ok {
		if details == nil {
			details = map[string]string{}
		}
		details["preferredStartDate"] = "Must be a date (YYYY-MM-DD)"
	}
	if details != nil {
		jsonutil.ValidationError(w, details)
		return
	}

	in := enquirystore.CreateInput{
		FullName:           normalize.Name(req.FullName),
		Email:              normalize.Email(req.Email),
		CountryCode:        strings.TrimSpace(req.CountryCode),
		Phone:              normalize.Phone(req.Phone),
		PackageSlug:        strings.TrimSpace(req.PackageSlug),
		PreferredStartDate: start,
		NumberOfAdults:     req.NumberOfAdults,
		NumberOfChildren:   req.NumberOfChildren,
		Budget:             htmlsanitize.StripTags(req.Budget),
		Message:            htmlsanitize.StripTags(req.Message),
		Source:             htmlsanitize.StripTags(req.Source),
	}
	if req.PackageID != "" {
		if oid, err := primitive.ObjectIDFromHex(req.PackageID); err == nil {
			in.PackageID = &oid
		}
	}

	enq, err := h.store.Create(r.Context(), in)
	if err != nil {
		jsonutil.StoreError(w, r, h.logger, "Enquiry", err)
		return
	}
	h.logger.Info("enquiry received",
		zap.String("id", enq.ID.Hex()),
		zap.String("package_slug", enq.PackageSlug),
		zap.String("source", enq.Source))

	h.notify(enq)
	jsonutil.Created(w, map[string]any{"enquiry": enq})
}

// notify sends the agency email detached from the request context, so a
// client disconnect does not cancel it.
func (h *Handler) notify(enq *models.Enquiry) {
	if h.notifier == nil {
		return
	}
	h.background(func() {
		ctx, cancel := timeouts.WithTimeout(context.Background(), timeouts.Mail(), h.logger, "enquiry notification")
		defer cancel()
		if err := h.notifier.EnquiryNotification(ctx, enq); err != nil {
			h.logger.Warn("enquiry notification failed",
				zap.String("id", enq.ID.Hex()),
				zap.Error(err))
		}
	})
}

// AdminList handles GET /api/admin/enquiries[?status=&page=&limit=].
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := normalize.Status(q.Get("status"))
	paging, details := reqval.Page(q, defaultListLimit, maxListLimit)
	if msg := reqval.Var(status, "omitempty,oneof=new contacted in_progress closed"); msg != "" {
		if details == nil {
			details = map[string]string{}
		}
		details["status"] = msg
	}
	if details != nil {
		jsonutil.ValidationError(w, details)
		return
	}
	list, err := h.store.List(r.Context(), status, paging.Page, paging.Limit)
	if err != nil {
		jsonutil.StoreError(w, r, h.logger, "Enquiry", err)
		return
	}
	jsonutil.OK(w, map[string]any{"enquiries": list, "page": paging.Page, "limit": paging.Limit})
}

// AdminGet handles GET /api/admin/enquiries/{id}.
func (h *Handler) AdminGet(w http.ResponseWriter, r *http.Request) {
	enq, err := h.store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.StoreError(w, r, h.logger, "Enquiry", err)
		return
	}
	if enq == nil {
		jsonutil.NotFound(w, "Enquiry not found")
		return
	}
	jsonutil.OK(w, map[string]any{"enquiry": enq})
}

// AdminUpdateStatus handles PATCH /api/admin/enquiries/{id} with {"status": ...}.
func (h *Handler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := jsonutil.Decode(w, r, &req); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	req.Status = normalize.Status(req.Status)
	if details := reqval.Struct(req); details != nil {
		jsonutil.ValidationError(w, details)
		return
	}

	enq, err := h.store.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		jsonutil.StoreError(w, r, h.logger, "Enquiry", err)
		return
	}
	h.logger.Info("enquiry status changed", zap.String("id", enq.ID.Hex()), zap.String("status", enq.Status))
	jsonutil.OK(w, map[string]any{"enquiry": enq})
}

// AdminDelete handles DELETE /api/admin/enquiries/{id}.
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteByID(r.Context(), id); err != nil {
		jsonutil.StoreError(w, r, h.logger, "Enquiry", err)
		return
	}
	h.logger.Info("enquiry deleted", zap.String("id", id))
	jsonutil.Success(w)
}
