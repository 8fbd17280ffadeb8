package packages

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatrips/internal/app/system/normalize"
	"github.com/dalemusser/stratatrips/internal/app/system/reqval"
	"github.com/dalemusser/stratatrips/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Homepage strip bounds for ?featured=true.
const (
	defaultFeaturedLimit = 6
	maxFeaturedLimit     = 50
)

// ListPublished handles GET /api/packages[?featured=true&limit=N]. The
// featured form returns only featured packages, newest first.
func (h *Handler) ListPublished(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	featured, _ := strconv.ParseBool(normalize.QueryParam(q.Get("featured")))

	var (
		list []models.Package
		err  error
	)
	if featured {
		paging, details := reqval.Page(q, defaultFeaturedLimit, maxFeaturedLimit)
		if details != nil {
			jsonutil.ValidationError(w, details)
			return
		}
		list, err = h.store.ListFeatured(r.Context(), paging.Limit)
	} else {
		list, err = h.store.ListPublished(r.Context())
	}
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}
	jsonutil.OK(w, map[string]any{"packages": list})
}

// GetBySlug handles GET /api/packages/{slug}. Drafts and archived packages
// answer 404 exactly like missing ones.
func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := normalize.Slug(chi.URLParam(r, "slug"))
	pkg, err := h.store.GetBySlug(r.Context(), slug, models.PackageStatusPublished)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}
	if pkg == nil {
		jsonutil.NotFound(w, "Package not found")
		return
	}
	jsonutil.OK(w, map[string]any{"package": pkg})
}

// CreateDraft handles POST /api/packages. Publicly created packages always
// start as unfeatured drafts; an admin publishes them.
func (h *Handler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := jsonutil.Decode(w, r, &req); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	req.Status = models.PackageStatusDraft
	req.IsFeatured = false
	req.canonicalize()
	if details := reqval.Struct(req); details != nil {
		jsonutil.ValidationError(w, details)
		return
	}

	pkg, err := h.store.Create(r.Context(), req.input())
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}
	h.logger.Info("package submitted", zap.String("slug", pkg.Slug), zap.String("id", pkg.ID.Hex()))
	jsonutil.Created(w, map[string]any{"package": pkg})
}
