package packages

import (
	"net/http"

	"github.com/dalemusser/stratatrips/internal/app/system/auth"
	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatrips/internal/app/system/reqval"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminList handles GET /api/admin/packages (every status, newest first).
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListAll(r.Context())
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}
	jsonutil.OK(w, map[string]any{"packages": list})
}

// AdminCreate handles POST /api/admin/packages.
func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := jsonutil.Decode(w, r, &req); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
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
	h.invalidate(r.Context())
	h.logger.Info("package created",
		zap.String("id", pkg.ID.Hex()),
		zap.String("slug", pkg.Slug),
		zap.String("admin", adminEmail(r)))
	jsonutil.Created(w, map[string]any{"package": pkg})
}

// AdminGet handles GET /api/admin/packages/{id}.
func (h *Handler) AdminGet(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.store.GetByID(r.Context(), chi.URLParam(r, "id"))
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

// AdminUpdate handles PATCH /api/admin/packages/{id}. Only fields present in
// the body change.
func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := jsonutil.Decode(w, r, &req); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	req.canonicalize()
	if details := reqval.Struct(req); details != nil {
		jsonutil.ValidationError(w, details)
		return
	}

	pkg, err := h.store.UpdateByID(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}
	h.invalidate(r.Context())
	h.logger.Info("package updated",
		zap.String("id", pkg.ID.Hex()),
		zap.String("status", pkg.Status),
		zap.String("admin", adminEmail(r)))
	jsonutil.OK(w, map[string]any{"package": pkg})
}

// AdminDelete handles DELETE /api/admin/packages/{id}.
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteByID(r.Context(), id); err != nil {
		h.handleStoreError(w, r, err)
		return
	}
	h.invalidate(r.Context())
	h.logger.Info("package deleted", zap.String("id", id), zap.String("admin", adminEmail(r)))
	jsonutil.Success(w)
}

func adminEmail(r *http.Request) string {
	if a, ok := auth.CurrentAdmin(r); ok {
		return a.Email
	}
	return ""
}
