package showcase

import (
	"net/http"
	"strings"

	adventurestore "github.com/dalemusser/stratatrips/internal/app/store/adventures"
	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatrips/internal/app/system/normalize"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type adventureCreateRequest struct {
	Label    string `json:"label" validate:"required,notblank,max=80"`
	ImageURL string `json:"imageUrl" validate:"required,max=2048"`
	Order    int    `json:"order" validate:"min=0"`
	IsActive *bool  `json:"isActive"`
}

type adventureUpdateRequest struct {
	Label    *string `json:"label" validate:"omitnil,notblank,max=80"`
	ImageURL *string `json:"imageUrl" validate:"omitnil,notblank,max=2048"`
	Order    *int    `json:"order" validate:"omitnil,min=0"`
	IsActive *bool   `json:"isActive"`
}

// ListActiveAdventures handles GET /api/adventures.
func (h *Handler) ListActiveAdventures(w http.ResponseWriter, r *http.Request) {
	activities, err := h.adventures.ListActive(r.Context())
	if err != nil {
		h.storeError(w, r, "Activity", err)
		return
	}
	jsonutil.OK(w, map[string]any{"activities": activities})
}

// AdminListAdventures handles GET /api/admin/adventures.
func (h *Handler) AdminListAdventures(w http.ResponseWriter, r *http.Request) {
	activities, err := h.adventures.ListAll(r.Context())
	if err != nil {
		h.storeError(w, r, "Activity", err)
		return
	}
	jsonutil.OK(w, map[string]any{"activities": activities})
}

// AdminCreateAdventure handles POST /api/admin/adventures.
func (h *Handler) AdminCreateAdventure(w http.ResponseWriter, r *http.Request) {
	var req adventureCreateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	activity, err := h.adventures.Create(r.Context(), adventurestore.CreateInput{
		Label:    normalize.Name(req.Label),
		ImageURL: strings.TrimSpace(req.ImageURL),
		Order:    req.Order,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.storeError(w, r, "Activity", err)
		return
	}
	h.logger.Info("adventure activity created", zap.String("id", activity.ID.Hex()))
	jsonutil.Created(w, map[string]any{"activity": activity})
}

// AdminGetAdventure handles GET /api/admin/adventures/{id}.
func (h *Handler) AdminGetAdventure(w http.ResponseWriter, r *http.Request) {
	activity, err := h.adventures.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, r, "Activity", err)
		return
	}
	writeOne(w, "Activity", "activity", activity)
}

// AdminUpdateAdventure handles PATCH /api/admin/adventures/{id}.
func (h *Handler) AdminUpdateAdventure(w http.ResponseWriter, r *http.Request) {
	var req adventureUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	activity, err := h.adventures.UpdateByID(r.Context(), chi.URLParam(r, "id"), adventurestore.UpdateInput{
		Label:    trimmed(req.Label),
		ImageURL: trimmed(req.ImageURL),
		Order:    req.Order,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.storeError(w, r, "Activity", err)
		return
	}
	jsonutil.OK(w, map[string]any{"activity": activity})
}

// AdminDeleteAdventure handles DELETE /api/admin/adventures/{id}.
func (h *Handler) AdminDeleteAdventure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.adventures.DeleteByID(r.Context(), id); err != nil {
		h.storeError(w, r, "Activity", err)
		return
	}
	h.logger.Info("adventure activity deleted", zap.String("id", id))
	jsonutil.Success(w)
}
