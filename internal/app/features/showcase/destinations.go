package showcase

import (
	"net/http"
	"strings"

	destinationstore "github.com/dalemusser/stratatrips/internal/app/store/destinations"
	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatrips/internal/app/system/normalize"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type destinationCreateRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=120"`
	ImageURL string `json:"imageUrl" validate:"required,max=2048"`
	Size     string `json:"size" validate:"omitempty,oneof=small medium large"`
	Order    int    `json:"order" validate:"min=0"`
	IsActive *bool  `json:"isActive"`
}

type destinationUpdateRequest struct {
	Name     *string `json:"name" validate:"omitnil,notblank,max=120"`
	ImageURL *string `json:"imageUrl" validate:"omitnil,notblank,max=2048"`
	Size     *string `json:"size" validate:"omitnil,oneof=small medium large"`
	Order    *int    `json:"order" validate:"omitnil,min=0"`
	IsActive *bool   `json:"isActive"`
}

// ListActiveDestinations handles GET /api/destinations.
func (h *Handler) ListActiveDestinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.destinations.ListActive(r.Context())
	if err != nil {
		h.storeError(w, r, "Destination", err)
		return
	}
	jsonutil.OK(w, map[string]any{"destinations": destinations})
}

// AdminListDestinations handles GET /api/admin/destinations.
func (h *Handler) AdminListDestinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.destinations.ListAll(r.Context())
	if err != nil {
		h.storeError(w, r, "Destination", err)
		return
	}
	jsonutil.OK(w, map[string]any{"destinations": destinations})
}

// AdminCreateDestination handles POST /api/admin/destinations.
func (h *Handler) AdminCreateDestination(w http.ResponseWriter, r *http.Request) {
	var req destinationCreateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	dest, err := h.destinations.Create(r.Context(), destinationstore.CreateInput{
		Name:     normalize.Name(req.Name),
		ImageURL: strings.TrimSpace(req.ImageURL),
		Size:     req.Size,
		Order:    req.Order,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.storeError(w, r, "Destination", err)
		return
	}
	h.invalidateDestinations(r.Context())
	h.logger.Info("destination created", zap.String("id", dest.ID.Hex()), zap.String("name", dest.Name))
	jsonutil.Created(w, map[string]any{"destination": dest})
}

// AdminGetDestination handles GET /api/admin/destinations/{id}.
func (h *Handler) AdminGetDestination(w http.ResponseWriter, r *http.Request) {
	dest, err := h.destinations.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, r, "Destination", err)
		return
	}
	writeOne(w, "Destination", "destination", dest)
}

// AdminUpdateDestination handles PATCH /api/admin/destinations/{id}.
func (h *Handler) AdminUpdateDestination(w http.ResponseWriter, r *http.Request) {
	var req destinationUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	dest, err := h.destinations.UpdateByID(r.Context(), chi.URLParam(r, "id"), destinationstore.UpdateInput{
		Name:     trimmed(req.Name),
		ImageURL: trimmed(req.ImageURL),
		Size:     req.Size,
		Order:    req.Order,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.storeError(w, r, "Destination", err)
		return
	}
	h.invalidateDestinations(r.Context())
	jsonutil.OK(w, map[string]any{"destination": dest})
}

// AdminDeleteDestination handles DELETE /api/admin/destinations/{id}.
func (h *Handler) AdminDeleteDestination(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.destinations.DeleteByID(r.Context(), id); err != nil {
		h.storeError(w, r, "Destination", err)
		return
	}
	h.invalidateDestinations(r.Context())
	h.logger.Info("destination deleted", zap.String("id", id))
	jsonutil.Success(w)
}
