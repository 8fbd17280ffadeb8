package showcase

import (
	"net/http"
	"strings"

	partnerhotelstore "github.com/dalemusser/stratatrips/internal/app/store/partnerhotels"
	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatrips/internal/app/system/normalize"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type hotelCreateRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=120"`
	ImageURL string `json:"imageUrl" validate:"required,max=2048"`
	Order    int    `json:"order" validate:"min=0"`
	IsActive *bool  `json:"isActive"`
}

type hotelUpdateRequest struct {
	Name     *string `json:"name" validate:"omitnil,notblank,max=120"`
	ImageURL *string `json:"imageUrl" validate:"omitnil,notblank,max=2048"`
	Order    *int    `json:"order" validate:"omitnil,min=0"`
	IsActive *bool   `json:"isActive"`
}

// ListActiveHotels handles GET /api/partner-hotels.
func (h *Handler) ListActiveHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.hotels.ListActive(r.Context())
	if err != nil {
		h.storeError(w, r, "Hotel", err)
		return
	}
	jsonutil.OK(w, map[string]any{"hotels": hotels})
}

// AdminListHotels handles GET /api/admin/partner-hotels.
func (h *Handler) AdminListHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.hotels.ListAll(r.Context())
	if err != nil {
		h.storeError(w, r, "Hotel", err)
		return
	}
	jsonutil.OK(w, map[string]any{"hotels": hotels})
}

// AdminCreateHotel handles POST /api/admin/partner-hotels.
func (h *Handler) AdminCreateHotel(w http.ResponseWriter, r *http.Request) {
	var req hotelCreateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	hotel, err := h.hotels.Create(r.Context(), partnerhotelstore.CreateInput{
		Name:     normalize.Name(req.Name),
		ImageURL: strings.TrimSpace(req.ImageURL),
		Order:    req.Order,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.storeError(w, r, "Hotel", err)
		return
	}
	h.logger.Info("partner hotel created", zap.String("id", hotel.ID.Hex()))
	jsonutil.Created(w, map[string]any{"hotel": hotel})
}

// AdminGetHotel handles GET /api/admin/partner-hotels/{id}.
func (h *Handler) AdminGetHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.hotels.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, r, "Hotel", err)
		return
	}
	writeOne(w, "Hotel", "hotel", hotel)
}

// AdminUpdateHotel handles PATCH /api/admin/partner-hotels/{id}.
func (h *Handler) AdminUpdateHotel(w http.ResponseWriter, r *http.Request) {
	var req hotelUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	hotel, err := h.hotels.UpdateByID(r.Context(), chi.URLParam(r, "id"), partnerhotelstore.UpdateInput{
		Name:     trimmed(req.Name),
		ImageURL: trimmed(req.ImageURL),
		Order:    req.Order,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.storeError(w, r, "Hotel", err)
		return
	}
	jsonutil.OK(w, map[string]any{"hotel": hotel})
}

// AdminDeleteHotel handles DELETE /api/admin/partner-hotels/{id}.
func (h *Handler) AdminDeleteHotel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.hotels.DeleteByID(r.Context(), id); err != nil {
		h.storeError(w, r, "Hotel", err)
		return
	}
	h.logger.Info("partner hotel deleted", zap.String("id", id))
	jsonutil.Success(w)
}
