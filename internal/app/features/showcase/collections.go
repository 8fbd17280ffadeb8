package showcase

import (
	"net/http"
	"strings"

	homecollectionstore "github.com/dalemusser/stratatrips/internal/app/store/homecollections"
	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatrips/internal/app/system/normalize"
	"github.com/dalemusser/stratatrips/internal/app/system/reqval"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const categoryTag = "omitempty,oneof=top offbeat"

type collectionCreateRequest struct {
	Category string `json:"category" validate:"required,oneof=top offbeat"`
	Badge    string `json:"badge" validate:"max=40"`
	Title    string `json:"title" validate:"required,notblank,max=120"`
	Subtitle string `json:"subtitle" validate:"max=200"`
	ImageURL string `json:"imageUrl" validate:"required,max=2048"`
	Order    int    `json:"order" validate:"min=0"`
	IsActive *bool  `json:"isActive"`
}

type collectionUpdateRequest struct {
	Category *string `json:"category" validate:"omitnil,oneof=top offbeat"`
	Badge    *string `json:"badge" validate:"omitnil,max=40"`
	Title    *string `json:"title" validate:"omitnil,notblank,max=120"`
	Subtitle *string `json:"subtitle" validate:"omitnil,max=200"`
	ImageURL *string `json:"imageUrl" validate:"omitnil,notblank,max=2048"`
	Order    *int    `json:"order" validate:"omitnil,min=0"`
	IsActive *bool   `json:"isActive"`
}

// categoryParam reads ?category= and reports a validation failure itself.
func categoryParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	category := normalize.QueryParam(r.URL.Query().Get("category"))
	if msg := reqval.Var(category, categoryTag); msg != "" {
		jsonutil.ValidationError(w, map[string]string{"category": msg})
		return "", false
	}
	return category, true
}

// ListActiveCollections handles GET /api/home-collections[?category=top|offbeat].
func (h *Handler) ListActiveCollections(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryParam(w, r)
	if !ok {
		return
	}
	items, err := h.collections.ListActive(r.Context(), category)
	if err != nil {
		h.storeError(w, r, "Collection item", err)
		return
	}
	jsonutil.OK(w, map[string]any{"items": items})
}

// AdminListCollections handles GET /api/admin/home-collections.
func (h *Handler) AdminListCollections(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryParam(w, r)
	if !ok {
		return
	}
	items, err := h.collections.ListAll(r.Context(), category)
	if err != nil {
		h.storeError(w, r, "Collection item", err)
		return
	}
	jsonutil.OK(w, map[string]any{"items": items})
}

// AdminCreateCollection handles POST /api/admin/home-collections.
func (h *Handler) AdminCreateCollection(w http.ResponseWriter, r *http.Request) {
	var req collectionCreateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	item, err := h.collections.Create(r.Context(), homecollectionstore.CreateInput{
		Category: req.Category,
		Badge:    strings.TrimSpace(req.Badge),
		Title:    normalize.Name(req.Title),
		Subtitle: strings.TrimSpace(req.Subtitle),
		ImageURL: strings.TrimSpace(req.ImageURL),
		Order:    req.Order,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.storeError(w, r, "Collection item", err)
		return
	}
	h.logger.Info("collection item created", zap.String("id", item.ID.Hex()), zap.String("category", item.Category))
	jsonutil.Created(w, map[string]any{"item": item})
}

// AdminGetCollection handles GET /api/admin/home-collections/{id}.
func (h *Handler) AdminGetCollection(w http.ResponseWriter, r *http.Request) {
	item, err := h.collections.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, r, "Collection item", err)
		return
	}
	writeOne(w, "Collection item", "item", item)
}

// AdminUpdateCollection handles PATCH /api/admin/home-collections/{id}.
func (h *Handler) AdminUpdateCollection(w http.ResponseWriter, r *http.Request) {
	var req collectionUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	item, err := h.collections.UpdateByID(r.Context(), chi.URLParam(r, "id"), homecollectionstore.UpdateInput{
		Category: req.Category,
		Badge:    trimmed(req.Badge),
		Title:    trimmed(req.Title),
		Subtitle: trimmed(req.Subtitle),
		ImageURL: trimmed(req.ImageURL),
		Order:    req.Order,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.storeError(w, r, "Collection item", err)
		return
	}
	jsonutil.OK(w, map[string]any{"item": item})
}

// AdminDeleteCollection handles DELETE /api/admin/home-collections/{id}.
func (h *Handler) AdminDeleteCollection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.collections.DeleteByID(r.Context(), id); err != nil {
		h.storeError(w, r, "Collection item", err)
		return
	}
	h.logger.Info("collection item deleted", zap.String("id", id))
	jsonutil.Success(w)
}
