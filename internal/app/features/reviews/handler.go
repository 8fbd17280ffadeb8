// Package reviews serves traveller testimonials. Reviews are entered by
// admins; the public endpoint only ever shows approved ones.
package reviews

import (
	"net/http"
	"strconv"

	reviewstore "github.com/dalemusser/stratatrips/internal/app/store/reviews"
	"github.com/dalemusser/stratatrips/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatrips/internal/app/system/normalize"
	"github.com/dalemusser/stratatrips/internal/app/system/reqval"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves review endpoints.
type Handler struct {
	store  *reviewstore.Store
	logger *zap.Logger
}

// NewHandler creates a review Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{store: reviewstore.New(db), logger: logger}
}

// Routes mounts GET /api/reviews.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListApproved)
	return r
}

// AdminRoutes mounts /api/admin/reviews.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.AdminList)
	r.Post("/", h.AdminCreate)
	r.Get("/{id}", h.AdminGet)
	r.Patch("/{id}", h.AdminUpdate)
	r.Delete("/{id}", h.AdminDelete)
	return r
}

type createRequest struct {
	FullName   string `json:"fullName" validate:"required,notblank,max=120"`
	Location   string `json:"location" validate:"max=120"`
	Rating     int    `json:"rating" validate:"min=1,max=5"`
	Comment    string `json:"comment" validate:"required,notblank,max=2000"`
	PackageID  string `json:"packageId" validate:"omitempty,mongodb"`
	IsFeatured bool   `json:"isFeatured"`
	Status     string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}

type updateRequest struct {
	FullName   *string `json:"fullName" validate:"omitnil,notblank,max=120"`
	Location   *string `json:"location" validate:"omitnil,max=120"`
	Rating     *int    `json:"rating" validate:"omitnil,min=1,max=5"`
	Comment    *string `json:"comment" validate:"omitnil,notblank,max=2000"`
	PackageID  *string `json:"packageId" validate:"omitnil,mongodb"`
	IsFeatured *bool   `json:"isFeatured"`
	Status     *string `json:"status" validate:"omitnil,oneof=pending approved rejected"`
}

// ListApproved handles GET /api/reviews[?featured=true].
func (h *Handler) ListApproved(w http.ResponseWriter, r *http.Request) {
	featured, _ := strconv.ParseBool(normalize.QueryParam(r.URL.Query().Get("featured")))
	list, err := h.store.ListApproved(r.Context(), featured)
	if err != nil {
		jsonutil.StoreError(w, r, h.logger, "Review", err)
		return
	}
	jsonutil.OK(w, map[string]any{"reviews": list})
}

// AdminList handles GET /api/admin/reviews.
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListAll(r.Context())
	if err != nil {
		jsonutil.StoreError(w, r, h.logger, "Review", err)
		return
	}
	jsonutil.OK(w, map[string]any{"reviews": list})
}

// AdminCreate handles POST /api/admin/reviews.
func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := jsonutil.Decode(w, r, &req); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	if details := reqval.Struct(req); details != nil {
		jsonutil.ValidationError(w, details)
		return
	}

	review, err := h.store.Create(r.Context(), reviewstore.CreateInput{
		FullName:   normalize.Name(req.FullName),
		Location:   normalize.Name(req.Location),
		Rating:     req.Rating,
		Comment:    htmlsanitize.StripTags(req.Comment),
		PackageID:  objectID(req.PackageID),
		IsFeatured: req.IsFeatured,
		Status:     req.Status,
	})
	if err != nil {
		jsonutil.StoreError(w, r, h.logger, "Review", err)
		return
	}
	h.logger.Info("review created", zap.String("id", review.ID.Hex()), zap.String("status", review.Status))
	jsonutil.Created(w, map[string]any{"review": review})
}

// AdminGet handles GET /api/admin/reviews/{id}.
func (h *Handler) AdminGet(w http.ResponseWriter, r *http.Request) {
	review, err := h.store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.StoreError(w, r, h.logger, "Review", err)
		return
	}
	if review == nil {
		jsonutil.NotFound(w, "Review not found")
		return
	}
	jsonutil.OK(w, map[string]any{"review": review})
}

// AdminUpdate handles PATCH /api/admin/reviews/{id}.
func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := jsonutil.Decode(w, r, &req); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	if details := reqval.Struct(req); details != nil {
		jsonutil.ValidationError(w, details)
		return
	}

	in := reviewstore.UpdateInput{
		Rating:     req.Rating,
		IsFeatured: req.IsFeatured,
		Status:     req.Status,
	}
	if req.FullName != nil {
		v := normalize.Name(*req.FullName)
		in.FullName = &v
	}
	if req.Location != nil {
		v := normalize.Name(*req.Location)
		in.Location = &v
	}
	if req.Comment != nil {
		v := htmlsanitize.StripTags(*req.Comment)
		in.Comment = &v
	}
	if req.PackageID != nil {
		in.PackageID = objectID(*req.PackageID)
	}

	review, err := h.store.UpdateByID(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		jsonutil.StoreError(w, r, h.logger, "Review", err)
		return
	}
	h.logger.Info("review updated", zap.String("id", review.ID.Hex()), zap.String("status", review.Status))
	jsonutil.OK(w, map[string]any{"review": review})
}

// AdminDelete handles DELETE /api/admin/reviews/{id}.
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteByID(r.Context(), id); err != nil {
		jsonutil.StoreError(w, r, h.logger, "Review", err)
		return
	}
	h.logger.Info("review deleted", zap.String("id", id))
	jsonutil.Success(w)
}

// objectID converts an already-validated hex id; empty yields nil.
func objectID(hex string) *primitive.ObjectID {
	if hex == "" {
		return nil
	}
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil
	}
	return &oid
}
