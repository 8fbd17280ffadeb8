// Package packages serves the trip catalog: the public listing and detail
// pages plus admin CRUD.
package packages

import (
	"context"
	"net/http"

	packagestore "github.com/dalemusser/stratatrips/internal/app/store/packages"
	"github.com/dalemusser/stratatrips/internal/app/system/catalogcache"
	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Invalidator drops cached catalog snapshots after a write.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string)
}

// Handler serves package endpoints.
type Handler struct {
	store  *packagestore.Store
	cache  Invalidator
	logger *zap.Logger
}

// NewHandler creates a package Handler. cache may be nil.
func NewHandler(db *mongo.Database, cache Invalidator, logger *zap.Logger) *Handler {
	return &Handler{
		store:  packagestore.New(db),
		cache:  cache,
		logger: logger,
	}
}

// Routes mounts the public endpoints under /api/packages.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListPublished)
	r.Post("/", h.CreateDraft)
	r.Get("/{slug}", h.GetBySlug)
	return r
}

// AdminRoutes mounts the admin endpoints under /api/admin/packages.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.AdminList)
	r.Post("/", h.AdminCreate)
	r.Get("/{id}", h.AdminGet)
	r.Patch("/{id}", h.AdminUpdate)
	r.Delete("/{id}", h.AdminDelete)
	return r
}

func (h *Handler) invalidate(ctx context.Context) {
	if h.cache != nil {
		h.cache.Invalidate(ctx, catalogcache.KeyPackages)
	}
}

func (h *Handler) handleStoreError(w http.ResponseWriter, r *http.Request, err error) {
	jsonutil.StoreError(w, r, h.logger, "Package", err)
}
