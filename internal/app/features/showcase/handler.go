// Package showcase serves the homepage content blocks: the top and offbeat
// collection rows, partner hotels, adventure tiles and popular destinations.
// Public endpoints return active items in display order; admins get full CRUD.
package showcase

import (
	"context"
	"net/http"
	"strings"

	adventurestore "github.com/dalemusser/stratatrips/internal/app/store/adventures"
	destinationstore "github.com/dalemusser/stratatrips/internal/app/store/destinations"
	homecollectionstore "github.com/dalemusser/stratatrips/internal/app/store/homecollections"
	partnerhotelstore "github.com/dalemusser/stratatrips/internal/app/store/partnerhotels"
	"github.com/dalemusser/stratatrips/internal/app/system/catalogcache"
	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatrips/internal/app/system/reqval"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Invalidator drops cached catalog snapshots after a write.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string)
}

// Handler serves every showcase endpoint.
type Handler struct {
	collections  *homecollectionstore.Store
	hotels       *partnerhotelstore.Store
	adventures   *adventurestore.Store
	destinations *destinationstore.Store
	cache        Invalidator
	logger       *zap.Logger
}

// NewHandler creates a showcase Handler. cache may be nil.
func NewHandler(db *mongo.Database, cache Invalidator, logger *zap.Logger) *Handler {
	return &Handler{
		collections:  homecollectionstore.New(db),
		hotels:       partnerhotelstore.New(db),
		adventures:   adventurestore.New(db),
		destinations: destinationstore.New(db),
		cache:        cache,
		logger:       logger,
	}
}

// MountPublic registers the public list endpoints on the /api router.
func MountPublic(r chi.Router, h *Handler) {
	r.Get("/home-collections", h.ListActiveCollections)
	r.Get("/partner-hotels", h.ListActiveHotels)
	r.Get("/adventures", h.ListActiveAdventures)
	r.Get("/destinations", h.ListActiveDestinations)
}

// MountAdmin registers the admin CRUD routers on the /api/admin router.
func MountAdmin(r chi.Router, h *Handler) {
	r.Mount("/home-collections", crudRoutes(h.AdminListCollections, h.AdminCreateCollection,
		h.AdminGetCollection, h.AdminUpdateCollection, h.AdminDeleteCollection))
	r.Mount("/partner-hotels", crudRoutes(h.AdminListHotels, h.AdminCreateHotel,
		h.AdminGetHotel, h.AdminUpdateHotel, h.AdminDeleteHotel))
	r.Mount("/adventures", crudRoutes(h.AdminListAdventures, h.AdminCreateAdventure,
		h.AdminGetAdventure, h.AdminUpdateAdventure, h.AdminDeleteAdventure))
	r.Mount("/destinations", crudRoutes(h.AdminListDestinations, h.AdminCreateDestination,
		h.AdminGetDestination, h.AdminUpdateDestination, h.AdminDeleteDestination))
}

func crudRoutes(list, create, get, update, del http.HandlerFunc) chi.Router {
	r := chi.NewRouter()
	r.Get("/", list)
	r.Post("/", create)
	r.Get("/{id}", get)
	r.Patch("/{id}", update)
	r.Delete("/{id}", del)
	return r
}

// decodeValid decodes and validates a request body, writing the 400 itself.
func decodeValid(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := jsonutil.Decode(w, r, v); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return false
	}
	if details := reqval.Struct(v); details != nil {
		jsonutil.ValidationError(w, details)
		return false
	}
	return true
}

// writeOne answers with {key: doc}, or 404 when doc is nil.
func writeOne[T any](w http.ResponseWriter, entity, key string, doc *T) {
	if doc == nil {
		jsonutil.NotFound(w, entity+" not found")
		return
	}
	jsonutil.OK(w, map[string]any{key: doc})
}

func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, entity string, err error) {
	jsonutil.StoreError(w, r, h.logger, entity, err)
}

func (h *Handler) invalidateDestinations(ctx context.Context) {
	if h.cache != nil {
		h.cache.Invalidate(ctx, catalogcache.KeyDestinations)
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
