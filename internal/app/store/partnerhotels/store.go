// internal/app/store/partnerhotels/store.go
package partnerhotels

import (
	"context"
	"time"

	"github.com/dalemusser/stratatrips/internal/app/store/storeutil"
	"github.com/dalemusser/stratatrips/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the partner_hotels collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new partner hotel store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("partner_hotels")}
}

// CreateInput contains the input for creating a partner hotel.
// IsActive is a pointer so an omitted value defaults to true.
type CreateInput struct {
	Name     string
	ImageURL string
	Order    int
	IsActive *bool
}

// Create inserts a new partner hotel.
func (s *Store) Create(ctx context.Context, in CreateInput) (*models.PartnerHotel, error) {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now().UTC()
	doc := models.PartnerHotel{
		ID:        primitive.NewObjectID(),
		Name:      in.Name,
		ImageURL:  in.ImageURL,
		Order:     in.Order,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func sortByOrder() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}})
}

// ListActive returns active entries in display order.
func (s *Store) ListActive(ctx context.Context) ([]models.PartnerHotel, error) {
	return storeutil.FindAll[models.PartnerHotel](ctx, s.c, bson.M{"is_active": true}, sortByOrder())
}

// ListAll returns every entry in display order.
func (s *Store) ListAll(ctx context.Context) ([]models.PartnerHotel, error) {
	return storeutil.FindAll[models.PartnerHotel](ctx, s.c, bson.M{}, sortByOrder())
}

// GetByID returns the entry, or (nil, nil) when it does not exist.
func (s *Store) GetByID(ctx context.Context, id string) (*models.PartnerHotel, error) {
	return storeutil.FindByID[models.PartnerHotel](ctx, s.c, id)
}

// UpdateInput contains the fields to change. Nil fields are left untouched.
type UpdateInput struct {
	Name     *string
	ImageURL *string
	Order    *int
	IsActive *bool
}

// UpdateByID applies a partial update and returns the updated entry.
func (s *Store) UpdateByID(ctx context.Context, id string, in UpdateInput) (*models.PartnerHotel, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if in.Name != nil {
		set["name"] = *in.Name
	}
	if in.ImageURL != nil {
		set["image_url"] = *in.ImageURL
	}
	if in.Order != nil {
		set["order"] = *in.Order
	}
	if in.IsActive != nil {
		set["is_active"] = *in.IsActive
	}
	return storeutil.UpdateByID[models.PartnerHotel](ctx, s.c, id, set)
}

// DeleteByID hard-deletes an entry.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	return storeutil.DeleteByID(ctx, s.c, id)
}
