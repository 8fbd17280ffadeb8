// internal/app/store/homecollections/store.go
package homecollections

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

// Store provides access to the home_collections collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new home collection store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("home_collections")}
}

// CreateInput contains the input for creating a collection item.
// IsActive is a pointer so an omitted value defaults to true.
type CreateInput struct {
	Category string
	Badge    string
	Title    string
	Subtitle string
	ImageURL string
	Order    int
	IsActive *bool
}

// Create inserts a new collection item.
func (s *Store) Create(ctx context.Context, in CreateInput) (*models.HomeCollectionItem, error) {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now().UTC()
	item := models.HomeCollectionItem{
		ID:        primitive.NewObjectID(),
		Category:  in.Category,
		Badge:     in.Badge,
		Title:     in.Title,
		Subtitle:  in.Subtitle,
		ImageURL:  in.ImageURL,
		Order:     in.Order,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, item); err != nil {
		return nil, err
	}
	return &item, nil
}

func sortByOrder() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}})
}

// ListActive returns active items in display order, optionally for one category.
func (s *Store) ListActive(ctx context.Context, category string) ([]models.HomeCollectionItem, error) {
	filter := bson.M{"is_active": true}
	if category != "" {
		filter["category"] = category
	}
	return storeutil.FindAll[models.HomeCollectionItem](ctx, s.c, filter, sortByOrder())
}

// ListAll returns every item in display order, optionally for one category.
func (s *Store) ListAll(ctx context.Context, category string) ([]models.HomeCollectionItem, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	return storeutil.FindAll[models.HomeCollectionItem](ctx, s.c, filter, sortByOrder())
}

// GetByID returns the item, or (nil, nil) when it does not exist.
func (s *Store) GetByID(ctx context.Context, id string) (*models.HomeCollectionItem, error) {
	return storeutil.FindByID[models.HomeCollectionItem](ctx, s.c, id)
}

// UpdateInput contains the fields to change. Nil fields are left untouched.
type UpdateInput struct {
	Category *string
	Badge    *string
	Title    *string
	Subtitle *string
	ImageURL *string
	Order    *int
	IsActive *bool
}

// UpdateByID applies a partial update and returns the updated item.
func (s *Store) UpdateByID(ctx context.Context, id string, in UpdateInput) (*models.HomeCollectionItem, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Badge != nil {
		set["badge"] = *in.Badge
	}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Subtitle != nil {
		set["subtitle"] = *in.Subtitle
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
	return storeutil.UpdateByID[models.HomeCollectionItem](ctx, s.c, id, set)
}

// DeleteByID hard-deletes an item.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	return storeutil.DeleteByID(ctx, s.c, id)
}
