// internal/app/store/reviews/store.go
package reviews

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

// Store provides access to the reviews collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new review store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("reviews")}
}

// CreateInput contains the input for creating a review. Empty Status means pending.
type CreateInput struct {
	FullName   string
	Location   string
	Rating     int
	Comment    string
	PackageID  *primitive.ObjectID
	IsFeatured bool
	Status     string
}

// Create inserts a new review.
func (s *Store) Create(ctx context.Context, in CreateInput) (*models.Review, error) {
	status := in.Status
	if status == "" {
		status = models.ReviewStatusPending
	}
	now := time.Now().UTC()
	rev := models.Review{
		ID:         primitive.NewObjectID(),
		FullName:   in.FullName,
		Location:   in.Location,
		Rating:     in.Rating,
		Comment:    in.Comment,
		PackageID:  in.PackageID,
		IsFeatured: in.IsFeatured,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := s.c.InsertOne(ctx, rev); err != nil {
		return nil, err
	}
	return &rev, nil
}

// ListApproved returns approved reviews, featured first then newest first.
// With featuredOnly set, only featured reviews are returned.
func (s *Store) ListApproved(ctx context.Context, featuredOnly bool) ([]models.Review, error) {
	filter := bson.M{"status": models.ReviewStatusApproved}
	if featuredOnly {
		filter["is_featured"] = true
	}
	return storeutil.FindAll[models.Review](ctx, s.c, filter,
		options.Find().SetSort(bson.D{{Key: "is_featured", Value: -1}, {Key: "created_at", Value: -1}}))
}

// ListAll returns every review newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.Review, error) {
	return storeutil.FindAll[models.Review](ctx, s.c, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// GetByID returns the review, or (nil, nil) when it does not exist.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Review, error) {
	return storeutil.FindByID[models.Review](ctx, s.c, id)
}

// UpdateInput contains the fields to change. Nil fields are left untouched.
type UpdateInput struct {
	FullName   *string
	Location   *string
	Rating     *int
	Comment    *string
	PackageID  *primitive.ObjectID
	IsFeatured *bool
	Status     *string
}

// UpdateByID applies a partial update and returns the updated review.
func (s *Store) UpdateByID(ctx context.Context, id string, in UpdateInput) (*models.Review, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if in.FullName != nil {
		set["full_name"] = *in.FullName
	}
	if in.Location != nil {
		set["location"] = *in.Location
	}
	if in.Rating != nil {
		set["rating"] = *in.Rating
	}
	if in.Comment != nil {
		set["comment"] = *in.Comment
	}
	if in.PackageID != nil {
		set["package_id"] = *in.PackageID
	}
	if in.IsFeatured != nil {
		set["is_featured"] = *in.IsFeatured
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}
	return storeutil.UpdateByID[models.Review](ctx, s.c, id, set)
}

// DeleteByID hard-deletes a review.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	return storeutil.DeleteByID(ctx, s.c, id)
}
