// internal/app/store/enquiries/store.go
package enquiries

import (
	"context"
	"time"

	"github.com/dalemusser/stratatrips/internal/app/store/storeutil"
	"github.com/dalemusser/stratatrips/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store provides access to the enquiries collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new enquiry store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("enquiries")}
}

// CreateInput contains the input for creating an enquiry.
type CreateInput struct {
	FullName           string
	Email              string
	CountryCode        string
	Phone              string
	PackageID          *primitive.ObjectID
	PackageSlug        string
	PreferredStartDate *time.Time
	NumberOfAdults     int
	NumberOfChildren   int
	Budget             string
	Message            string
	Source             string
}

// Create inserts a new enquiry with status new.
func (s *Store) Create(ctx context.Context, in CreateInput) (*models.Enquiry, error) {
	now := time.Now().UTC()
	enq := models.Enquiry{
		ID:                 primitive.NewObjectID(),
		FullName:           in.FullName,
		Email:              in.Email,
		CountryCode:        in.CountryCode,
		Phone:              in.Phone,
		PackageID:          in.PackageID,
		PackageSlug:        in.PackageSlug,
		PreferredStartDate: in.PreferredStartDate,
		NumberOfAdults:     in.NumberOfAdults,
		NumberOfChildren:   in.NumberOfChildren,
		Budget:             in.Budget,
		Message:            in.Message,
		Source:             in.Source,
		Status:             models.EnquiryStatusNew,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if _, err := s.c.InsertOne(ctx, enq); err != nil {
		return nil, err
	}
	return &enq, nil
}

// List returns one page of enquiries newest first, optionally filtered by status.
func (s *Store) List(ctx context.Context, status string, page, limit int64) ([]models.Enquiry, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return storeutil.FindAll[models.Enquiry](ctx, s.c, filter,
		storeutil.Page(page, limit).SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}))
}

// GetByID returns the enquiry, or (nil, nil) when it does not exist.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Enquiry, error) {
	return storeutil.FindByID[models.Enquiry](ctx, s.c, id)
}

// UpdateStatus moves an enquiry to a new status.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) (*models.Enquiry, error) {
	return storeutil.UpdateByID[models.Enquiry](ctx, s.c, id, bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	})
}

// DeleteByID hard-deletes an enquiry.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	return storeutil.DeleteByID(ctx, s.c, id)
}

// CountByStatus returns the number of enquiries per status.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return storeutil.CountBy(ctx, s.c, "status")
}
