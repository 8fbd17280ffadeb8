// internal/app/store/packages/store.go
package packages

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/stratatrips/internal/app/store/storeutil"
	"github.com/dalemusser/stratatrips/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the packages collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new package store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("packages")}
}

// CreateInput contains the input for creating a package.
// Empty Status and CurrencyCode fall back to draft and INR.
type CreateInput struct {
	Slug                   string
	Title                  string
	DestinationName        string
	DurationDays           int
	StartingPricePerPerson float64
	CurrencyCode           string
	ShortDescription       string
	LongDescription        string
	HeroImageURL           string
	Highlights             []string
	Inclusions             []string
	Exclusions             []string
	Itinerary              []models.ItineraryDay
	GalleryImageURLs       []string
	IsFeatured             bool
	Status                 string
}

// Create inserts a new package. It returns storeutil.ErrSlugExists when the
// slug is already taken; existing documents are never touched.
func (s *Store) Create(ctx context.Context, in CreateInput) (*models.Package, error) {
	slug := strings.TrimSpace(in.Slug)

	taken, err := s.slugTaken(ctx, slug, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, storeutil.ErrSlugExists
	}

	status := in.Status
	if status == "" {
		status = models.PackageStatusDraft
	}
	currency := strings.ToUpper(strings.TrimSpace(in.CurrencyCode))
	if currency == "" {
		currency = models.DefaultCurrencyCode
	}
	itinerary := in.Itinerary
	if itinerary == nil {
		itinerary = []models.ItineraryDay{}
	}

	now := time.Now().UTC()
	pkg := models.Package{
		ID:                     primitive.NewObjectID(),
		Slug:                   slug,
		Title:                  in.Title,
		DestinationName:        in.DestinationName,
		DurationDays:           in.DurationDays,
		StartingPricePerPerson: in.StartingPricePerPerson,
		CurrencyCode:           currency,
		ShortDescription:       in.ShortDescription,
		LongDescription:        in.LongDescription,
		HeroImageURL:           in.HeroImageURL,
		Highlights:             storeutil.StringsOrEmpty(in.Highlights),
		Inclusions:             storeutil.StringsOrEmpty(in.Inclusions),
		Exclusions:             storeutil.StringsOrEmpty(in.Exclusions),
		Itinerary:              itinerary,
		GalleryImageURLs:       storeutil.StringsOrEmpty(in.GalleryImageURLs),
		IsFeatured:             in.IsFeatured,
		Status:                 status,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	// The unique index catches a concurrent insert that slipped past the pre-check.
	if _, err := s.c.InsertOne(ctx, pkg); err != nil {
		return nil, storeutil.MapDup(err, storeutil.ErrSlugExists)
	}
	return &pkg, nil
}

// ListPublished returns published packages, featured first then newest first.
func (s *Store) ListPublished(ctx context.Context) ([]models.Package, error) {
	return storeutil.FindAll[models.Package](ctx, s.c,
		bson.M{"status": models.PackageStatusPublished},
		options.Find().SetSort(bson.D{{Key: "is_featured", Value: -1}, {Key: "created_at", Value: -1}}))
}

// ListAll returns every package newest first, for the admin view.
func (s *Store) ListAll(ctx context.Context) ([]models.Package, error) {
	return storeutil.FindAll[models.Package](ctx, s.c, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// ListFeatured returns up to limit published, featured packages, newest first.
func (s *Store) ListFeatured(ctx context.Context, limit int64) ([]models.Package, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return storeutil.FindAll[models.Package](ctx, s.c,
		bson.M{"status": models.PackageStatusPublished, "is_featured": true}, opts)
}

// GetByID returns the package, or (nil, nil) when it does not exist.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Package, error) {
	return storeutil.FindByID[models.Package](ctx, s.c, id)
}

// GetBySlug returns the package with the given slug and status, or (nil, nil).
// An empty status means published.
func (s *Store) GetBySlug(ctx context.Context, slug, status string) (*models.Package, error) {
	if status == "" {
		status = models.PackageStatusPublished
	}
	var pkg models.Package
	err := s.c.FindOne(ctx, bson.M{"slug": slug, "status": status}).Decode(&pkg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// UpdateInput contains the fields to change. Nil fields are left untouched.
type UpdateInput struct {
	Slug                   *string
	Title                  *string
	DestinationName        *string
	DurationDays           *int
	StartingPricePerPerson *float64
	CurrencyCode           *string
	ShortDescription       *string
	LongDescription        *string
	HeroImageURL           *string
	Highlights             *[]string
	Inclusions             *[]string
	Exclusions             *[]string
	Itinerary              *[]models.ItineraryDay
	GalleryImageURLs       *[]string
	IsFeatured             *bool
	Status                 *string
}

// UpdateByID applies a partial update and returns the updated package.
//
// A slug change is checked against other documents only, so resubmitting the
// current slug never yields ErrSlugExists.
func (s *Store) UpdateByID(ctx context.Context, id string, in UpdateInput) (*models.Package, error) {
	oid, err := storeutil.ParseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}

	if in.Slug != nil {
		slug := strings.TrimSpace(*in.Slug)
		taken, err := s.slugTaken(ctx, slug, oid)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, storeutil.ErrSlugExists
		}
		set["slug"] = slug
	}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.DestinationName != nil {
		set["destination_name"] = *in.DestinationName
	}
	if in.DurationDays != nil {
		set["duration_days"] = *in.DurationDays
	}
	if in.StartingPricePerPerson != nil {
		set["starting_price_per_person"] = *in.StartingPricePerPerson
	}
	if in.CurrencyCode != nil {
		set["currency_code"] = strings.ToUpper(strings.TrimSpace(*in.CurrencyCode))
	}
	if in.ShortDescription != nil {
		set["short_description"] = *in.ShortDescription
	}
	if in.LongDescription != nil {
		set["long_description"] = *in.LongDescription
	}
	if in.HeroImageURL != nil {
		set["hero_image_url"] = *in.HeroImageURL
	}
	if in.Highlights != nil {
		set["highlights"] = storeutil.StringsOrEmpty(*in.Highlights)
	}
	if in.Inclusions != nil {
		set["inclusions"] = storeutil.StringsOrEmpty(*in.Inclusions)
	}
	if in.Exclusions != nil {
		set["exclusions"] = storeutil.StringsOrEmpty(*in.Exclusions)
	}
	if in.Itinerary != nil {
		itinerary := *in.Itinerary
		if itinerary == nil {
			itinerary = []models.ItineraryDay{}
		}
		set["itinerary"] = itinerary
	}
	if in.GalleryImageURLs != nil {
		set["gallery_image_urls"] = storeutil.StringsOrEmpty(*in.GalleryImageURLs)
	}
	if in.IsFeatured != nil {
		set["is_featured"] = *in.IsFeatured
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}

	pkg, err := storeutil.UpdateByID[models.Package](ctx, s.c, id, set)
	if err != nil {
		return nil, storeutil.MapDup(err, storeutil.ErrSlugExists)
	}
	return pkg, nil
}

// DeleteByID hard-deletes a package.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	return storeutil.DeleteByID(ctx, s.c, id)
}

// CountByStatus returns the number of packages per status.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return storeutil.CountBy(ctx, s.c, "status")
}

// slugTaken reports whether another package (not exclude) already uses slug.
func (s *Store) slugTaken(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"slug": slug}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	n, err := s.c.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
