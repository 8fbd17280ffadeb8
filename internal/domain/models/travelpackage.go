// internal/domain/models/travelpackage.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Package statuses. Only published packages are visible on public endpoints.
const (
	PackageStatusDraft     = "draft"
	PackageStatusPublished = "published"
	PackageStatusArchived  = "archived"
)

// DefaultCurrencyCode is applied when a package is created without one.
const DefaultCurrencyCode = "INR"

// AllPackageStatuses returns all valid package statuses.
func AllPackageStatuses() []string {
	return []string{PackageStatusDraft, PackageStatusPublished, PackageStatusArchived}
}

// ItineraryDay is one day of a package itinerary.
type ItineraryDay struct {
	DayNumber   int    `bson:"day_number" json:"dayNumber"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
}

// Package is a bookable trip in the catalog.
//
// Slug is globally unique (enforced by the idx_packages_slug unique index).
// List fields are never nil once stored so clients always receive arrays.
type Package struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug                   string             `bson:"slug" json:"slug"`
	Title                  string             `bson:"title" json:"title"`
	DestinationName        string             `bson:"destination_name" json:"destinationName"`
	DurationDays           int                `bson:"duration_days" json:"durationDays"`
	StartingPricePerPerson float64            `bson:"starting_price_per_person" json:"startingPricePerPerson"`
	CurrencyCode           string             `bson:"currency_code" json:"currencyCode"`
	ShortDescription       string             `bson:"short_description" json:"shortDescription"`
	LongDescription        string             `bson:"long_description,omitempty" json:"longDescription,omitempty"`
	HeroImageURL           string             `bson:"hero_image_url" json:"heroImageUrl"`
	Highlights             []string           `bson:"highlights" json:"highlights"`
	Inclusions             []string           `bson:"inclusions" json:"inclusions"`
	Exclusions             []string           `bson:"exclusions" json:"exclusions"`
	Itinerary              []ItineraryDay     `bson:"itinerary" json:"itinerary"`
	GalleryImageURLs       []string           `bson:"gallery_image_urls" json:"galleryImageUrls"`
	IsFeatured             bool               `bson:"is_featured" json:"isFeatured"`
	Status                 string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
