// internal/domain/models/showcase.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Home collection categories.
const (
	CollectionCategoryTop     = "top"
	CollectionCategoryOffbeat = "offbeat"
)

// AllCollectionCategories returns the two homepage collection rows.
func AllCollectionCategories() []string {
	return []string{CollectionCategoryTop, CollectionCategoryOffbeat}
}

// Popular destination tile sizes.
const (
	DestinationSizeSmall  = "small"
	DestinationSizeMedium = "medium"
	DestinationSizeLarge  = "large"
)

// AllDestinationSizes returns all valid destination tile sizes.
func AllDestinationSizes() []string {
	return []string{DestinationSizeSmall, DestinationSizeMedium, DestinationSizeLarge}
}

// HomeCollectionItem is a card in one of the homepage collection rows.
type HomeCollectionItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Category string             `bson:"category" json:"category"`
	Badge    string             `bson:"badge,omitempty" json:"badge,omitempty"`
	Title    string             `bson:"title" json:"title"`
	Subtitle string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	ImageURL string             `bson:"image_url" json:"imageUrl"`
	Order    int                `bson:"order" json:"order"`
	IsActive bool               `bson:"is_active" json:"isActive"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// PartnerHotel is a hotel logo shown in the partners strip.
type PartnerHotel struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	ImageURL string             `bson:"image_url" json:"imageUrl"`
	Order    int                `bson:"order" json:"order"`
	IsActive bool               `bson:"is_active" json:"isActive"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// AdventureActivity is a tile in the adventures section.
type AdventureActivity struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Label    string             `bson:"label" json:"label"`
	ImageURL string             `bson:"image_url" json:"imageUrl"`
	Order    int                `bson:"order" json:"order"`
	IsActive bool               `bson:"is_active" json:"isActive"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// PopularDestination is a tile in the destinations mosaic; Size picks the tile span.
type PopularDestination struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	ImageURL string             `bson:"image_url" json:"imageUrl"`
	Size     string             `bson:"size" json:"size"`
	Order    int                `bson:"order" json:"order"`
	IsActive bool               `bson:"is_active" json:"isActive"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
