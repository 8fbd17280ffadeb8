// internal/domain/models/review.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review moderation statuses. Only approved reviews are shown publicly.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// AllReviewStatuses returns all valid review statuses.
func AllReviewStatuses() []string {
	return []string{ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected}
}

// Review is a traveller testimonial. Rating is bounded 1..5.
type Review struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FullName   string              `bson:"full_name" json:"fullName"`
	Location   string              `bson:"location,omitempty" json:"location,omitempty"`
	Rating     int                 `bson:"rating" json:"rating"`
	Comment    string              `bson:"comment" json:"comment"`
	PackageID  *primitive.ObjectID `bson:"package_id,omitempty" json:"packageId,omitempty"`
	IsFeatured bool                `bson:"is_featured" json:"isFeatured"`
	Status     string              `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
