// internal/domain/models/enquiry.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enquiry statuses, advanced by admins as the lead is worked.
const (
	EnquiryStatusNew        = "new"
	EnquiryStatusContacted  = "contacted"
	EnquiryStatusInProgress = "in_progress"
	EnquiryStatusClosed     = "closed"
)

// AllEnquiryStatuses returns all valid enquiry statuses.
func AllEnquiryStatuses() []string {
	return []string{
		EnquiryStatusNew,
		EnquiryStatusContacted,
		EnquiryStatusInProgress,
		EnquiryStatusClosed,
	}
}

// Enquiry is a lead submitted through the public contact or package form.
//
// PackageID is advisory; nothing enforces that the package still exists.
type Enquiry struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FullName           string              `bson:"full_name" json:"fullName"`
	Email              string              `bson:"email" json:"email"`
	CountryCode        string              `bson:"country_code" json:"countryCode"`
	Phone              string              `bson:"phone" json:"phone"`
	PackageID          *primitive.ObjectID `bson:"package_id,omitempty" json:"packageId,omitempty"`
	PackageSlug        string              `bson:"package_slug,omitempty" json:"packageSlug,omitempty"`
	PreferredStartDate *time.Time          `bson:"preferred_start_date,omitempty" json:"preferredStartDate,omitempty"`
	NumberOfAdults     int                 `bson:"number_of_adults" json:"numberOfAdults"`
	NumberOfChildren   int                 `bson:"number_of_children" json:"numberOfChildren"`
	Budget             string              `bson:"budget,omitempty" json:"budget,omitempty"`
	Message            string              `bson:"message,omitempty" json:"message,omitempty"`
	Source             string              `bson:"source,omitempty" json:"source,omitempty"`
	Status             string              `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
