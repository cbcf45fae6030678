// internal/domain/models/contactinquiry.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact inquiry reasons.
const (
	InquiryNewMembership = "new_membership"
	InquirySupport       = "support"
)

// ContactInquiry is a public contact-form submission. Unauthenticated by
// design; listing them is admin-only.
type ContactInquiry struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Email   string             `bson:"email" json:"email"`
	Phone   string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Reason  string             `bson:"reason" json:"reason"` // new_membership | support
	Message string             `bson:"message" json:"message"`

	SubmittedAt time.Time `bson:"submitted_at" json:"submitted_at"`
}
