// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a group member. Rows are created by the identity-provider webhook
// (upsert keyed by ExternalID) and hard-deleted when the provider reports a
// deletion; they are never created by application mutations.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExternalID string             `bson:"external_id" json:"external_id"` // stable id issued by the identity provider
	Name       string             `bson:"name" json:"name"`
	NameCI     string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	AvatarURL  string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Role       Role               `bson:"role" json:"role"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
