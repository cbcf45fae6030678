// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a calendar entry. Location and MeetingLink are mutually exclusive,
// selected by the Virtual flag.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Date        time.Time          `bson:"date" json:"date"`
	Time        string             `bson:"time" json:"time"` // display label, e.g. "6:00 PM"
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Virtual     bool               `bson:"virtual" json:"virtual"`
	MeetingLink string             `bson:"meeting_link,omitempty" json:"meeting_link,omitempty"`
	Color       string             `bson:"color" json:"color"`

	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
