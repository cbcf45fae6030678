// internal/domain/models/message.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is one chat entry. ReadBy is the set of users who have seen it;
// the author is added on send and there is no reverse transition.
type Message struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Body     string               `bson:"body" json:"body"`
	AuthorID primitive.ObjectID   `bson:"author_id" json:"author_id"`
	ReadBy   []primitive.ObjectID `bson:"read_by" json:"read_by"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// MessageReadWatermark is a per-user "read up to" timestamp, upserted on every
// bulk mark-read call. The unread count does not consult it; it exists so a
// future watermark-only read model can replace the per-message sets.
type MessageReadWatermark struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	LastReadAt time.Time          `bson:"last_read_at" json:"last_read_at"`
}
