// internal/domain/models/document.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is a shared file record. The bytes live in blob storage under
// StorageKey; URL is the resolved download location at upload time.
type Document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	ContentType string             `bson:"content_type" json:"content_type"`
	Size        int64              `bson:"size" json:"size"`
	StorageKey  string             `bson:"storage_key,omitempty" json:"storage_key,omitempty"`
	URL         string             `bson:"url" json:"url"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	IsPublished bool               `bson:"is_published" json:"is_published"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
