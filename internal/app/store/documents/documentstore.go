// internal/app/store/documents/documentstore.go
package documentstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/htmlsanitize"
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("documents")}
}

// Create records an uploaded file. Descriptions may carry simple
// formatting, so they get the basic policy rather than plain text.
func (s *Store) Create(ctx context.Context, doc models.Document) (models.Document, error) {
	if strings.TrimSpace(doc.Name) == "" {
		return models.Document{}, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if doc.OwnerID.IsZero() {
		return models.Document{}, fmt.Errorf("%w: owner is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(doc.URL) == "" {
		return models.Document{}, fmt.Errorf("%w: url is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	doc.ID = primitive.NewObjectID()
	doc.Name = strings.TrimSpace(doc.Name)
	doc.Description = htmlsanitize.Basic(doc.Description)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	var doc models.Document
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return models.Document{}, apperrors.ErrNotFound
	}
	if err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

// ListByOwner returns one member's documents, newest first.
func (s *Store) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Document, error) {
	return s.list(ctx, bson.M{"owner_id": ownerID})
}

// ListPublished returns the documents shared with the whole group,
// newest first.
func (s *Store) ListPublished(ctx context.Context) ([]models.Document, error) {
	return s.list(ctx, bson.M{"is_published": true})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Document, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []models.Document{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SetPublished flips the visibility flag.
func (s *Store) SetPublished(ctx context.Context, id primitive.ObjectID, published bool) (models.Document, error) {
	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"is_published": published,
			"updated_at":   time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var doc models.Document
	if err := res.Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Document{}, apperrors.ErrNotFound
		}
		return models.Document{}, err
	}
	return doc, nil
}

// Delete removes the record and returns it so the caller can clean up
// the stored blob.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	res := s.c.FindOneAndDelete(ctx, bson.M{"_id": id})
	var doc models.Document
	if err := res.Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Document{}, apperrors.ErrNotFound
		}
		return models.Document{}, err
	}
	return doc, nil
}
