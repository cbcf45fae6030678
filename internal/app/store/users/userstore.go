package userstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/normalize"
	"github.com/wekezagroup/wekeza/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", id.Hex(), apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &u, nil
}

// GetByExternalID loads a user by the identity provider's stable id.
// Returns nil (no error) when no row exists yet.
func (s *Store) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"external_id": externalID}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Profile carries the fields pushed by the identity provider on create and
// update events.
type Profile struct {
	ExternalID string
	Name       string
	Email      string
	AvatarURL  string
}

// UpsertFromIdentity inserts or patches the user row keyed by ExternalID.
// A fresh row gets the default member role; the role of an existing row is
// never touched here, since roles are managed in-app.
func (s *Store) UpsertFromIdentity(ctx context.Context, p Profile) (*models.User, error) {
	if p.ExternalID == "" {
		return nil, fmt.Errorf("external id is required: %w", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	name := normalize.Name(p.Name)
	set := bson.M{
		"name":       name,
		"name_ci":    text.Fold(name),
		"email":      normalize.Email(p.Email),
		"avatar_url": p.AvatarURL,
		"updated_at": now,
	}
	setOnInsert := bson.M{
		"external_id": p.ExternalID,
		"role":        models.DefaultRole,
		"created_at":  now,
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"external_id": p.ExternalID},
		bson.M{"$set": set, "$setOnInsert": setOnInsert},
		opts,
	).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteByExternalID hard-deletes the user row for a provider deletion event.
// Returns the number of documents deleted (0 or 1); 0 is not an error because
// deletion webhooks may arrive for identities that never signed in.
func (s *Store) DeleteByExternalID(ctx context.Context, externalID string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"external_id": externalID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// UpdateRole sets a user's role. The role must be one of the closed set.
func (s *Store) UpdateRole(ctx context.Context, id primitive.ObjectID, role models.Role) error {
	if !role.IsValid() {
		return fmt.Errorf("unknown role %q: %w", role, apperrors.ErrValidation)
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

// MapByIDs loads the given users keyed by id. Missing ids are simply
// absent from the map; callers decide how to render a deleted author.
func (s *Store) MapByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.User
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, u := range rows {
		out[u.ID] = u
	}
	return out, nil
}

// List returns all users sorted by folded name. The directory is one
// community, so no pagination here.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
