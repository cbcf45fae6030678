// internal/app/store/investments/investmentstore.go
package investmentstore

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
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("investments")}
}

func validate(inv models.Investment) error {
	if inv.UserID.IsZero() {
		return fmt.Errorf("%w: user id is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(inv.Name) == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if inv.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if inv.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", apperrors.ErrValidation)
	}
	if !models.IsValidInvestmentStatus(inv.Status) {
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, inv.Status)
	}
	if inv.EndDate != nil && inv.EndDate.Before(inv.StartDate) {
		return fmt.Errorf("%w: end date precedes start date", apperrors.ErrValidation)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, inv models.Investment) (models.Investment, error) {
	if inv.Status == "" {
		inv.Status = models.InvestmentActive
	}
	if err := validate(inv); err != nil {
		return models.Investment{}, err
	}

	now := time.Now().UTC()
	inv.ID = primitive.NewObjectID()
	inv.Name = strings.TrimSpace(inv.Name)
	inv.CreatedAt = now
	inv.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, inv); err != nil {
		return models.Investment{}, err
	}
	return inv, nil
}

// Update overwrites the position's mutable fields; the owning member
// never changes.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Investment) (models.Investment, error) {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Investment{}, err
	}
	mut.UserID = cur.UserID
	if err := validate(mut); err != nil {
		return models.Investment{}, err
	}

	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name":        strings.TrimSpace(mut.Name),
			"amount":      mut.Amount,
			"return_rate": mut.ReturnRate,
			"start_date":  mut.StartDate,
			"end_date":    mut.EndDate,
			"status":      mut.Status,
			"updated_at":  time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Investment
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Investment{}, apperrors.ErrNotFound
		}
		return models.Investment{}, err
	}
	return updated, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Investment, error) {
	var inv models.Investment
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&inv)
	if err == mongo.ErrNoDocuments {
		return models.Investment{}, apperrors.ErrNotFound
	}
	if err != nil {
		return models.Investment{}, err
	}
	return inv, nil
}

// ListByUser returns a member's positions, most recent start first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Investment, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{
		{Key: "start_date", Value: -1},
		{Key: "_id", Value: -1},
	}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []models.Investment{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
