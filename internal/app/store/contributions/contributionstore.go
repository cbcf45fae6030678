// internal/app/store/contributions/contributionstore.go
package contributionstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
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
	return &Store{c: db.Collection("contributions")}
}

// validate checks the mutable fields shared by Insert and Update.
func validate(c models.Contribution) error {
	if c.UserID.IsZero() {
		return fmt.Errorf("%w: user id is required", apperrors.ErrValidation)
	}
	if c.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !models.IsValidContributionType(c.Type) {
		return fmt.Errorf("%w: type must be %q or %q", apperrors.ErrValidation,
			models.ContributionMonthly, models.ContributionJoiningFee)
	}
	if _, err := time.Parse("2006-01", c.Month); err != nil {
		return fmt.Errorf("%w: month must be in YYYY-MM form", apperrors.ErrValidation)
	}
	if c.Date.IsZero() {
		return fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	return nil
}

// dupSentinel maps a unique-index violation to the sentinel for the
// contribution type that collided.
func dupSentinel(typ string) error {
	if typ == models.ContributionJoiningFee {
		return apperrors.ErrDuplicateJoiningFee
	}
	return apperrors.ErrDuplicateMonthlyContribution
}

// Insert appends a ledger row. Uniqueness is enforced by the partial
// unique indexes on (user_id, month) for monthly rows and (user_id) for
// joining-fee rows; a collision surfaces as the type's duplicate sentinel.
func (s *Store) Insert(ctx context.Context, c models.Contribution) (models.Contribution, error) {
	if err := validate(c); err != nil {
		return models.Contribution{}, err
	}

	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.Notes = strings.TrimSpace(c.Notes)
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Contribution{}, dupSentinel(c.Type)
		}
		return models.Contribution{}, err
	}
	return c, nil
}

// Update overwrites the mutable fields of an existing row. UserID,
// AddedBy, and CreatedAt never change. An update that would collide with
// another row's uniqueness slot fails with the same duplicate sentinel
// as Insert.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Contribution) (models.Contribution, error) {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Contribution{}, err
	}
	mut.UserID = cur.UserID
	if err := validate(mut); err != nil {
		return models.Contribution{}, err
	}

	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"amount":     mut.Amount,
			"date":       mut.Date,
			"month":      mut.Month,
			"type":       mut.Type,
			"notes":      strings.TrimSpace(mut.Notes),
			"updated_at": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Contribution
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Contribution{}, apperrors.ErrNotFound
		}
		if wafflemongo.IsDup(err) {
			return models.Contribution{}, dupSentinel(mut.Type)
		}
		return models.Contribution{}, err
	}
	return updated, nil
}

// Delete removes a row. Returns ErrNotFound when the id does not exist.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Contribution, error) {
	var c models.Contribution
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return models.Contribution{}, apperrors.ErrNotFound
	}
	if err != nil {
		return models.Contribution{}, err
	}
	return c, nil
}

// ListByUser returns one member's rows, newest date first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Contribution, error) {
	return s.list(ctx, bson.M{"user_id": userID})
}

// ListAll returns every row, optionally filtered by month and/or type,
// newest date first.
func (s *Store) ListAll(ctx context.Context, month, typ string) ([]models.Contribution, error) {
	filter := bson.M{}
	if month != "" {
		filter["month"] = month
	}
	if typ != "" {
		filter["type"] = typ
	}
	return s.list(ctx, filter)
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Contribution, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "_id", Value: -1},
	}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []models.Contribution{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ScanUserSummary computes a member's summary by scanning their rows.
// The rollup store serves the same numbers without the scan; this is the
// ground truth used by the rollup rebuild and the consistency tests.
func (s *Store) ScanUserSummary(ctx context.Context, userID primitive.ObjectID) (models.UserContributionSummary, error) {
	rows, err := s.ListByUser(ctx, userID)
	if err != nil {
		return models.UserContributionSummary{}, err
	}

	var sum models.UserContributionSummary
	for _, c := range rows {
		sum.TotalContributed += c.Amount
		switch c.Type {
		case models.ContributionMonthly:
			sum.MonthlyContributions += c.Amount
			sum.ContributionCount++
		case models.ContributionJoiningFee:
			sum.JoiningFee += c.Amount
			sum.HasJoiningFee = true
		}
	}
	return sum, nil
}

// ScanOverallSummary computes the group-wide summary by scanning every row.
func (s *Store) ScanOverallSummary(ctx context.Context) (models.OverallContributionSummary, error) {
	rows, err := s.ListAll(ctx, "", "")
	if err != nil {
		return models.OverallContributionSummary{}, err
	}

	var sum models.OverallContributionSummary
	members := map[primitive.ObjectID]struct{}{}
	withFee := map[primitive.ObjectID]struct{}{}
	for _, c := range rows {
		sum.TotalContributed += c.Amount
		members[c.UserID] = struct{}{}
		switch c.Type {
		case models.ContributionMonthly:
			sum.MonthlyContributions += c.Amount
		case models.ContributionJoiningFee:
			sum.JoiningFees += c.Amount
			withFee[c.UserID] = struct{}{}
		}
	}
	sum.UniqueMembers = int64(len(members))
	sum.MembersWithJoiningFee = int64(len(withFee))
	return sum, nil
}
