// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/urlutil"
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
	return &Store{c: db.Collection("events")}
}

// validate enforces the virtual/in-person split: virtual events carry a
// meeting link and no location, in-person events the reverse.
func validate(ev models.Event) error {
	if strings.TrimSpace(ev.Title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if ev.Date.IsZero() {
		return fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if ev.Virtual {
		if strings.TrimSpace(ev.MeetingLink) == "" {
			return fmt.Errorf("%w: virtual events need a meeting link", apperrors.ErrValidation)
		}
		if !urlutil.IsValidAbsHTTPURL(ev.MeetingLink) {
			return fmt.Errorf("%w: meeting link must be a valid http(s) URL", apperrors.ErrValidation)
		}
		if strings.TrimSpace(ev.Location) != "" {
			return fmt.Errorf("%w: virtual events cannot have a location", apperrors.ErrValidation)
		}
		return nil
	}
	if strings.TrimSpace(ev.Location) == "" {
		return fmt.Errorf("%w: in-person events need a location", apperrors.ErrValidation)
	}
	if strings.TrimSpace(ev.MeetingLink) != "" {
		return fmt.Errorf("%w: in-person events cannot have a meeting link", apperrors.ErrValidation)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, ev models.Event) (models.Event, error) {
	if err := validate(ev); err != nil {
		return models.Event{}, err
	}

	now := time.Now().UTC()
	ev.ID = primitive.NewObjectID()
	ev.CreatedAt = now
	ev.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, ev); err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

// Update overwrites the editable fields. CreatedBy and CreatedAt are kept.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Event) (models.Event, error) {
	if err := validate(mut); err != nil {
		return models.Event{}, err
	}

	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"title":        mut.Title,
			"description":  mut.Description,
			"date":         mut.Date,
			"time":         mut.Time,
			"location":     mut.Location,
			"virtual":      mut.Virtual,
			"meeting_link": mut.MeetingLink,
			"color":        mut.Color,
			"updated_at":   time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Event
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Event{}, apperrors.ErrNotFound
		}
		return models.Event{}, err
	}
	return updated, nil
}

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

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var ev models.Event
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ev)
	if err == mongo.ErrNoDocuments {
		return models.Event{}, apperrors.ErrNotFound
	}
	if err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

// ListUpcoming returns events on or after now, soonest first. limit <= 0
// means no limit.
func (s *Store) ListUpcoming(ctx context.Context, now time.Time, limit int) ([]models.Event, error) {
	find := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "_id", Value: 1},
	})
	if limit > 0 {
		find.SetLimit(int64(limit))
	}

	cur, err := s.c.Find(ctx, bson.M{"date": bson.M{"$gte": now}}, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []models.Event{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns every event, newest date first.
func (s *Store) ListAll(ctx context.Context) ([]models.Event, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "_id", Value: -1},
	}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []models.Event{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
