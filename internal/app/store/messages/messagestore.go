// internal/app/store/messages/messagestore.go
package messagestore

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/htmlsanitize"
	"github.com/wekezagroup/wekeza/internal/app/system/paging"
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

type Store struct {
	c     *mongo.Collection
	reads *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("messages"),
		reads: db.Collection("message_reads"),
	}
}

// Insert stores a chat message. The body is reduced to plain text before
// storage, and a message that is empty after trimming is rejected. The
// author starts in the read set; read-set membership never reverses.
func (s *Store) Insert(ctx context.Context, authorID primitive.ObjectID, body string) (models.Message, error) {
	body = strings.TrimSpace(htmlsanitize.Strict(body))
	if body == "" {
		return models.Message{}, apperrors.ErrEmptyMessage
	}

	msg := models.Message{
		ID:        primitive.NewObjectID(),
		Body:      body,
		AuthorID:  authorID,
		ReadBy:    []primitive.ObjectID{authorID},
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, msg); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Message, error) {
	var msg models.Message
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if err == mongo.ErrNoDocuments {
		return models.Message{}, apperrors.ErrNotFound
	}
	if err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// Delete removes a message. Returns ErrNotFound when the id does not exist.
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

// MarkRead adds the user to the read set of each listed message.
// $addToSet makes repeat calls no-ops, and unknown ids are skipped.
func (s *Store) MarkRead(ctx context.Context, userID primitive.ObjectID, messageIDs []primitive.ObjectID) error {
	if len(messageIDs) == 0 {
		return nil
	}
	_, err := s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": messageIDs}},
		bson.M{"$addToSet": bson.M{"read_by": userID}},
	)
	return err
}

// MarkAllRead adds the user to the read set of every message they did not
// author, in one UpdateMany.
func (s *Store) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{"author_id": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"read_by": userID}},
	)
	return err
}

// UnreadCount counts messages authored by others that the user has not
// read. Deliberately independent of the watermark: the count reflects the
// per-message read sets only.
func (s *Store) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"author_id": bson.M{"$ne": userID},
		"read_by":   bson.M{"$ne": userID},
	})
}

// ListPage returns one newest-first page of messages plus whether older
// pages remain.
func (s *Store) ListPage(ctx context.Context, cfg paging.FeedConfig) ([]models.Message, bool, error) {
	filter := bson.M{}
	if window := cfg.Window(); window != nil {
		filter = window
	}

	find := options.Find()
	cfg.ApplyToFind(find)

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, false, err
	}
	defer cur.Close(ctx)

	rows := []models.Message{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, false, err
	}
	hasMore := paging.TrimFeed(&rows, cfg.PageSize)
	return rows, hasMore, nil
}

// TouchWatermark upserts the user's "read up to" timestamp to now.
func (s *Store) TouchWatermark(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.reads.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"last_read_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	return err
}

// Watermark returns the user's read watermark, or a zero value when the
// user has never bulk-marked messages read.
func (s *Store) Watermark(ctx context.Context, userID primitive.ObjectID) (models.MessageReadWatermark, error) {
	var wm models.MessageReadWatermark
	err := s.reads.FindOne(ctx, bson.M{"user_id": userID}).Decode(&wm)
	if err == mongo.ErrNoDocuments {
		return models.MessageReadWatermark{}, nil
	}
	if err != nil {
		return models.MessageReadWatermark{}, err
	}
	return wm, nil
}
