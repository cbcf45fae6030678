// internal/app/store/contacts/contactstore.go
package contactstore

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
	"github.com/wekezagroup/wekeza/internal/app/system/normalize"
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contact_inquiries")}
}

// Create stores a public contact-form submission. Free-text fields are
// reduced to plain text; the form is reachable without an account.
func (s *Store) Create(ctx context.Context, inq models.ContactInquiry) (models.ContactInquiry, error) {
	inq.Name = strings.TrimSpace(htmlsanitize.Strict(inq.Name))
	inq.Email = normalize.Email(inq.Email)
	inq.Phone = strings.TrimSpace(inq.Phone)
	inq.Message = strings.TrimSpace(htmlsanitize.Strict(inq.Message))

	if inq.Name == "" {
		return models.ContactInquiry{}, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if inq.Email == "" || !strings.Contains(inq.Email, "@") {
		return models.ContactInquiry{}, fmt.Errorf("%w: a valid email is required", apperrors.ErrValidation)
	}
	if inq.Reason != models.InquiryNewMembership && inq.Reason != models.InquirySupport {
		return models.ContactInquiry{}, fmt.Errorf("%w: reason must be %q or %q",
			apperrors.ErrValidation, models.InquiryNewMembership, models.InquirySupport)
	}
	if inq.Message == "" {
		return models.ContactInquiry{}, fmt.Errorf("%w: message is required", apperrors.ErrValidation)
	}

	inq.ID = primitive.NewObjectID()
	inq.SubmittedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, inq); err != nil {
		return models.ContactInquiry{}, err
	}
	return inq, nil
}

// List returns every inquiry, newest first.
func (s *Store) List(ctx context.Context) ([]models.ContactInquiry, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{
		{Key: "submitted_at", Value: -1},
		{Key: "_id", Value: -1},
	}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []models.ContactInquiry{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
