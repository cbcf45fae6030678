package testutil

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wekezagroup/wekeza/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUserWithRole inserts a member row the way the identity webhook
// would, with the given role. The external id is derived from the name.
func (f *Fixtures) CreateUserWithRole(ctx context.Context, name string, role models.Role) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	slug := strings.ReplaceAll(text.Fold(name), " ", ".")
	user := models.User{
		ID:         primitive.NewObjectID(),
		ExternalID: "user_test_" + primitive.NewObjectID().Hex(),
		Name:       name,
		NameCI:     text.Fold(name),
		Email:      slug + "@example.com",
		Role:       role,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateUser inserts an ordinary member.
func (f *Fixtures) CreateUser(ctx context.Context, name string) models.User {
	f.t.Helper()
	return f.CreateUserWithRole(ctx, name, models.RoleMember)
}

// CreateAdmin inserts an admin member.
func (f *Fixtures) CreateAdmin(ctx context.Context, name string) models.User {
	f.t.Helper()
	return f.CreateUserWithRole(ctx, name, models.RoleAdmin)
}

// CreateTreasurer inserts a treasurer member.
func (f *Fixtures) CreateTreasurer(ctx context.Context, name string) models.User {
	f.t.Helper()
	return f.CreateUserWithRole(ctx, name, models.RoleTreasurer)
}

// CreateContribution inserts a ledger row directly, bypassing store
// validation. Tests exercising validation should use the store instead.
func (f *Fixtures) CreateContribution(ctx context.Context, userID, addedBy primitive.ObjectID, amount float64, month, typ string) models.Contribution {
	f.t.Helper()

	now := time.Now().UTC()
	date, err := time.Parse("2006-01", month)
	if err != nil {
		date = now
	}
	c := models.Contribution{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Amount:    amount,
		Date:      date,
		Month:     month,
		Type:      typ,
		AddedBy:   addedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("contributions").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test contribution: %v", err)
	}
	return c
}

// CreateMessage inserts a chat message with the author pre-marked as a
// reader, matching send semantics.
func (f *Fixtures) CreateMessage(ctx context.Context, authorID primitive.ObjectID, body string) models.Message {
	f.t.Helper()

	msg := models.Message{
		ID:        primitive.NewObjectID(),
		Body:      body,
		AuthorID:  authorID,
		ReadBy:    []primitive.ObjectID{authorID},
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("messages").InsertOne(ctx, msg); err != nil {
		f.t.Fatalf("failed to create test message: %v", err)
	}
	return msg
}

// CreateEvent inserts an in-person calendar event on the given date.
func (f *Fixtures) CreateEvent(ctx context.Context, createdBy primitive.ObjectID, title string, date time.Time) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	ev := models.Event{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Test event",
		Date:        date,
		Time:        "6:00 PM",
		Location:    "Community Hall",
		Color:       "emerald",
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("events").InsertOne(ctx, ev); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return ev
}

// CreateDocument inserts a stored-file record owned by the given member.
func (f *Fixtures) CreateDocument(ctx context.Context, ownerID primitive.ObjectID, name string, published bool) models.Document {
	f.t.Helper()

	now := time.Now().UTC()
	doc := models.Document{
		ID:          primitive.NewObjectID(),
		Name:        name,
		ContentType: "application/pdf",
		Size:        2048,
		StorageKey:  "documents/" + primitive.NewObjectID().Hex() + ".pdf",
		URL:         "https://files.example.com/" + text.Fold(name),
		Category:    "minutes",
		OwnerID:     ownerID,
		IsPublished: published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("documents").InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to create test document: %v", err)
	}
	return doc
}

// CreateInvestment inserts an active investment for the given member.
func (f *Fixtures) CreateInvestment(ctx context.Context, userID primitive.ObjectID, name string, amount float64) models.Investment {
	f.t.Helper()

	now := time.Now().UTC()
	inv := models.Investment{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Name:       name,
		Amount:     amount,
		ReturnRate: 8.5,
		StartDate:  now.AddDate(0, -1, 0),
		Status:     models.InvestmentActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("investments").InsertOne(ctx, inv); err != nil {
		f.t.Fatalf("failed to create test investment: %v", err)
	}
	return inv
}

// CreateInquiry inserts a contact-form submission.
func (f *Fixtures) CreateInquiry(ctx context.Context, name, reason string) models.ContactInquiry {
	f.t.Helper()

	inq := models.ContactInquiry{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Email:       strings.ReplaceAll(text.Fold(name), " ", ".") + "@example.com",
		Reason:      reason,
		Message:     "Test inquiry from " + name,
		SubmittedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("contact_inquiries").InsertOne(ctx, inq); err != nil {
		f.t.Fatalf("failed to create test inquiry: %v", err)
	}
	return inq
}
