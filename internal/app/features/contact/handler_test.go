package contact_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/wekezagroup/wekeza/internal/app/features/contact"
	"github.com/wekezagroup/wekeza/internal/app/system/mailer"
	"github.com/wekezagroup/wekeza/internal/domain/models"
	"github.com/wekezagroup/wekeza/internal/testutil"
)

func TestHandleSubmit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := contact.NewHandler(db, nil, "", zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/contact", map[string]string{
		"name":    "Wanjiru Kamau",
		"email":   "Wanjiru@Example.com",
		"phone":   "+254 700 000000",
		"reason":  "new_membership",
		"message": "I would like to join the group. <b>Please</b> contact me.",
	})
	rec := testutil.NewRecorder()

	h.HandleSubmit(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)

	var body struct {
		Inquiry models.ContactInquiry `json:"inquiry"`
	}
	rec.DecodeJSON(t, &body)
	if body.Inquiry.Email != "wanjiru@example.com" {
		t.Errorf("email: got %q, want lowercased", body.Inquiry.Email)
	}
	if body.Inquiry.Message != "I would like to join the group. Please contact me." {
		t.Errorf("message: got %q, want markup stripped", body.Inquiry.Message)
	}
}

func TestHandleSubmit_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := contact.NewHandler(db, nil, "", zap.NewNop())

	cases := []struct {
		name string
		body map[string]string
	}{
		{"missing email", map[string]string{
			"name": "Wanjiru Kamau", "reason": "support", "message": "help",
		}},
		{"bad reason", map[string]string{
			"name": "Wanjiru Kamau", "email": "w@example.com", "reason": "sales", "message": "hi",
		}},
		{"empty message", map[string]string{
			"name": "Wanjiru Kamau", "email": "w@example.com", "reason": "support", "message": "<img src=x>",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, "POST", "/contact", tc.body)
			rec := testutil.NewRecorder()
			h.HandleSubmit(rec.ResponseRecorder, req)
			rec.AssertStatus(t, http.StatusBadRequest)
		})
	}
}

func TestHandleSubmit_RateLimited(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := contact.NewHandler(db, nil, "", zap.NewNop())

	body := map[string]string{
		"name": "Wanjiru Kamau", "email": "w@example.com",
		"reason": "support", "message": "hello",
	}
	for i := 0; i < 5; i++ {
		req := testutil.NewJSONRequest(t, "POST", "/contact", body)
		req.Header.Set("X-Real-IP", "203.0.113.9")
		rec := testutil.NewRecorder()
		h.HandleSubmit(rec.ResponseRecorder, req)
		rec.AssertStatus(t, http.StatusCreated)
	}

	req := testutil.NewJSONRequest(t, "POST", "/contact", body)
	req.Header.Set("X-Real-IP", "203.0.113.9")
	rec := testutil.NewRecorder()
	h.HandleSubmit(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusTooManyRequests)

	// Other clients are unaffected.
	req = testutil.NewJSONRequest(t, "POST", "/contact", body)
	req.Header.Set("X-Real-IP", "198.51.100.4")
	rec = testutil.NewRecorder()
	h.HandleSubmit(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusCreated)
}

func TestServeList_AdminOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := contact.NewHandler(db, nil, "", zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Grace Njeri")
	treasurer := fixtures.CreateTreasurer(ctx, "Joseph Mwangi")
	fixtures.CreateInquiry(ctx, "Wanjiru Kamau", "new_membership")
	fixtures.CreateInquiry(ctx, "Otieno Okoth", "support")

	req := testutil.NewAuthenticatedRequest("GET", "/contact", treasurer)
	rec := testutil.NewRecorder()
	h.ServeList(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)

	req = testutil.NewAuthenticatedRequest("GET", "/contact", admin)
	rec = testutil.NewRecorder()
	h.ServeList(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		Inquiries []models.ContactInquiry `json:"inquiries"`
	}
	rec.DecodeJSON(t, &body)
	if len(body.Inquiries) != 2 {
		t.Errorf("inquiries: got %d, want 2", len(body.Inquiries))
	}
}

// mailRecorder captures notification sends without an SMTP server.
type mailRecorder struct {
	sent []mailer.Email
	err  error
}

func (m *mailRecorder) Send(ctx context.Context, e mailer.Email) error {
	m.sent = append(m.sent, e)
	return m.err
}

func TestHandleSubmit_NotifiesAdmins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mail := &mailRecorder{}
	h := contact.NewHandler(db, mail, "admins@wekeza.example", zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/contact", map[string]string{
		"name":    "Wanjiru Kamau",
		"email":   "wanjiru@example.com",
		"reason":  "support",
		"message": "My contribution for May is missing.",
	})
	rec := testutil.NewRecorder()

	h.HandleSubmit(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)
	if len(mail.sent) != 1 {
		t.Fatalf("notifications sent: got %d, want 1", len(mail.sent))
	}
	msg := mail.sent[0]
	if len(msg.To) != 1 || msg.To[0] != "admins@wekeza.example" {
		t.Errorf("recipients: got %v", msg.To)
	}
	if !strings.Contains(msg.Subject, "support") || !strings.Contains(msg.Subject, "Wanjiru Kamau") {
		t.Errorf("subject %q should name the reason and sender", msg.Subject)
	}
	if !strings.Contains(msg.TextBody, "My contribution for May is missing.") {
		t.Errorf("text body should carry the message, got %q", msg.TextBody)
	}
}

func TestHandleSubmit_NotificationFailureIsSoft(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mail := &mailRecorder{err: errors.New("smtp unreachable")}
	h := contact.NewHandler(db, mail, "admins@wekeza.example", zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/contact", map[string]string{
		"name":    "Wanjiru Kamau",
		"email":   "wanjiru@example.com",
		"reason":  "support",
		"message": "Still stored even when mail is down.",
	})
	rec := testutil.NewRecorder()

	h.HandleSubmit(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)
	if len(mail.sent) != 1 {
		t.Fatalf("send attempts: got %d, want 1", len(mail.sent))
	}
}
