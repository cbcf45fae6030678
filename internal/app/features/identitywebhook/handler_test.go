package identitywebhook_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/wekezagroup/wekeza/internal/app/features/identitywebhook"
	userstore "github.com/wekezagroup/wekeza/internal/app/store/users"
	"github.com/wekezagroup/wekeza/internal/app/system/webhooksig"
	"github.com/wekezagroup/wekeza/internal/domain/models"
	"github.com/wekezagroup/wekeza/internal/testutil"
)

const testSecret = "whsec_dGVzdC1zZWNyZXQta2V5LWZvci1obWFj"

func newHandler(t *testing.T) (*identitywebhook.Handler, *userstore.Store, *webhooksig.Verifier) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	verifier, err := webhooksig.NewVerifier(testSecret)
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}
	return identitywebhook.NewHandler(db, verifier, zap.NewNop()), userstore.New(db), verifier
}

func signedRequest(t *testing.T, v *webhooksig.Verifier, body string) *http.Request {
	t.Helper()
	now := time.Now()
	req := httptest.NewRequest("POST", "/webhooks/identity", bytes.NewReader([]byte(body)))
	req.Header.Set("svix-id", "msg_test")
	req.Header.Set("svix-timestamp", fmt.Sprintf("%d", now.Unix()))
	req.Header.Set("svix-signature", v.Sign("msg_test", now, []byte(body)))
	return req
}

func TestServe_UserCreated(t *testing.T) {
	h, users, verifier := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	body := `{
		"type": "user.created",
		"data": {
			"id": "user_abc123",
			"first_name": "Amina",
			"last_name": "Odhiambo",
			"image_url": "https://img.example.com/amina.png",
			"email_addresses": [{"email_address": "Amina@Example.com"}]
		}
	}`

	rec := httptest.NewRecorder()
	h.Serve(rec, signedRequest(t, verifier, body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	u, err := users.GetByExternalID(ctx, "user_abc123")
	if err != nil {
		t.Fatalf("GetByExternalID failed: %v", err)
	}
	if u == nil {
		t.Fatal("user row not created")
	}
	if u.Name != "Amina Odhiambo" {
		t.Errorf("Name: got %q", u.Name)
	}
	if u.Email != "amina@example.com" {
		t.Errorf("Email: got %q, want normalized", u.Email)
	}
	if u.Role != models.RoleMember {
		t.Errorf("Role: got %q, want default member", u.Role)
	}
}

func TestServe_UserUpdated_KeepsRole(t *testing.T) {
	h, users, verifier := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created := `{"type":"user.created","data":{"id":"user_abc123","first_name":"Amina","last_name":"Odhiambo","email_addresses":[{"email_address":"amina@example.com"}]}}`
	rec := httptest.NewRecorder()
	h.Serve(rec, signedRequest(t, verifier, created))
	if rec.Code != http.StatusOK {
		t.Fatalf("create delivery failed: %d", rec.Code)
	}

	u, err := users.GetByExternalID(ctx, "user_abc123")
	if err != nil || u == nil {
		t.Fatalf("user not found after create: %v", err)
	}
	if err := users.UpdateRole(ctx, u.ID, models.RoleTreasurer); err != nil {
		t.Fatalf("UpdateRole failed: %v", err)
	}

	updated := `{"type":"user.updated","data":{"id":"user_abc123","first_name":"Amina","last_name":"Kiprop","email_addresses":[{"email_address":"amina@example.com"}]}}`
	rec = httptest.NewRecorder()
	h.Serve(rec, signedRequest(t, verifier, updated))
	if rec.Code != http.StatusOK {
		t.Fatalf("update delivery failed: %d", rec.Code)
	}

	u, err = users.GetByExternalID(ctx, "user_abc123")
	if err != nil || u == nil {
		t.Fatalf("user not found after update: %v", err)
	}
	if u.Name != "Amina Kiprop" {
		t.Errorf("Name after update: got %q", u.Name)
	}
	if u.Role != models.RoleTreasurer {
		t.Errorf("Role after update: got %q, provider events must not touch roles", u.Role)
	}
}

func TestServe_UserDeleted(t *testing.T) {
	h, users, verifier := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created := `{"type":"user.created","data":{"id":"user_gone","first_name":"Brief","last_name":"Member","email_addresses":[]}}`
	rec := httptest.NewRecorder()
	h.Serve(rec, signedRequest(t, verifier, created))
	if rec.Code != http.StatusOK {
		t.Fatalf("create delivery failed: %d", rec.Code)
	}

	deleted := `{"type":"user.deleted","data":{"id":"user_gone"}}`
	rec = httptest.NewRecorder()
	h.Serve(rec, signedRequest(t, verifier, deleted))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete delivery failed: %d", rec.Code)
	}

	u, err := users.GetByExternalID(ctx, "user_gone")
	if err != nil {
		t.Fatalf("GetByExternalID failed: %v", err)
	}
	if u != nil {
		t.Error("user row still present after deletion event")
	}

	// Deletions for identities that never signed in are acknowledged.
	unknown := `{"type":"user.deleted","data":{"id":"user_never_seen"}}`
	rec = httptest.NewRecorder()
	h.Serve(rec, signedRequest(t, verifier, unknown))
	if rec.Code != http.StatusOK {
		t.Errorf("unknown-identity deletion: status = %d, want 200", rec.Code)
	}
}

func TestServe_BadSignature(t *testing.T) {
	h, _, verifier := newHandler(t)

	body := `{"type":"user.created","data":{"id":"user_abc123"}}`
	req := signedRequest(t, verifier, body)
	req.Header.Set("svix-signature", "v1,Zm9yZ2VkCg==")

	rec := httptest.NewRecorder()
	h.Serve(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestServe_UnknownEventType(t *testing.T) {
	h, _, verifier := newHandler(t)

	body := `{"type":"session.created","data":{"id":"sess_1"}}`
	rec := httptest.NewRecorder()
	h.Serve(rec, signedRequest(t, verifier, body))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (acknowledged and skipped)", rec.Code)
	}
}
