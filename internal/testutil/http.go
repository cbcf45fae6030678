package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

// WithUser adds a user to the request context for testing authenticated
// handlers. This bypasses the bearer-token middleware and injects the
// user directly.
func WithUser(r *http.Request, u models.User) *http.Request {
	return auth.WithTestUser(r, &u)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, u models.User) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), u)
}

// NewJSONRequest creates an HTTP request carrying a JSON body.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewAuthenticatedJSONRequest creates a JSON request with a user in context.
func NewAuthenticatedJSONRequest(t *testing.T, method, target string, body any, u models.User) *http.Request {
	t.Helper()
	return WithUser(NewJSONRequest(t, method, target, body), u)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t *testing.T, expected int) {
	t.Helper()
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d (body: %s)", r.Code, expected, r.Body.String())
	}
}

// AssertErrorCode checks the machine-readable code in a JSON error body.
func (r *ResponseRecorder) AssertErrorCode(t *testing.T, expected string) {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(r.Body.Bytes(), &body); err != nil {
		t.Errorf("response body is not a JSON error: %v (body: %s)", err, r.Body.String())
		return
	}
	if body.Error.Code != expected {
		t.Errorf("error code: got %q, want %q", body.Error.Code, expected)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t *testing.T, expected string) {
	t.Helper()
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q (body: %s)", expected, r.Body.String())
	}
}

// DecodeJSON unmarshals the response body into out.
func (r *ResponseRecorder) DecodeJSON(t *testing.T, out any) {
	t.Helper()
	if err := json.Unmarshal(r.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response body: %v (body: %s)", err, r.Body.String())
	}
}
