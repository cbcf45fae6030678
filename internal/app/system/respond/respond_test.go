package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/respond"
	"go.uber.org/zap"
)

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.OK(rec, map[string]int{"count": 3})

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}

	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["count"] != 3 {
		t.Errorf("count: got %d, want 3", body["count"])
	}
}

func TestError_Taxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"duplicate monthly", apperrors.ErrDuplicateMonthlyContribution, http.StatusConflict, "duplicate_monthly_contribution"},
		{"wrapped not found", fmt.Errorf("contribution abc: %w", apperrors.ErrNotFound), http.StatusNotFound, "not_found"},
		{"empty message", apperrors.ErrEmptyMessage, http.StatusBadRequest, "empty_message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond.Error(rec, zap.NewNop(), tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}

			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("code: got %q, want %q", body.Error.Code, tt.wantCode)
			}
			if body.Error.Message == "" {
				t.Error("expected a message")
			}
		})
	}
}

func TestError_InternalHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.Error(rec, zap.NewNop(), errors.New("connection reset by peer"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Message == "connection reset by peer" {
		t.Error("internal error cause should not leak to the client")
	}
	if body.Error.Code != "internal_error" {
		t.Errorf("code: got %q", body.Error.Code)
	}
}
