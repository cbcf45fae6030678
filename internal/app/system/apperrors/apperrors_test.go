package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"duplicate monthly", ErrDuplicateMonthlyContribution, http.StatusConflict},
		{"duplicate joining fee", ErrDuplicateJoiningFee, http.StatusConflict},
		{"empty message", ErrEmptyMessage, http.StatusBadRequest},
		{"validation", ErrValidation, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("amount must be positive: %w", ErrValidation), http.StatusBadRequest},
		{"wrapped forbidden", fmt.Errorf("contribution visibility: %w", ErrForbidden), http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"nil-ish generic", errors.New(""), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.want {
				t.Errorf("Status(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrUnauthenticated, "unauthenticated"},
		{ErrForbidden, "forbidden"},
		{ErrNotFound, "not_found"},
		{ErrDuplicateMonthlyContribution, "duplicate_monthly_contribution"},
		{ErrDuplicateJoiningFee, "duplicate_joining_fee"},
		{ErrEmptyMessage, "empty_message"},
		{fmt.Errorf("wrap: %w", ErrValidation), "invalid_input"},
		{errors.New("boom"), "internal_error"},
	}

	for _, tt := range tests {
		if got := Code(tt.err); got != tt.want {
			t.Errorf("Code(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
