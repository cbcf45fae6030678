// Package apperrors defines the error taxonomy shared by stores, policies,
// and HTTP handlers. Stores return these sentinels (usually wrapped with
// context via fmt.Errorf and %w); the respond package maps them to HTTP
// status codes at the boundary.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated means no resolvable identity was present.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden means the caller is authenticated but fails a role or
	// ownership check.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means a referenced row is absent.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateMonthlyContribution means a monthly row already exists for
	// the (user, month) pair.
	ErrDuplicateMonthlyContribution = errors.New("a monthly contribution already exists for this member and month")

	// ErrDuplicateJoiningFee means the user already has a joining-fee row.
	ErrDuplicateJoiningFee = errors.New("this member has already paid the joining fee")

	// ErrEmptyMessage rejects empty or whitespace-only message bodies.
	ErrEmptyMessage = errors.New("message cannot be empty")

	// ErrValidation covers other rejected input (bad amounts, bad enums,
	// malformed ids). Wrap it with a specific description.
	ErrValidation = errors.New("invalid input")
)

// Code returns the stable machine-readable code for err.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicateMonthlyContribution):
		return "duplicate_monthly_contribution"
	case errors.Is(err, ErrDuplicateJoiningFee):
		return "duplicate_joining_fee"
	case errors.Is(err, ErrEmptyMessage):
		return "empty_message"
	case errors.Is(err, ErrValidation):
		return "invalid_input"
	}
	return "internal_error"
}

// Status returns the HTTP status for err.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateMonthlyContribution), errors.Is(err, ErrDuplicateJoiningFee):
		return http.StatusConflict
	case errors.Is(err, ErrEmptyMessage), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
