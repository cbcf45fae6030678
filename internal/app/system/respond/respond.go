// Package respond writes JSON API responses and maps domain errors onto the
// wire. Handlers never set status codes for failures themselves; they hand
// the error here so the taxonomy stays in one place.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"go.uber.org/zap"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes v with 200.
func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

// Created writes v with 201.
func Created(w http.ResponseWriter, v any) {
	JSON(w, http.StatusCreated, v)
}

// Error maps err through the apperrors taxonomy and writes the JSON error
// body. Internal errors are logged with their cause but surface a generic
// message; taxonomy errors surface their own text.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	status := apperrors.Status(err)
	code := apperrors.Code(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
		msg = "an internal error occurred"
	}

	JSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}
