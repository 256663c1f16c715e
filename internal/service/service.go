// Package service exposes the application over HTTP: JSON request handlers
// for auth, user, savings goal and circle operations, plus the error mapping
// from typed engine errors onto status codes.
package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/lwandle/moneycircles/internal/apperr"
	"github.com/lwandle/moneycircles/internal/storage"
)

// errorResponse is the JSON error body. Errors carries field-level detail
// for validation failures.
type errorResponse struct {
	Message string            `json:"message"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps typed errors onto HTTP status codes:
// ValidationError -> 400 with field detail, storage.ErrNotFound -> 404,
// everything else -> 500 with a generic message.
func writeError(w http.ResponseWriter, err error, message string) {
	var validation *apperr.ValidationError
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: message, Errors: validation.Fields})
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: message})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: message})
	}
}

// decodeBody parses the JSON request body into dst, rejecting unknown junk.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return false
	}
	return true
}

// pathID parses the {id} route segment.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid id"})
		return 0, false
	}
	return id, true
}
