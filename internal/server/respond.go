package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hearthapp/hearth/internal/auth"
	"github.com/hearthapp/hearth/internal/storage"
)

// errBadRequest marks validation failures that map to 400.
var errBadRequest = errors.New("invalid request")

// badRequestf builds a client-visible validation error.
func badRequestf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errBadRequest}, args...)...)
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// respondError maps domain errors onto HTTP status codes and writes a
// JSON error body. Unrecognized errors become 500 with a generic
// message so internals do not leak.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, storage.ErrNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, auth.ErrUsernameExists), errors.Is(err, auth.ErrEmailExists):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, errBadRequest):
		status, message = http.StatusBadRequest, err.Error()
	default:
		slog.Error("Request failed", "error", err)
	}

	respondJSON(w, status, errorBody{Error: message})
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequestf("bad JSON body: %v", err)
	}
	return nil
}
