package post

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"Inkwell/internal/core/posts"
)

// maxBodyBytes caps post payloads at 1MB
const maxBodyBytes = 1 * 1024 * 1024

type messageResponse struct {
	Message string `json:"message"`
}

type validationResponse struct {
	Errors map[string]string `json:"errors"`
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers already sent; log only
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, messageResponse{Message: message})
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var valErr *posts.ValidationError

	switch {
	case errors.Is(err, posts.ErrNotFound):
		writeError(w, http.StatusNotFound, "Post not found")

	case errors.Is(err, posts.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")

	case errors.As(err, &valErr):
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: valErr.Fields})

	default:
		// Don't leak internal error details to clients
		log.WithError(err).Error("Unexpected error in post handler")
		writeError(w, http.StatusInternalServerError, "An internal error occurred")
	}
}

// decodeBody decodes a JSON request body into dst.
// It writes the error response itself and returns false when decoding fails.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var maxBytesErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &maxBytesErr):
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large (max 1MB)")
	case errors.As(err, &typeErr) && typeErr.Field != "":
		// Wrong JSON type for a known field, e.g. {"title": 42}
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Errors: map[string]string{typeErr.Field: "Must be a string"},
		})
	default:
		writeError(w, http.StatusBadRequest, "Invalid request body")
	}
	return false
}
