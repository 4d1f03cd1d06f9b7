package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Inkwell/internal/core/posts"
)

// UpdateHandler handles post update requests
type UpdateHandler struct {
	service posts.Service
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(service posts.Service) *UpdateHandler {
	return &UpdateHandler{
		service: service,
	}
}

// HandleUpdate handles PUT /posts/{id}
// Accepts a full or partial post; only title and content are applied
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req posts.UpdatePostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	post, err := h.service.UpdatePost(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}
