package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Inkwell/internal/core/posts"
)

// DeleteHandler handles post deletion requests
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new handler for deleting posts
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{
		service: service,
	}
}

// HandleDelete handles DELETE /posts/{id}
// Response: {"message": "Post deleted"}
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, posts.DeletePostResponse{Message: "Post deleted"})
}
