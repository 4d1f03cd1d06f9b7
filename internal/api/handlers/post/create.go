package post

import (
	"net/http"

	"Inkwell/internal/api/middleware"
	"Inkwell/internal/core/posts"
)

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{
		service: service,
	}
}

// HandleCreate handles POST /posts
// Body: {"title": "...", "content": "..."}; the author is the authenticated user
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	// 1. Extract authenticated user id (injected by auth middleware)
	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	// 2. Parse request body
	var req posts.CreatePostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// 3. Validate and persist
	post, err := h.service.CreatePost(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}
