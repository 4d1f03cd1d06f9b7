package posts

import "context"

// Service defines the business logic interface for posts
// Authentication happens before the service is called; authorID is the session's user id
type Service interface {
	// ListPosts returns every stored post
	ListPosts(ctx context.Context) ([]*Post, error)

	// GetPost returns a single post or ErrNotFound
	GetPost(ctx context.Context, id string) (*Post, error)

	// CreatePost validates the payload and stores a new post owned by authorID
	CreatePost(ctx context.Context, authorID string, req CreatePostRequest) (*Post, error)

	// UpdatePost confirms the post exists, validates supplied fields and merges them
	UpdatePost(ctx context.Context, id string, req UpdatePostRequest) (*Post, error)

	// DeletePost removes a post, returning ErrNotFound when it does not exist
	DeletePost(ctx context.Context, id string) error
}

// Repository defines the data access interface for posts
// Every method that addresses a single post returns ErrNotFound when the id is absent
type Repository interface {
	// All returns every post; an empty store yields an empty, non-nil slice
	All(ctx context.Context) ([]*Post, error)

	// Find retrieves a post by id
	Find(ctx context.Context, id string) (*Post, error)

	// Create assigns id, createdAt and updatedAt and persists the post
	Create(ctx context.Context, req CreatePostRequest, authorID string) (*Post, error)

	// Update merges the non-nil fields of req and refreshes updatedAt
	Update(ctx context.Context, id string, req UpdatePostRequest) (*Post, error)

	// Delete removes a post by id
	Delete(ctx context.Context, id string) error
}
