package posts

import (
	"time"
)

// Post represents a blog post
// Posts are created and mutated only by the Repository; the service never edits one in place
type Post struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	AuthorID  string    `json:"authorId" db:"author_id"`
}

// CreatePostRequest represents input for creating a new post
// The author is never taken from the payload; it comes from the authenticated session
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatePostRequest represents a full or partial post update
// Nil fields keep their stored value. Other post fields sent by clients
// (id, authorId, timestamps) are ignored.
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// DeletePostResponse is returned after a successful delete
type DeletePostResponse struct {
	Message string `json:"message"`
}
