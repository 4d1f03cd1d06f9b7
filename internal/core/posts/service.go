package posts

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type postService struct {
	repo Repository
}

// NewPostService creates a new post service backed by repo
func NewPostService(repo Repository) Service {
	return &postService{
		repo: repo,
	}
}

// ListPosts returns all posts as stored
func (s *postService) ListPosts(ctx context.Context) ([]*Post, error) {
	result, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if result == nil {
		result = []*Post{}
	}
	return result, nil
}

// GetPost retrieves a post by id
func (s *postService) GetPost(ctx context.Context, id string) (*Post, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	return s.find(ctx, id)
}

// CreatePost validates the payload, then asks the repository to persist it
func (s *postService) CreatePost(ctx context.Context, authorID string, req CreatePostRequest) (*Post, error) {
	if authorID == "" {
		return nil, ErrUnauthorized
	}

	if err := ValidateCreateRequest(req); err != nil {
		return nil, err
	}

	post, err := s.repo.Create(ctx, req, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	log.WithFields(log.Fields{"post_id": post.ID, "author_id": authorID}).Debug("post created")
	return post, nil
}

// UpdatePost confirms existence, validates supplied fields and merges them
func (s *postService) UpdatePost(ctx context.Context, id string, req UpdatePostRequest) (*Post, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	if err := ValidateUpdateRequest(req); err != nil {
		return nil, err
	}

	post, err := s.repo.Update(ctx, id, req)
	if err != nil {
		// The post can disappear between Find and Update
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update post %s: %w", id, err)
	}

	log.WithField("post_id", id).Debug("post updated")
	return post, nil
}

// DeletePost removes a post
func (s *postService) DeletePost(ctx context.Context, id string) error {
	if id == "" {
		return ErrNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete post %s: %w", id, err)
	}

	log.WithField("post_id", id).Debug("post deleted")
	return nil
}

func (s *postService) find(ctx context.Context, id string) (*Post, error) {
	post, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post %s: %w", id, err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}
