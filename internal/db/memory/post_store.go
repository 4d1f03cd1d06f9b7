package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"Inkwell/internal/core/posts"
)

// PostStore is an in-memory posts.Repository.
// Ids are sequential decimal strings starting at "1"; List order is insertion order.
type PostStore struct {
	posts  map[string]*posts.Post
	now    func() time.Time
	order  []string
	nextID int
	mu     sync.RWMutex
}

// NewPostStore creates an empty in-memory post store
func NewPostStore() *PostStore {
	return &PostStore{
		posts:  make(map[string]*posts.Post),
		now:    func() time.Time { return time.Now().UTC() },
		nextID: 1,
	}
}

// SetClock replaces the time source used for createdAt/updatedAt
func (s *PostStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// All returns copies of every post in insertion order
func (s *PostStore) All(ctx context.Context) ([]*posts.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*posts.Post, 0, len(s.order))
	for _, id := range s.order {
		p := *s.posts[id]
		result = append(result, &p)
	}
	return result, nil
}

// Find returns a copy of the post with the given id
func (s *PostStore) Find(ctx context.Context, id string) (*posts.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, posts.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// Create stores a new post and assigns its id and timestamps
func (s *PostStore) Create(ctx context.Context, req posts.CreatePostRequest, authorID string) (*posts.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := &posts.Post{
		ID:        strconv.Itoa(s.nextID),
		Title:     req.Title,
		Content:   req.Content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++

	s.posts[p.ID] = p
	s.order = append(s.order, p.ID)

	cp := *p
	return &cp, nil
}

// Update merges supplied fields into the stored post and refreshes updatedAt
func (s *PostStore) Update(ctx context.Context, id string, req posts.UpdatePostRequest) (*posts.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, posts.ErrNotFound
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	p.UpdatedAt = s.now()

	cp := *p
	return &cp, nil
}

// Delete removes a post
func (s *PostStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return posts.ErrNotFound
	}
	delete(s.posts, id)

	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
