package sessions

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cachingStore wraps a base store with a bounded, time-limited cache of resolved sessions.
// Only successful lookups are cached so a freshly issued token is visible immediately.
type cachingStore struct {
	base  Store
	cache *expirable.LRU[string, *Session]
	now   func() time.Time
}

// NewCachingStore wraps base with an LRU cache holding up to size sessions for ttl.
// A size of zero or less disables caching and returns base unchanged.
func NewCachingStore(base Store, size int, ttl time.Duration) Store {
	if size <= 0 {
		return base
	}
	return &cachingStore{
		base:  base,
		cache: expirable.NewLRU[string, *Session](size, nil, ttl),
		now:   time.Now,
	}
}

// FindByToken checks the cache first, then falls back to the base store
func (s *cachingStore) FindByToken(ctx context.Context, token string) (*Session, error) {
	if cached, ok := s.cache.Get(token); ok {
		if !cached.Expired(s.now()) {
			return cached, nil
		}
		s.cache.Remove(token)
		return nil, ErrNotFound
	}

	session, err := s.base.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	s.cache.Add(token, session)
	return session, nil
}
