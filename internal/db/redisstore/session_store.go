// Package redisstore provides a Redis-backed session store
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"Inkwell/internal/core/sessions"
)

const keyPrefix = "session:"

// SessionStore implements sessions.Store on top of Redis.
// Each session is a JSON value under "session:<token>", expiring with the session.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a session store using an existing client
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Connect parses a redis:// URL, verifies connectivity and returns a store
func Connect(ctx context.Context, url string) (*SessionStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewSessionStore(client), nil
}

// FindByToken resolves a token to its session
func (s *SessionStore) FindByToken(ctx context.Context, token string) (*sessions.Session, error) {
	raw, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sessions.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session sessions.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	if session.Expired(time.Now()) {
		return nil, sessions.ErrNotFound
	}

	return &session, nil
}

// Save stores a session; sessions with an expiry get a matching key TTL
func (s *SessionStore) Save(ctx context.Context, session *sessions.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	var ttl time.Duration
	if session.ExpiresAt != nil {
		ttl = time.Until(*session.ExpiresAt)
		if ttl <= 0 {
			return fmt.Errorf("session %s already expired", session.ID)
		}
	}

	if err := s.client.Set(ctx, keyPrefix+session.Token, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Close releases the underlying client
func (s *SessionStore) Close() error {
	return s.client.Close()
}
