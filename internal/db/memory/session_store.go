package memory

import (
	"context"
	"sync"
	"time"

	"Inkwell/internal/core/sessions"
)

// SessionStore is an in-memory sessions.Store keyed by token
type SessionStore struct {
	sessions map[string]*sessions.Session
	mu       sync.RWMutex
}

// NewSessionStore creates a session store pre-loaded with the given sessions
func NewSessionStore(initial ...*sessions.Session) *SessionStore {
	s := &SessionStore{
		sessions: make(map[string]*sessions.Session),
	}
	for _, session := range initial {
		s.sessions[session.Token] = session
	}
	return s
}

// Add registers a session, replacing any existing session with the same token
func (s *SessionStore) Add(session *sessions.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
}

// FindByToken resolves a token to its session
func (s *SessionStore) FindByToken(ctx context.Context, token string) (*sessions.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[token]
	if !ok || session.Expired(time.Now()) {
		return nil, sessions.ErrNotFound
	}
	cp := *session
	return &cp, nil
}
