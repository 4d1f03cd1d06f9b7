package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Inkwell/internal/core/sessions"
)

// PostgresSessionStore implements sessions.Store using PostgreSQL
type PostgresSessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a new PostgreSQL-backed session store
func NewSessionStore(db *sql.DB) *PostgresSessionStore {
	return &PostgresSessionStore{db: db}
}

// FindByToken retrieves a live session by its token
func (s *PostgresSessionStore) FindByToken(ctx context.Context, token string) (*sessions.Session, error) {
	query := `
		SELECT id, user_id, token, created_at, expires_at
		FROM sessions
		WHERE token = $1
		  AND (expires_at IS NULL OR expires_at > NOW())
	`

	var session sessions.Session
	var expiresAt sql.NullTime
	err := s.db.QueryRowContext(ctx, query, token).Scan(
		&session.ID,
		&session.UserID,
		&session.Token,
		&session.CreatedAt,
		&expiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, sessions.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if expiresAt.Valid {
		t := expiresAt.Time
		session.ExpiresAt = &t
	}

	return &session, nil
}

// Save stores a session, replacing any existing session with the same token
// Used by the seed tool; sessions are otherwise issued by the login service
func (s *PostgresSessionStore) Save(ctx context.Context, session *sessions.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, token, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (token) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			expires_at = EXCLUDED.expires_at
	`

	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.Token,
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}
