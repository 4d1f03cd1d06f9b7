package sessions

import "context"

// Store resolves session tokens.
// Implementations return ErrNotFound when no live session matches the token.
type Store interface {
	FindByToken(ctx context.Context, token string) (*Session, error)
}
