package sessions

import "time"

// Session represents an authenticated user session.
// Sessions are issued by the login flow and are only looked up here, never mutated.
type Session struct {
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	ID        string     `json:"id" db:"id"`
	UserID    string     `json:"userId" db:"user_id"`
	Token     string     `json:"token" db:"token"`
}

// Expired reports whether the session has an expiry that is not after now
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !s.ExpiresAt.After(now)
}
