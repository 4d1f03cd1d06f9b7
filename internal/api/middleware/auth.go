package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"Inkwell/internal/core/sessions"
)

// Context keys for storing session information
type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	SessionKey contextKey = "session"
)

// SessionAuthMiddleware enforces session-token authentication for protected routes
// The token is the raw Authorization header value; a "Bearer " prefix is tolerated
type SessionAuthMiddleware struct {
	store sessions.Store
}

// NewSessionAuthMiddleware creates a new session auth middleware
func NewSessionAuthMiddleware(store sessions.Store) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{
		store: store,
	}
}

// RequireAuth middleware ensures the request carries a token for a live session
// If not authenticated, returns 401 before the next handler runs
// If authenticated, injects the session and its user id into context
func (m *SessionAuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			logAuthFailure(r, "missing_token", nil)
			writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		session, err := m.store.FindByToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, sessions.ErrNotFound) {
				logAuthFailure(r, "unknown_token", nil)
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			logAuthFailure(r, "store_error", err)
			writeAuthError(w, http.StatusInternalServerError, "An internal error occurred")
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, session)
		ctx = context.WithValue(ctx, UserIDKey, session.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the authenticated user's id from the request context
// Returns empty string if not authenticated
func GetUserID(r *http.Request) string {
	id, _ := r.Context().Value(UserIDKey).(string)
	return id
}

// GetSession extracts the resolved session from the request context
// Returns nil if not authenticated
func GetSession(r *http.Request) *sessions.Session {
	session, _ := r.Context().Value(SessionKey).(*sessions.Session)
	return session
}

// SetTestUserID sets the user id in the context for testing purposes
// This function should ONLY be used in tests to mock authenticated users
func SetTestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func extractToken(r *http.Request) string {
	token := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(token) > len("Bearer ") && strings.EqualFold(token[:len("Bearer ")], "Bearer ") {
		token = strings.TrimSpace(token[len("Bearer "):])
	}
	return token
}

func logAuthFailure(r *http.Request, failure string, err error) {
	entry := log.WithFields(log.Fields{
		"type":   failure,
		"ip":     r.RemoteAddr,
		"method": r.Method,
		"path":   r.URL.Path,
	})
	if err != nil {
		entry.WithError(err).Error("[AUTH_FAILURE]")
		return
	}
	entry.Warn("[AUTH_FAILURE]")
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"message": message}); err != nil {
		log.Printf("Failed to write auth error response: %v", err)
	}
}
