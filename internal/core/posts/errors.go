package posts

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when a post id is absent at lookup, update or delete time
	ErrNotFound = errors.New("post not found")

	// ErrUnauthorized is returned when an operation is attempted without an authenticated user
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError represents a payload that failed field-level checks
// Fields maps the JSON field name to a human-readable message
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation error (" + strings.Join(parts, "; ") + ")"
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) error {
	return &ValidationError{
		Fields: map[string]string{field: message},
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
