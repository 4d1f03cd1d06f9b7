package sessions

import "errors"

// ErrNotFound is returned when a token does not resolve to a live session
var ErrNotFound = errors.New("session not found")
