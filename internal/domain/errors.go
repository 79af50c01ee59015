package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// trip does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")
