package core

import "errors"

// ErrNotFound is the sentinel for lookups that matched nothing. Repositories
// translate sql.ErrNoRows into it so callers never import database/sql.
var ErrNotFound = errors.New("not found")

// ErrStreamClosed is returned by the event loop when the producer side of
// the event channel goes away. It is fatal: the bot cannot make progress
// without a connected backend.
var ErrStreamClosed = errors.New("event stream closed")

// IsNotFoundError reports whether err is, or wraps, ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, ErrNotFound)
}
