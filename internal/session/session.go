// Package session implements the server-side browser session: the
// authenticated username, the single-use previous-URL redirect target,
// and one-shot flash messages. State lives in Redis keyed by an opaque
// session ID; the browser only ever holds a signed token wrapping that
// ID. Nothing session-related is kept in process-global state — every
// request works on an explicit *Session loaded from the store.
package session

import "errors"

// Session is the request-scoped snapshot of one browser session.
// Username is empty for anonymous sessions (flash messages and the
// previous URL still work before login).
type Session struct {
	ID       string
	Username string
}

// Authenticated reports whether a username is bound to the session.
func (s *Session) Authenticated() bool {
	return s != nil && s.Username != ""
}

var (
	// ErrNotFound is returned when a session ID has no server-side
	// state (expired or never existed).
	ErrNotFound = errors.New("session not found")
)
