package session

import (
	"fmt"
	"net/http"
)

// Manager ties the cookie codec to the store. It is the only type
// handlers and middleware need.
type Manager struct {
	store Store
	codec *Codec
}

func NewManager(store Store, codec *Codec) *Manager {
	return &Manager{store: store, codec: codec}
}

// Store exposes the underlying store for session state operations.
func (m *Manager) Store() Store {
	return m.store
}

// Load returns the session referenced by the request cookie, or nil
// when there is none (no cookie, bad signature, expired server state).
func (m *Manager) Load(r *http.Request) (*Session, error) {
	sid := m.codec.ReadCookie(r)
	if sid == "" {
		return nil, nil
	}
	sess, err := m.store.Get(r.Context(), sid)
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Ensure returns the request's session, creating an anonymous one and
// setting the cookie when none exists. Pages that queue flash messages
// or remember a previous URL before login need a session to write into.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) (*Session, error) {
	sess, err := m.Load(r)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		return sess, nil
	}

	sess, err = m.store.Create(r.Context())
	if err != nil {
		return nil, err
	}
	if err := m.codec.WriteCookie(w, sess.ID); err != nil {
		return nil, fmt.Errorf("write session cookie: %w", err)
	}
	return sess, nil
}
