package middleware

import (
	"context"
	"net/http"

	"linkup/internal/httputil"
	"linkup/internal/session"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// SessionKey is the context key for the request's session.
	SessionKey contextKey = "session"
)

// WithSession loads (or lazily creates) the browser session and attaches
// it to the request context. Every page handler below this middleware
// can assume a session exists — possibly anonymous.
func WithSession(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := manager.Ensure(w, r)
			if err != nil {
				httputil.WriteInternalError(w)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth gates a route on a logged-in session. Anonymous visitors
// are redirected to the login page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := GetSession(r.Context())
		if !ok || !sess.Authenticated() {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RememberURL records the current request URI as the session's
// previous URL, so a mutating action started from this page can
// redirect back to it. Applied to GET page routes that host action
// forms.
func RememberURL(store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess, ok := GetSession(r.Context()); ok {
				// Best-effort: losing the redirect target only costs the
				// fallback to the home feed.
				_ = store.SetPreviousURL(r.Context(), sess.ID, r.URL.RequestURI())
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetSession extracts the session from the request context.
func GetSession(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(*session.Session)
	return sess, ok
}
