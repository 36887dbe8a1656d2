package session

import (
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// Middleware attaches a session to every request.
//
// Requests carrying a valid bearer token (when a verifier is configured) get
// a stateless session and bypass storage entirely. Otherwise the session is
// loaded from the cookie, the handler runs against a buffered response, and
// the session is persisted and its cookie set before the response is sent.
// If the handler panics, nothing is persisted.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if st, ok := m.authenticateToken(r); ok {
			next.ServeHTTP(w, r.WithContext(WithState(r.Context(), st)))
			return
		}

		ctx := r.Context()
		st, err := m.load(ctx, r)
		if err != nil {
			m.fail(w, r, err)
			return
		}

		buf := newBufferedWriter(w)
		next.ServeHTTP(buf, r.WithContext(WithState(ctx, st)))

		// The session cookie joins the buffered headers; on failure both are dropped.
		if err := m.save(ctx, buf, r, st); err != nil {
			m.fail(w, r, err)
			return
		}

		if err := buf.flushTo(w); err != nil {
			m.logger.DebugContext(ctx, "session: failed to write response", logger.Error(err))
		}
	})
}

// RequireAuth is a middleware that requires an authenticated session.
// It must be mounted inside Middleware.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st, ok := FromContext(r.Context())
		if !ok || !st.IsAuthenticated() {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireGuest is a middleware that rejects authenticated sessions, e.g. for login pages.
func (m *Manager) RequireGuest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if st, ok := FromContext(r.Context()); ok && st.IsAuthenticated() {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
