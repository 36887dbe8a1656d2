// Package session attaches a persistent session to every request passing
// through a net/http middleware.
//
// A Manager loads the session record named by the session cookie from a
// Store, exposes it to handlers as a *State, and persists it once the handler
// returns. The handler writes into a buffer, so the record is stored and the
// cookie set before any byte of the response reaches the client. If the store
// fails, the buffered response is dropped and the error handler (500 by
// default) answers instead. The buffer does not implement http.Flusher, so
// streaming responses must be served outside the middleware.
//
// # Usage
//
//	store := session.NewMemoryStore(time.Minute)
//	defer store.Close()
//
//	sessions := session.New(store,
//		session.WithExpiry(24*time.Hour),
//		session.WithTrackUserAgent(true),
//	)
//
//	mux.Handle("/", sessions.Middleware(handler))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		st := session.MustFromContext(r.Context())
//		n, _ := st.GetInt("visits")
//		st.Set("visits", n+1)
//	}
//
// # Flash messages
//
// SetFlash stages a value for the next request only. In that next request
// Flash returns it as many times as needed and marks it consumed; consumed
// values are dropped when the session is saved, unread values survive.
//
// # Login, logout and rotation
//
// Login and Logout delete the current record and move the session to a fresh
// random ID. RequestRotation does the same at the end of the request while
// keeping data. Handlers may also call SetID; the value they pass is ignored
// and a generated ID is used instead.
//
// # Stateless requests
//
// With WithTokenVerifier, requests carrying a valid bearer token get a
// stateless State holding the verified user. Such requests never touch the
// store and never receive a cookie.
//
// # Stores
//
// Any type implementing Store can back the manager. Set must fully replace
// the stored value. MemoryStore ships with this package; Redis, MongoDB and
// PostgreSQL adapters live in sibling packages. A store that also implements
// UserResolver resolves the user of authenticated sessions unless
// WithUserResolver is given.
//
// Records are JSON documents tagged with a format version. Values written by
// older releases (untagged, or flat objects holding only data) are migrated
// when read.
package session
