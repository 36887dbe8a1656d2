package session

import (
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// readCookie returns the session ID carried by the request, or "" when the
// cookie is missing or fails signature verification.
func (m *Manager) readCookie(r *http.Request) string {
	var (
		id  string
		err error
	)
	if m.cookies.CanSign() {
		id, err = m.cookies.GetSigned(r, m.config.CookieName)
	} else {
		id, err = m.cookies.Get(r, m.config.CookieName)
	}
	if err != nil {
		return ""
	}
	return id
}

// writeCookie sets the session cookie on the response
func (m *Manager) writeCookie(w http.ResponseWriter, id string) error {
	var opts []cookie.Option
	if maxAge := m.config.cookieMaxAge(); maxAge != 0 {
		opts = append(opts, cookie.WithMaxAge(maxAge))
	}

	if m.cookies.CanSign() {
		return m.cookies.SetSigned(w, m.config.CookieName, id, opts...)
	}
	return m.cookies.Set(w, m.config.CookieName, id, opts...)
}
