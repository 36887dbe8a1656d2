package session

import (
	"log/slog"
	"net/http"
	"time"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// ErrorHandlerFunc writes the response when the session cannot be loaded or saved.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

// WithConfig sets custom configuration
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithCookieName sets the session cookie name
func WithCookieName(name string) Option {
	return func(m *Manager) {
		m.config.CookieName = name
	}
}

// WithCookiePath sets the cookie path. Empty means "/".
func WithCookiePath(path string) Option {
	return func(m *Manager) {
		m.config.CookiePath = path
	}
}

// WithCookieDomain sets the cookie domain (host-only when empty)
func WithCookieDomain(domain string) Option {
	return func(m *Manager) {
		m.config.CookieDomain = domain
	}
}

// WithCookieSecure sets the Secure attribute of the session cookie
func WithCookieSecure(secure bool) Option {
	return func(m *Manager) {
		m.config.CookieSecure = secure
	}
}

// WithCookieHTTPOnly sets the HttpOnly attribute of the session cookie
func WithCookieHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) {
		m.config.CookieHTTPOnly = httpOnly
	}
}

// WithCookieSameSite sets the SameSite attribute of the session cookie
func WithCookieSameSite(sameSite http.SameSite) Option {
	return func(m *Manager) {
		m.config.CookieSameSite = sameSite
	}
}

// WithCookieMaxAge sets the cookie Max-Age in seconds, overriding the value derived from expiry
func WithCookieMaxAge(seconds int) Option {
	return func(m *Manager) {
		m.config.CookieMaxAge = seconds
	}
}

// WithCookieSecrets signs the session cookie value with the given secrets (first one signs)
func WithCookieSecrets(secrets ...string) Option {
	return func(m *Manager) {
		m.config.CookieSecrets = secrets
	}
}

// WithExpiry sets the record TTL and the default cookie lifetime
func WithExpiry(expiry time.Duration) Option {
	return func(m *Manager) {
		m.config.Expiry = expiry
	}
}

// WithTrackUserAgent invalidates sessions presented with a different User-Agent
func WithTrackUserAgent(enabled bool) Option {
	return func(m *Manager) {
		m.config.TrackUserAgent = enabled
	}
}

// WithTrackIP stores the client IP with each record.
// An empty header uses the default proxy header chain.
func WithTrackIP(header string) Option {
	return func(m *Manager) {
		m.config.TrackIP = true
		m.config.IPHeader = header
	}
}

// WithUserResolver sets the function used to load the user of an authenticated session.
// It takes precedence over a store implementing UserResolver.
func WithUserResolver(fn UserResolverFunc) Option {
	return func(m *Manager) {
		m.resolveUser = fn
	}
}

// WithTokenVerifier enables stateless bearer-token authentication
func WithTokenVerifier(fn TokenVerifierFunc) Option {
	return func(m *Manager) {
		m.verifyToken = fn
	}
}

// WithTokenHeader sets the header carrying bearer tokens
func WithTokenHeader(header string) Option {
	return func(m *Manager) {
		m.config.TokenHeader = header
	}
}

// WithTokenPrefix sets the prefix stripped from the token header.
// Empty means "Bearer "; use WithoutTokenPrefix to accept raw values.
func WithTokenPrefix(prefix string) Option {
	return func(m *Manager) {
		m.config.TokenPrefix = prefix
		m.config.RawToken = false
	}
}

// WithoutTokenPrefix uses the raw token header value
func WithoutTokenPrefix() Option {
	return func(m *Manager) {
		m.config.RawToken = true
	}
}

// WithLogger sets the logger used for session events
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithErrorHandler sets the handler invoked on store failures
func WithErrorHandler(fn ErrorHandlerFunc) Option {
	return func(m *Manager) {
		if fn != nil {
			m.errorHandler = fn
		}
	}
}

// WithIDGenerator replaces the session ID generator
func WithIDGenerator(fn func() (string, error)) Option {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// WithClock replaces the time source used for lastSeenAt
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}
