package session

import (
	"net/http"
	"time"
)

// Config holds session configuration
type Config struct {
	// CookieName is the name of the session cookie (default: "sessionId")
	CookieName     string        `env:"SESSION_COOKIE_NAME" envDefault:"sessionId"`
	CookiePath     string        `env:"SESSION_COOKIE_PATH" envDefault:"/"`
	CookieDomain   string        `env:"SESSION_COOKIE_DOMAIN" envDefault:""`
	CookieSecure   bool          `env:"SESSION_COOKIE_SECURE" envDefault:"true"`
	CookieHTTPOnly bool          `env:"SESSION_COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite http.SameSite `env:"SESSION_COOKIE_SAME_SITE" envDefault:"2"` // 2 = SameSiteLaxMode

	// CookieMaxAge is the cookie Max-Age in seconds. When set it wins over Expiry for the cookie.
	CookieMaxAge int `env:"SESSION_COOKIE_MAX_AGE" envDefault:"0"`

	// CookieSecrets enables signed cookie values when non-empty
	CookieSecrets []string `env:"SESSION_COOKIE_SECRETS" envSeparator:","`

	// Expiry is the record TTL in the store and the default cookie Max-Age (0 = no expiry)
	Expiry time.Duration `env:"SESSION_EXPIRY" envDefault:"0"`

	// TrackUserAgent binds a session to the User-Agent it was created with
	TrackUserAgent bool `env:"SESSION_TRACK_USER_AGENT" envDefault:"false"`

	// TrackIP stores the client IP with the record. It is never used to invalidate a session.
	TrackIP bool `env:"SESSION_TRACK_IP" envDefault:"false"`
	// IPHeader reads the client IP from a single header instead of the default proxy chain
	IPHeader string `env:"SESSION_IP_HEADER" envDefault:""`

	// TokenHeader carries bearer tokens in stateless mode
	TokenHeader string `env:"SESSION_TOKEN_HEADER" envDefault:"Authorization"`
	// TokenPrefix is stripped from the header value; ignored when RawToken is set
	TokenPrefix string `env:"SESSION_TOKEN_PREFIX" envDefault:"Bearer "`
	// RawToken uses the whole header value as the token
	RawToken bool `env:"SESSION_RAW_TOKEN" envDefault:"false"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName:     "sessionId",
		CookiePath:     "/",
		CookieSecure:   true,
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
		TokenHeader:    "Authorization",
		TokenPrefix:    "Bearer ",
	}
}

// cookieMaxAge returns the Max-Age to write: an explicit CookieMaxAge wins over Expiry.
func (c Config) cookieMaxAge() int {
	if c.CookieMaxAge != 0 {
		return c.CookieMaxAge
	}
	return int(c.Expiry / time.Second)
}

// NewFromConfig creates a new Manager from the provided Config.
// Empty CookieName, CookiePath, TokenHeader and TokenPrefix fall back to
// DefaultConfig values; the remaining zero values are used as given, so build
// cfg from DefaultConfig or config.Load rather than a bare literal.
func NewFromConfig(cfg Config, store Store, opts ...Option) *Manager {
	configOpts := []Option{
		WithConfig(cfg),
	}

	configOpts = append(configOpts, opts...)

	return New(store, configOpts...)
}
