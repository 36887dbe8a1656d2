package jwt

import "time"

// Config holds bearer token settings.
type Config struct {
	SigningKey string        `env:"JWT_SIGNING_KEY,required"`            // SigningKey is the HS256 secret.
	Issuer     string        `env:"JWT_ISSUER" envDefault:"sessionkit"` // Issuer is written to and required in the iss claim.
	TTL        time.Duration `env:"JWT_TTL" envDefault:"1h"`            // TTL is the lifetime of issued tokens.
	Leeway     time.Duration `env:"JWT_LEEWAY" envDefault:"0s"`         // Leeway tolerates clock skew on exp/nbf/iat.
}

// NewFromConfig creates a Service from cfg.
func NewFromConfig(cfg Config) (*Service, error) {
	return NewFromString(cfg.SigningKey,
		WithIssuer(cfg.Issuer),
		WithTTL(cfg.TTL),
		WithLeeway(cfg.Leeway),
	)
}
