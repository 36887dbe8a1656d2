package jwt

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the lifetime of tokens issued without WithTTL.
const DefaultTTL = time.Hour

// Claims are the claims carried by tokens issued with Service.Issue.
type Claims struct {
	gojwt.RegisteredClaims
}

// Service issues and verifies HS256 tokens.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	leeway     time.Duration
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithIssuer sets the iss claim written by Issue and required by Parse.
func WithIssuer(issuer string) Option {
	return func(s *Service) {
		s.issuer = issuer
	}
}

// WithTTL sets the lifetime of issued tokens.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLeeway tolerates clock skew when validating time-based claims.
func WithLeeway(leeway time.Duration) Option {
	return func(s *Service) {
		s.leeway = leeway
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a new token service with the provided signing key.
func New(signingKey []byte, opts ...Option) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}

	s := &Service{
		signingKey: signingKey,
		ttl:        DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewFromString is New for string keys.
func NewFromString(signingKey string, opts ...Option) (*Service, error) {
	return New([]byte(signingKey), opts...)
}

// Issue creates a token for subject with iss, iat, exp and a random jti.
func (s *Service) Issue(subject string) (string, error) {
	if subject == "" {
		return "", ErrMissingSubject
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return s.Generate(claims)
}

// Generate signs arbitrary claims.
func (s *Service) Generate(claims gojwt.Claims) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}
	return gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

// Parse verifies token and decodes its claims into claims.
// Only HS256 is accepted; the issuer is enforced when configured.
func (s *Service) Parse(token string, claims gojwt.Claims) error {
	if claims == nil {
		return ErrMissingClaims
	}

	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithTimeFunc(s.now),
		gojwt.WithIssuedAt(),
	}
	if s.leeway > 0 {
		opts = append(opts, gojwt.WithLeeway(s.leeway))
	}
	if s.issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.issuer))
	}

	_, err := gojwt.NewParser(opts...).ParseWithClaims(token, claims, func(*gojwt.Token) (any, error) {
		return s.signingKey, nil
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

// ParseClaims parses a token issued by Issue.
func (s *Service) ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if err := s.Parse(token, claims); err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenExpired):
		return errors.Join(ErrExpiredToken, err)
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return errors.Join(ErrInvalidSignature, err)
	case errors.Is(err, gojwt.ErrTokenUnverifiable):
		return errors.Join(ErrUnexpectedSigningMethod, err)
	default:
		return errors.Join(ErrInvalidToken, err)
	}
}
