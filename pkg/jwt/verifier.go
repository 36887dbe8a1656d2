package jwt

import (
	"context"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// SubjectResolver loads the user named by a token subject.
type SubjectResolver func(ctx context.Context, subject string) (any, error)

// Verifier adapts the service to session.WithTokenVerifier.
// With a nil resolve the verified *Claims are used as the session user.
func (s *Service) Verifier(resolve SubjectResolver) session.TokenVerifierFunc {
	return func(ctx context.Context, token string) (any, error) {
		claims, err := s.ParseClaims(token)
		if err != nil {
			return nil, err
		}
		if resolve == nil {
			return claims, nil
		}
		return resolve(ctx, claims.Subject)
	}
}
