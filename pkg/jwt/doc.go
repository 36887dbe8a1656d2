// Package jwt issues and verifies HS256 bearer tokens with
// github.com/golang-jwt/jwt/v5.
//
// Service.Issue creates a token for a subject (usually a user ID) with an
// issuer, issued-at, expiry and random token ID. Parse accepts only HS256,
// checks the time-based claims with optional leeway and enforces the issuer.
// Library errors are mapped to this package's sentinels, so callers can test
// for ErrExpiredToken or ErrInvalidSignature with errors.Is.
//
// Verifier plugs the service into the session middleware's stateless mode:
//
//	tokens, err := jwt.NewFromConfig(cfg)
//	if err != nil {
//		return err
//	}
//	sessions := session.New(store, session.WithTokenVerifier(tokens.Verifier(loadUser)))
package jwt
