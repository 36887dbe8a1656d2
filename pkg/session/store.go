package session

import (
	"context"
	"time"
)

// Store defines the persistence contract for session records.
//
// Values are opaque JSON documents produced by the engine. Set must fully
// replace any previous value stored under the same ID: backends that merge
// documents would keep flash messages that were consumed during the request.
type Store interface {
	// Get returns the value stored under id or ErrNotFound when it is absent or expired
	Get(ctx context.Context, id string) ([]byte, error)

	// Set replaces the value stored under id. A zero ttl means no expiry.
	Set(ctx context.Context, id string, value []byte, ttl time.Duration) error

	// Delete removes the value stored under id. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
}

// UserResolver is an optional interface for stores that can load the user
// referenced by a session's user ID.
type UserResolver interface {
	ResolveUser(ctx context.Context, userID string) (any, error)
}

// UserResolverFunc resolves the user for an authenticated session.
// It receives the session data so applications can cache profile fields there.
type UserResolverFunc func(ctx context.Context, userID string, data map[string]any) (any, error)

// TokenVerifierFunc verifies a bearer token and returns the authenticated user.
// A nil user with a nil error is treated as a failed verification.
type TokenVerifierFunc func(ctx context.Context, token string) (any, error)
