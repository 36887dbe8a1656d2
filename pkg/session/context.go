package session

import "context"

type stateContextKey struct{}

// WithState adds the session state to the context
func WithState(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, stateContextKey{}, st)
}

// FromContext retrieves the session state from the context
func FromContext(ctx context.Context) (*State, bool) {
	st, ok := ctx.Value(stateContextKey{}).(*State)
	return st, ok && st != nil
}

// MustFromContext retrieves the session state from the context or panics
func MustFromContext(ctx context.Context) *State {
	st, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return st
}

// UserIDFromContext retrieves the authenticated user ID from the session in context
func UserIDFromContext(ctx context.Context) (string, bool) {
	st, ok := FromContext(ctx)
	if !ok || st.UserID() == "" {
		return "", false
	}
	return st.UserID(), true
}

// UserFromContext returns the resolved user as T.
// The second value is false when there is no user or it has a different type.
func UserFromContext[T any](ctx context.Context) (T, bool) {
	st, ok := FromContext(ctx)
	if !ok {
		var zero T
		return zero, false
	}
	user, ok := st.User().(T)
	return user, ok
}
