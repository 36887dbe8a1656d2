package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// DefaultHeader carries the request ID in both directions.
const DefaultHeader = "X-Request-ID"

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Middleware propagates the inbound request ID or generates a new one.
// The ID is echoed in the response header and stored in the request context.
// An empty header name means DefaultHeader.
func Middleware(header string) func(http.Handler) http.Handler {
	if header == "" {
		header = DefaultHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(header)
			if !IsValid(id) {
				id = uuid.NewString()
			}
			w.Header().Set(header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// IsValid reports whether id is safe to propagate: 1..128 characters of
// letters, digits, '-' or '_'.
func IsValid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
