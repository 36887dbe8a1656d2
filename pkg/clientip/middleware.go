package clientip

import "net/http"

// Middleware stores the client IP in the request context.
// An empty header resolves with GetIP, otherwise only that header is trusted.
func Middleware(header string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := GetIP(r)
			if header != "" {
				ip = FromHeader(r, header)
			}
			next.ServeHTTP(w, r.WithContext(SetIPToContext(r.Context(), ip)))
		})
	}
}
