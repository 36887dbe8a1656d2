// Package clientip extracts the client IP address from HTTP requests.
//
// GetIP walks a fixed chain of proxy headers (CF-Connecting-IP,
// DO-Connecting-IP, X-Forwarded-For, X-Real-IP) before falling back to
// RemoteAddr. FromHeader trusts exactly one configured header, which is what
// the session middleware uses when an IP header is configured.
//
// Values are validated with net.ParseIP and normalized, so callers never see
// ports, brackets or garbage from spoofed headers.
//
//	r.Use(clientip.Middleware("X-Real-IP"))
//	ip := clientip.GetIPFromContext(r.Context())
package clientip
