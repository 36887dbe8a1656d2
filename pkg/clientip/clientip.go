package clientip

import (
	"net"
	"net/http"
	"strings"
)

// proxyHeaders are consulted in order by GetIP.
var proxyHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client's IP address from an HTTP request.
// Proxy headers are checked in the order CF-Connecting-IP, DO-Connecting-IP,
// X-Forwarded-For (first valid entry), X-Real-IP. RemoteAddr is the fallback.
func GetIP(r *http.Request) string {
	for _, h := range proxyHeaders {
		if ip := fromHeaderValue(r.Header.Get(h)); ip != "" {
			return ip
		}
	}
	return remoteIP(r)
}

// FromHeader returns the IP carried by a single trusted header, falling back
// to RemoteAddr when the header is missing or holds no valid address.
// Comma-separated values are scanned for the first valid IP.
func FromHeader(r *http.Request, header string) string {
	if ip := fromHeaderValue(r.Header.Get(header)); ip != "" {
		return ip
	}
	return remoteIP(r)
}

func fromHeaderValue(value string) string {
	if value == "" {
		return ""
	}
	for part := range strings.SplitSeq(value, ",") {
		if ip := parseIP(part); ip != "" {
			return ip
		}
	}
	return ""
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// parseIP validates and normalizes an IP address string.
// Returns empty string if the IP is invalid.
func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
