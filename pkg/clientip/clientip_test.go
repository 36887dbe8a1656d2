package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sessionkit/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name: "CF-Connecting-IP first",
			headers: map[string]string{
				"CF-Connecting-IP": "203.0.113.195",
				"DO-Connecting-IP": "198.51.100.178",
				"X-Forwarded-For":  "192.168.1.1",
			},
			remoteAddr: "172.16.0.1:54321",
			expected:   "203.0.113.195",
		},
		{
			name: "DO-Connecting-IP before forwarded",
			headers: map[string]string{
				"DO-Connecting-IP": "198.51.100.178",
				"X-Forwarded-For":  "192.168.1.1, 10.0.0.1",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name:       "first valid X-Forwarded-For entry",
			headers:    map[string]string{"X-Forwarded-For": "garbage, 198.51.100.178, 203.0.113.195"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name:       "X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "192.168.1.1"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "192.168.1.1",
		},
		{
			name:       "invalid header falls back to RemoteAddr",
			headers:    map[string]string{"CF-Connecting-IP": "not-an-ip"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "10.0.0.1",
		},
		{
			name:       "IPv6 RemoteAddr",
			remoteAddr: "[2001:db8::1]:8080",
			expected:   "2001:db8::1",
		},
		{
			name:       "RemoteAddr without port",
			remoteAddr: "192.0.2.10",
			expected:   "192.0.2.10",
		},
		{
			name:       "garbage RemoteAddr",
			remoteAddr: "nonsense",
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, clientip.GetIP(req))
		})
	}
}

func TestFromHeader(t *testing.T) {
	t.Parallel()

	t.Run("uses only the configured header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("CF-Connecting-IP", "203.0.113.195")
		req.Header.Set("X-Client-IP", "198.51.100.7")
		assert.Equal(t, "198.51.100.7", clientip.FromHeader(req, "X-Client-IP"))
	})

	t.Run("missing header falls back to RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("CF-Connecting-IP", "203.0.113.195")
		assert.Equal(t, "10.0.0.1", clientip.FromHeader(req, "X-Client-IP"))
	})

	t.Run("list value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", " 2001:db8::2 , 10.0.0.1")
		assert.Equal(t, "2001:db8::2", clientip.FromHeader(req, "X-Forwarded-For"))
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.GetIPFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Real-IP", "192.168.1.9")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "192.168.1.9", got)

	h = clientip.Middleware("X-Client-IP")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.GetIPFromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "10.0.0.1", got)
}
