package cookie_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

const (
	secretA = "this-is-a-very-long-secret-key-32-chars-long"
	secretB = "this-is-old-very-long-secret-key-32-chars-ok"
)

func TestNew(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		secrets []string
		wantErr error
	}{
		{name: "no secrets", secrets: nil, wantErr: nil},
		{name: "blank secrets are ignored", secrets: []string{"", "  "}, wantErr: nil},
		{name: "secret too short", secrets: []string{"short"}, wantErr: cookie.ErrSecretTooShort},
		{name: "valid secret", secrets: []string{secretA}, wantErr: nil},
		{name: "rotation", secrets: []string{secretA, secretB}, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cookie.New(tt.secrets)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func roundTrip(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManager_SetGet(t *testing.T) {
	t.Parallel()
	m, err := cookie.New(nil)
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	if err := m.Set(w, "sessionId", "abc-123"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := m.Get(roundTrip(w), "sessionId")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "abc-123" {
		t.Errorf("Get() = %q, want %q", got, "abc-123")
	}

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "sessionId")
	if !errors.Is(err, cookie.ErrCookieNotFound) {
		t.Errorf("Get() missing cookie error = %v, want %v", err, cookie.ErrCookieNotFound)
	}
}

func TestManager_DefaultAttributes(t *testing.T) {
	t.Parallel()
	m, _ := cookie.New(nil)

	w := httptest.NewRecorder()
	_ = m.Set(w, "sid", "v")

	c := w.Result().Cookies()[0]
	if c.Path != "/" {
		t.Errorf("Path = %q, want /", c.Path)
	}
	if !c.Secure {
		t.Error("Secure should default to true")
	}
	if !c.HttpOnly {
		t.Error("HttpOnly should default to true")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", c.SameSite)
	}
	if c.MaxAge != 0 {
		t.Errorf("MaxAge = %d, want unset", c.MaxAge)
	}
}

func TestManager_Options(t *testing.T) {
	t.Parallel()
	m, _ := cookie.New(nil,
		cookie.WithDomain("example.com"),
		cookie.WithPath("/app"),
		cookie.WithSecure(false),
		cookie.WithSameSite(http.SameSiteStrictMode),
	)

	w := httptest.NewRecorder()
	_ = m.Set(w, "sid", "v", cookie.WithMaxAge(60), cookie.WithHTTPOnly(false))

	c := w.Result().Cookies()[0]
	if c.Domain != "example.com" || c.Path != "/app" {
		t.Errorf("Domain/Path = %q/%q", c.Domain, c.Path)
	}
	if c.Secure || c.HttpOnly {
		t.Errorf("Secure/HttpOnly = %v/%v, want false/false", c.Secure, c.HttpOnly)
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Errorf("SameSite = %v, want Strict", c.SameSite)
	}
	if c.MaxAge != 60 {
		t.Errorf("MaxAge = %d, want 60", c.MaxAge)
	}

	// per-call options must not leak into defaults
	if d := m.Defaults(); d.MaxAge != 0 || !d.HttpOnly {
		t.Errorf("defaults changed: %+v", m.Defaults())
	}
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()
	m, _ := cookie.New([]string{secretA})

	w := httptest.NewRecorder()
	if err := m.SetSigned(w, "sid", "session-value"); err != nil {
		t.Fatalf("SetSigned() error = %v", err)
	}

	raw := w.Result().Cookies()[0].Value
	if raw == "session-value" {
		t.Fatal("signed cookie must not carry the bare value")
	}

	got, err := m.GetSigned(roundTrip(w), "sid")
	if err != nil {
		t.Fatalf("GetSigned() error = %v", err)
	}
	if got != "session-value" {
		t.Errorf("GetSigned() = %q", got)
	}
}

func TestManager_SignedTamperDetection(t *testing.T) {
	t.Parallel()
	m, _ := cookie.New([]string{secretA})

	w := httptest.NewRecorder()
	_ = m.SetSigned(w, "sid", "user-1")
	raw := w.Result().Cookies()[0].Value

	value, sig, _ := strings.Cut(raw, ".")
	tests := []struct {
		name    string
		value   string
		wantErr error
	}{
		{name: "no separator", value: value, wantErr: cookie.ErrInvalidFormat},
		{name: "bad encoding", value: "!!!." + sig, wantErr: cookie.ErrInvalidFormat},
		{name: "forged value", value: "dXNlci0y." + sig, wantErr: cookie.ErrInvalidSignature},
		{name: "forged signature", value: value + ".AAAA", wantErr: cookie.ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.AddCookie(&http.Cookie{Name: "sid", Value: tt.value})
			_, err := m.GetSigned(r, "sid")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetSigned() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestManager_SecretRotation(t *testing.T) {
	t.Parallel()
	old, _ := cookie.New([]string{secretB})
	rotated, _ := cookie.New([]string{secretA, secretB})

	w := httptest.NewRecorder()
	_ = old.SetSigned(w, "sid", "kept")

	got, err := rotated.GetSigned(roundTrip(w), "sid")
	if err != nil {
		t.Fatalf("GetSigned() with rotated secrets error = %v", err)
	}
	if got != "kept" {
		t.Errorf("GetSigned() = %q, want kept", got)
	}
}

func TestManager_SignedWithoutSecret(t *testing.T) {
	t.Parallel()
	m, _ := cookie.New(nil)

	if m.CanSign() {
		t.Fatal("CanSign() = true without secrets")
	}
	if err := m.SetSigned(httptest.NewRecorder(), "sid", "v"); !errors.Is(err, cookie.ErrNoSecret) {
		t.Errorf("SetSigned() error = %v, want %v", err, cookie.ErrNoSecret)
	}
	if _, err := m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "sid"); !errors.Is(err, cookie.ErrNoSecret) {
		t.Errorf("GetSigned() error = %v, want %v", err, cookie.ErrNoSecret)
	}
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()
	m, _ := cookie.New(nil, cookie.WithDomain("example.com"))

	w := httptest.NewRecorder()
	m.Delete(w, "sid")

	c := w.Result().Cookies()[0]
	if c.MaxAge >= 0 {
		t.Errorf("MaxAge = %d, want negative", c.MaxAge)
	}
	if c.Value != "" {
		t.Errorf("Value = %q, want empty", c.Value)
	}
	if c.Domain != "example.com" {
		t.Errorf("Domain = %q, want example.com", c.Domain)
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()
	cfg := cookie.DefaultConfig()
	cfg.Secrets = secretA + ", " + secretB
	cfg.Secure = false
	cfg.Domain = "example.com"

	if got := cfg.SecretList(); len(got) != 2 {
		t.Fatalf("SecretList() = %v", got)
	}

	m, err := cookie.NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig() error = %v", err)
	}
	if !m.CanSign() {
		t.Error("expected signing secrets")
	}
	if d := m.Defaults(); d.Secure || d.Domain != "example.com" || !d.HttpOnly {
		t.Errorf("Defaults() = %+v", d)
	}
}
