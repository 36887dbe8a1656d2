// Package cookie reads and writes HTTP cookies that share default attributes.
//
// The Manager wraps net/http cookies with Set, Get and Delete helpers and
// adds optional HMAC-SHA256 signing through SetSigned and GetSigned. Signed
// values have the form base64url(value) "." base64url(mac). Several secrets
// may be configured to rotate keys: the first one signs new cookies, all of
// them are accepted when verifying.
//
// Defaults follow the usual session cookie hardening: Path "/", Secure,
// HttpOnly and SameSite=Lax. Every attribute can be overridden per manager
// with Option values or per call.
//
// # Usage
//
//	man, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")}, cookie.WithDomain("example.com"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = man.SetSigned(w, "sessionId", id, cookie.WithMaxAge(3600))
//	id, err := man.GetSigned(r, "sessionId")
//
// A manager created without secrets only handles plain cookies:
//
//	man, _ := cookie.New(nil, cookie.WithSecure(false))
//	_ = man.Set(w, "theme", "dark")
//
// # Configuration
//
// Config can be populated from the environment (COOKIE_* variables) and
// turned into a manager with NewFromConfig.
//
// # Errors
//
// ErrCookieNotFound, ErrInvalidSignature, ErrInvalidFormat, ErrNoSecret and
// ErrSecretTooShort are sentinel values suitable for errors.Is.
package cookie
