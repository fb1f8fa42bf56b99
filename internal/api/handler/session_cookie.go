package handler

import (
	"net/http"
	"time"
)

// CookieConfig describes how the session cookie is written. The cookie is
// scoped to the parent domain so every subdomain shares the session, and
// SameSite=None keeps cross-subdomain navigation working.
type CookieConfig struct {
	// Name follows the __Secure-<app>.session-token convention.
	Name   string
	Domain string
	// Secure must be true in production; browsers reject __Secure- cookies
	// without it.
	Secure bool
}

// Session builds the Set-Cookie value carrying a freshly issued token.
func (cc CookieConfig) Session(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     cc.Name,
		Value:    token,
		Path:     "/",
		Domain:   cc.Domain,
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteNoneMode,
	}
}

// Cleared builds the Set-Cookie value that removes the session cookie.
func (cc CookieConfig) Cleared() *http.Cookie {
	return &http.Cookie{
		Name:     cc.Name,
		Value:    "",
		Path:     "/",
		Domain:   cc.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteNoneMode,
	}
}
