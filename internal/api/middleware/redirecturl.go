package middleware

import (
	"net/url"
	"strings"
)

// SafeRedirect validates a redirect_url query value before it is used as a
// redirect target. Only same-origin relative paths pass; anything carrying a
// scheme, a host, or a protocol-relative prefix is rejected to prevent open
// redirects.
func SafeRedirect(raw string) (string, bool) {
	if raw == "" || !strings.HasPrefix(raw, "/") {
		return "", false
	}
	if strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	return raw, true
}
