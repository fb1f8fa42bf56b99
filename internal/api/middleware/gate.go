package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vanguox/accounts-api/internal/api/metrics"
	"github.com/vanguox/accounts-api/internal/core/ports"
)

// userIDKey is the echo context key under which the gate stores the resolved
// user id for downstream handlers.
const userIDKey = "user_id"

type routeClass int

const (
	classPublic routeClass = iota
	// classProtected routes require a session; anonymous requests are sent
	// to /sign-in with the original path in redirect_url.
	classProtected
	// classAuthOnly routes are for anonymous users; authenticated requests
	// are sent back to redirect_url or the application root.
	classAuthOnly
)

// routeRule classifies one path pattern. Rules are data, not logic: new
// routes are gated by adding entries here. The protected and auth-only sets
// must stay disjoint or the gate could redirect in a loop.
type routeRule struct {
	pattern string
	prefix  bool
	class   routeClass
}

// DefaultRoutes is the gate configuration for the application.
var DefaultRoutes = []routeRule{
	{pattern: "/dashboard", prefix: true, class: classProtected},
	{pattern: "/profile", prefix: true, class: classProtected},
	{pattern: "/settings", prefix: true, class: classProtected},
	{pattern: "/sign-in", class: classAuthOnly},
	{pattern: "/register", class: classAuthOnly},
}

const signInPath = "/sign-in"

// Gate resolves the session cookie on every request and enforces the route
// classification. It terminates with a redirect or passes through; it never
// fails a request — an unresolvable session is simply no session.
func Gate(sessions ports.SessionAuthenticator, cookieName string, rules []routeRule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := resolveSession(c, sessions, cookieName)
			if userID != "" {
				c.Set(userIDKey, userID)
			}

			switch classify(c.Request().URL.Path, rules) {
			case classProtected:
				if userID == "" {
					metrics.GateRedirectsTotal.WithLabelValues("unauthenticated").Inc()
					target := signInPath + "?redirect_url=" + url.QueryEscape(c.Request().URL.Path)
					return c.Redirect(http.StatusFound, target)
				}
			case classAuthOnly:
				if userID != "" {
					metrics.GateRedirectsTotal.WithLabelValues("already_authenticated").Inc()
					target := "/"
					if back, ok := SafeRedirect(c.QueryParam("redirect_url")); ok {
						target = back
					}
					return c.Redirect(http.StatusFound, target)
				}
			}

			return next(c)
		}
	}
}

// CurrentUserID returns the user id the gate resolved for this request, or
// the empty string for anonymous requests.
func CurrentUserID(c echo.Context) string {
	userID, _ := c.Get(userIDKey).(string)
	return userID
}

func resolveSession(c echo.Context, sessions ports.SessionAuthenticator, cookieName string) string {
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return sessions.Verify(c.Request().Context(), cookie.Value)
}

func classify(path string, rules []routeRule) routeClass {
	for _, r := range rules {
		if r.prefix {
			if path == r.pattern || strings.HasPrefix(path, r.pattern+"/") {
				return r.class
			}
		} else if path == r.pattern {
			return r.class
		}
	}
	return classPublic
}
