package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vanguox/accounts-api/internal/core/domain"
)

const testCookie = "__Secure-test.session-token"

// stubSessions verifies exactly one token value.
type stubSessions struct {
	validToken string
	userID     string
}

func (s *stubSessions) Issue(_ context.Context, _ string) (*domain.Session, error) {
	return nil, nil
}

func (s *stubSessions) Verify(_ context.Context, token string) string {
	if token == s.validToken {
		return s.userID
	}
	return ""
}

func (s *stubSessions) Invalidate(_ context.Context, _ string) error { return nil }

func gateRequest(t *testing.T, target string, withSession bool) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if withSession {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "valid-token"})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	sessions := &stubSessions{validToken: "valid-token", userID: "user_1"}
	mw := Gate(sessions, testCookie, DefaultRoutes)

	passed := false
	handler := mw(func(c echo.Context) error {
		passed = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("gate returned error: %v", err)
	}
	return rec, passed
}

func TestGate_ProtectedWithoutSession(t *testing.T) {
	rec, passed := gateRequest(t, "/dashboard", false)
	if passed {
		t.Fatalf("anonymous request must not reach a protected route")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/sign-in?redirect_url=%2Fdashboard" {
		t.Fatalf("unexpected redirect target: %q", loc)
	}
}

func TestGate_ProtectedPrefixMatch(t *testing.T) {
	rec, passed := gateRequest(t, "/settings/security", false)
	if passed {
		t.Fatalf("nested protected path must be gated")
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/sign-in?redirect_url=%2Fsettings%2Fsecurity" {
		t.Fatalf("unexpected redirect target: %q", loc)
	}
}

func TestGate_ProtectedWithSession(t *testing.T) {
	rec, passed := gateRequest(t, "/dashboard", true)
	if !passed {
		t.Fatalf("authenticated request must pass through")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGate_AuthOnlyWithSession(t *testing.T) {
	rec, passed := gateRequest(t, "/sign-in", true)
	if passed {
		t.Fatalf("authenticated request must not reach /sign-in")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected redirect to root, got %q", loc)
	}
}

func TestGate_AuthOnlyWithSessionAndRedirectURL(t *testing.T) {
	rec, _ := gateRequest(t, "/sign-in?redirect_url=/profile", true)
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/profile" {
		t.Fatalf("expected redirect to /profile, got %q", loc)
	}
}

func TestGate_AuthOnlyIgnoresUnsafeRedirectURL(t *testing.T) {
	for _, target := range []string{
		"/sign-in?redirect_url=https://evil.example",
		"/sign-in?redirect_url=//evil.example",
		"/sign-in?redirect_url=javascript:alert(1)",
	} {
		rec, _ := gateRequest(t, target, true)
		if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
			t.Fatalf("%s: expected redirect to root, got %q", target, loc)
		}
	}
}

func TestGate_AuthOnlyWithoutSession(t *testing.T) {
	rec, passed := gateRequest(t, "/register", false)
	if !passed {
		t.Fatalf("anonymous request must reach /register")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGate_UnlistedPathPassesThrough(t *testing.T) {
	for _, withSession := range []bool{false, true} {
		rec, passed := gateRequest(t, "/about", withSession)
		if !passed {
			t.Fatalf("unlisted path must pass through (session=%v)", withSession)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
}

func TestGate_InjectsUserID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "valid-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	sessions := &stubSessions{validToken: "valid-token", userID: "user_1"}
	handler := Gate(sessions, testCookie, DefaultRoutes)(func(c echo.Context) error {
		if got := CurrentUserID(c); got != "user_1" {
			t.Fatalf("CurrentUserID = %q, want user_1", got)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("gate returned error: %v", err)
	}
}

func TestGate_SimilarPrefixIsNotProtected(t *testing.T) {
	// /dashboard-public shares the string prefix but is a different route.
	_, passed := gateRequest(t, "/dashboard-public", false)
	if !passed {
		t.Fatalf("/dashboard-public must not be gated")
	}
}
