package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vanguox/accounts-api/internal/api/middleware"
	"github.com/vanguox/accounts-api/internal/core/domain"
	"github.com/vanguox/accounts-api/internal/core/ports"
)

// EventSink receives auth events for asynchronous audit recording.
// The queue dispatcher satisfies it in production.
type EventSink interface {
	Enqueue(event ports.AuthEventInput)
}

type AuthHandler struct {
	authService ports.AuthService
	users       ports.UserRepository
	cookie      CookieConfig
	events      EventSink
}

func NewAuthHandler(authService ports.AuthService, users ports.UserRepository, cookie CookieConfig, events EventSink) *AuthHandler {
	return &AuthHandler{authService: authService, users: users, cookie: cookie, events: events}
}

// Register creates a new user account. It does not sign the user in; the
// client follows up with POST /auth/login.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Pin:       req.SecurityPin,
	})
	if err != nil {
		return err
	}

	h.record(c, user.Email, domain.EventUserRegistered)
	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login verifies credentials and sets the session cookie.
//
// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownEmail) || errors.Is(err, domain.ErrWrongPassword) {
			h.record(c, req.Email, domain.EventLoginFailed)
		}
		return err
	}

	c.SetCookie(h.cookie.Session(session.Token, session.ExpiresAt))
	h.record(c, session.User.Email, domain.EventLoginSucceeded)
	return c.JSON(http.StatusOK, authResponse{User: session.User})
}

// Logout revokes the current session and clears the cookie. Idempotent: a
// request without a session cookie still gets 204 and a cleared cookie.
//
// @Summary      Log out
// @Tags         auth
// @Success      204  "session revoked"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookie.Name); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}

	c.SetCookie(h.cookie.Cleared())
	return c.NoContent(http.StatusNoContent)
}

// Session introspects the cookie of the current request.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}

	user, err := h.users.FindByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{User: user})
}

// record hands an auth event to the audit pipeline. Nil sink means auditing
// is disabled (tests).
func (h *AuthHandler) record(c echo.Context, email, kind string) {
	if h.events == nil {
		return
	}
	h.events.Enqueue(ports.AuthEventInput{
		Email:     email,
		Kind:      kind,
		Timestamp: time.Now().UTC(),
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
