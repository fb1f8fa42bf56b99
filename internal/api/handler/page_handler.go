package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vanguox/accounts-api/internal/api/middleware"
)

// PageHandler serves the application page routes the gate guards. Rendering
// is owned by the frontend; these endpoints return enough state for it to
// hydrate.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

type pageResponse struct {
	Page   string `json:"page"`
	UserID string `json:"user_id,omitempty"`
}

// Page returns a handler for the named page.
func (h *PageHandler) Page(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, pageResponse{
			Page:   name,
			UserID: middleware.CurrentUserID(c),
		})
	}
}
