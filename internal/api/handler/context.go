package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/course-platform/internal/core/ports"
)

// ctxActor extracts the acting user injected by the Auth middleware and
// performs a fast-fail check before any service call: both the user id and
// the role must be present, otherwise the middleware did not run or the
// token predates the current claim shape.
func ctxActor(c echo.Context) (ports.Actor, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	// JWT numeric claims decode as float64.
	rawID, _ := c.Get("user_id").(float64)
	userID := int(rawID)
	if userID == 0 {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	return ports.Actor{UserID: userID, Role: role}, nil
}
