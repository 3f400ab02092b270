package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC gates a route to the given roles. The platform collapses the user's
// is_admin/is_instructor flags into a single role claim (learner, instructor
// or admin) when the token is minted, so the check here is a plain
// membership test on the claim Auth injected. Admins are not implicitly
// allowed: instructor routes list both roles explicitly.
func RBAC(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claim, _ := c.Get("role").(string)
			for _, role := range roles {
				if claim == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
