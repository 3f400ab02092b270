package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/course-platform/internal/core/ports"
)

// AdminHandler handles the admin-only user management endpoints.
type AdminHandler struct {
	users ports.UserService
}

func NewAdminHandler(users ports.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

type updateUserRolesRequest struct {
	IsAdmin      *bool `json:"is_admin"`
	IsInstructor *bool `json:"is_instructor"`
}

// ListUsers returns all registered users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.User
// @Security     BearerAuth
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUserRoles grants or revokes the admin and instructor flags. Each
// flag is independently optional; omitted flags stay untouched.
//
// @Summary      Update a user's role flags
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "User id"
// @Param        body  body      updateUserRolesRequest  true  "Role flags"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/admin/users/{id} [put]
func (h *AdminHandler) UpdateUserRoles(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateUserRolesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.IsAdmin == nil && req.IsInstructor == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one of is_admin, is_instructor is required")
	}

	user, err := h.users.UpdateUserRoles(c.Request().Context(), id, ports.UpdateUserRolesInput{
		IsAdmin:      req.IsAdmin,
		IsInstructor: req.IsInstructor,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
