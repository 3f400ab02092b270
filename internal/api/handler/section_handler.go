package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/course-platform/internal/core/ports"
)

// SectionHandler handles HTTP requests for course sections.
type SectionHandler struct {
	catalog ports.CatalogService
}

func NewSectionHandler(catalog ports.CatalogService) *SectionHandler {
	return &SectionHandler{catalog: catalog}
}

type createSectionRequest struct {
	Title    string `json:"title"     validate:"required"`
	CourseID int    `json:"course_id" validate:"required"`
	Order    int    `json:"order"     validate:"gte=0"`
}

type updateSectionRequest struct {
	Title *string `json:"title"`
	Order *int    `json:"order" validate:"omitempty,gte=0"`
}

// ListByCourse returns a course's sections in display order.
//
// @Summary      List sections of a course
// @Tags         sections
// @Produce      json
// @Param        courseId  path  int  true  "Course id"
// @Success      200  {array}   domain.Section
// @Failure      404  {object}  map[string]string
// @Router       /api/courses/{courseId}/sections [get]
func (h *SectionHandler) ListByCourse(c echo.Context) error {
	courseID, err := pathID(c, "courseId")
	if err != nil {
		return err
	}
	sections, err := h.catalog.ListSections(c.Request().Context(), courseID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sections)
}

// Create adds a section to a course. Owner or admin only.
//
// @Summary      Create a section
// @Tags         sections
// @Accept       json
// @Produce      json
// @Param        body  body      createSectionRequest  true  "Section details"
// @Success      201   {object}  domain.Section
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/sections [post]
func (h *SectionHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createSectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	section, err := h.catalog.CreateSection(c.Request().Context(), actor, ports.CreateSectionInput{
		Title:    req.Title,
		CourseID: req.CourseID,
		Order:    req.Order,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, section)
}

// Update applies a partial update to a section. Owner or admin only.
//
// @Summary      Update a section
// @Tags         sections
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "Section id"
// @Param        body  body      updateSectionRequest  true  "Fields to update"
// @Success      200   {object}  domain.Section
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/sections/{id} [put]
func (h *SectionHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateSectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	section, err := h.catalog.UpdateSection(c.Request().Context(), actor, id, ports.UpdateSectionInput{
		Title: req.Title,
		Order: req.Order,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, section)
}

// Delete removes a section and its lessons. Owner or admin only.
//
// @Summary      Delete a section
// @Tags         sections
// @Param        id  path  int  true  "Section id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/sections/{id} [delete]
func (h *SectionHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteSection(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
