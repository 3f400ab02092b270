package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/course-platform/internal/core/ports"
)

// LessonHandler handles HTTP requests for lessons.
type LessonHandler struct {
	catalog ports.CatalogService
}

func NewLessonHandler(catalog ports.CatalogService) *LessonHandler {
	return &LessonHandler{catalog: catalog}
}

type createLessonRequest struct {
	Title           string `json:"title"            validate:"required"`
	Description     string `json:"description"`
	VideoURL        string `json:"video_url"        validate:"required"`
	SectionID       int    `json:"section_id"       validate:"required"`
	Order           int    `json:"order"            validate:"gte=0"`
	DurationMinutes int    `json:"duration_minutes" validate:"gte=0"`
}

type updateLessonRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	VideoURL        *string `json:"video_url"`
	Order           *int    `json:"order"            validate:"omitempty,gte=0"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,gte=0"`
}

// ListBySection returns a section's lessons in display order.
//
// @Summary      List lessons of a section
// @Tags         lessons
// @Produce      json
// @Param        sectionId  path  int  true  "Section id"
// @Success      200  {array}   domain.Lesson
// @Failure      404  {object}  map[string]string
// @Router       /api/sections/{sectionId}/lessons [get]
func (h *LessonHandler) ListBySection(c echo.Context) error {
	sectionID, err := pathID(c, "sectionId")
	if err != nil {
		return err
	}
	lessons, err := h.catalog.ListLessons(c.Request().Context(), sectionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lessons)
}

// Create adds a lesson to a section. Owner or admin only.
//
// @Summary      Create a lesson
// @Tags         lessons
// @Accept       json
// @Produce      json
// @Param        body  body      createLessonRequest  true  "Lesson details"
// @Success      201   {object}  domain.Lesson
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/lessons [post]
func (h *LessonHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createLessonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lesson, err := h.catalog.CreateLesson(c.Request().Context(), actor, ports.CreateLessonInput{
		Title:           req.Title,
		Description:     req.Description,
		VideoURL:        req.VideoURL,
		SectionID:       req.SectionID,
		Order:           req.Order,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, lesson)
}

// Update applies a partial update to a lesson. Owner or admin only.
//
// @Summary      Update a lesson
// @Tags         lessons
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Lesson id"
// @Param        body  body      updateLessonRequest  true  "Fields to update"
// @Success      200   {object}  domain.Lesson
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/lessons/{id} [put]
func (h *LessonHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateLessonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lesson, err := h.catalog.UpdateLesson(c.Request().Context(), actor, id, ports.UpdateLessonInput{
		Title:           req.Title,
		Description:     req.Description,
		VideoURL:        req.VideoURL,
		Order:           req.Order,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lesson)
}

// Delete removes a lesson. Owner or admin only.
//
// @Summary      Delete a lesson
// @Tags         lessons
// @Param        id  path  int  true  "Lesson id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/lessons/{id} [delete]
func (h *LessonHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteLesson(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
