package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

// CourseHandler handles HTTP requests for courses.
type CourseHandler struct {
	catalog ports.CatalogService
}

func NewCourseHandler(catalog ports.CatalogService) *CourseHandler {
	return &CourseHandler{catalog: catalog}
}

type createCourseRequest struct {
	Title         string `json:"title"          validate:"required"`
	Slug          string `json:"slug"           validate:"required"`
	Description   string `json:"description"    validate:"required"`
	Price         int    `json:"price"          validate:"gte=0"`
	ThumbnailURL  string `json:"thumbnail_url"`
	CategoryID    int    `json:"category_id"    validate:"required"`
	Level         string `json:"level"          validate:"required,oneof=beginner intermediate advanced"`
	DurationHours int    `json:"duration_hours" validate:"gte=0"`
	IsFeatured    bool   `json:"is_featured"`
}

type updateCourseRequest struct {
	Title         *string `json:"title"`
	Slug          *string `json:"slug"`
	Description   *string `json:"description"`
	Price         *int    `json:"price"          validate:"omitempty,gte=0"`
	ThumbnailURL  *string `json:"thumbnail_url"`
	CategoryID    *int    `json:"category_id"`
	Level         *string `json:"level"          validate:"omitempty,oneof=beginner intermediate advanced"`
	DurationHours *int    `json:"duration_hours" validate:"omitempty,gte=0"`
	IsFeatured    *bool   `json:"is_featured"`
}

// List returns courses matching the query filters. Filters combine with AND;
// no filters means the full catalog.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Param        categoryId  query   int     false  "Filter by category id"
// @Param        featured    query   bool    false  "Only featured courses"
// @Param        search      query   string  false  "Case-insensitive substring match on title or description"
// @Success      200  {array}  domain.Course
// @Router       /api/courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	filter := ports.CourseFilter{Search: c.QueryParam("search")}
	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "categoryId must be an integer")
		}
		filter.CategoryID = id
	}
	if raw := c.QueryParam("featured"); raw != "" {
		filter.Featured = raw == "true"
	}

	courses, err := h.catalog.ListCourses(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

// GetBySlug returns one course.
//
// @Summary      Get a course by slug
// @Tags         courses
// @Produce      json
// @Param        slug  path      string  true  "Course slug"
// @Success      200   {object}  domain.Course
// @Failure      404   {object}  map[string]string
// @Router       /api/courses/{slug} [get]
func (h *CourseHandler) GetBySlug(c echo.Context) error {
	course, err := h.catalog.GetCourseBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// Create publishes a new course owned by the acting instructor.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        body  body      createCourseRequest  true  "Course details"
// @Success      201   {object}  domain.Course
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.catalog.CreateCourse(c.Request().Context(), actor, ports.CreateCourseInput{
		Title:         req.Title,
		Slug:          req.Slug,
		Description:   req.Description,
		Price:         req.Price,
		ThumbnailURL:  req.ThumbnailURL,
		CategoryID:    req.CategoryID,
		Level:         domain.CourseLevel(req.Level),
		DurationHours: req.DurationHours,
		IsFeatured:    req.IsFeatured,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, course)
}

// Update applies a partial update to a course. Owner or admin only.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Course id"
// @Param        body  body      updateCourseRequest  true  "Fields to update"
// @Success      200   {object}  domain.Course
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.UpdateCourseInput{
		Title:         req.Title,
		Slug:          req.Slug,
		Description:   req.Description,
		Price:         req.Price,
		ThumbnailURL:  req.ThumbnailURL,
		CategoryID:    req.CategoryID,
		DurationHours: req.DurationHours,
		IsFeatured:    req.IsFeatured,
	}
	if req.Level != nil {
		level := domain.CourseLevel(*req.Level)
		in.Level = &level
	}

	course, err := h.catalog.UpdateCourse(c.Request().Context(), actor, id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// Delete removes a course. Owner or admin only.
//
// @Summary      Delete a course
// @Tags         courses
// @Param        id  path  int  true  "Course id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteCourse(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// pathID parses an integer path parameter.
func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}
