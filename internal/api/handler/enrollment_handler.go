package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/course-platform/internal/core/ports"
)

// EnrollmentHandler handles HTTP requests for enrollments and progress.
type EnrollmentHandler struct {
	enrollments ports.EnrollmentService
}

func NewEnrollmentHandler(enrollments ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

type enrollRequest struct {
	CourseID int `json:"course_id" validate:"required"`
}

type progressRequest struct {
	LessonID  int   `json:"lesson_id" validate:"required"`
	Completed *bool `json:"completed" validate:"required"`
}

// Enroll registers the acting user in a course.
//
// @Summary      Enroll in a course
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Param        body  body      enrollRequest  true  "Course to enroll in"
// @Success      201   {object}  domain.Enrollment
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/enrollments [post]
func (h *EnrollmentHandler) Enroll(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req enrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	enrollment, err := h.enrollments.Enroll(c.Request().Context(), actor.UserID, req.CourseID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, enrollment)
}

// ListMine returns the acting user's enrollments with their courses and
// derived completion percentages.
//
// @Summary      List my enrollments
// @Tags         enrollments
// @Produce      json
// @Success      200  {array}  ports.EnrolledCourse
// @Security     BearerAuth
// @Router       /api/user/enrollments [get]
func (h *EnrollmentHandler) ListMine(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	enrolled, err := h.enrollments.ListUserEnrollments(c.Request().Context(), actor.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrolled)
}

// MarkProgress sets the completion flag for one lesson on the acting user's
// enrollment in the course.
//
// @Summary      Update lesson progress
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Param        courseId  path      int              true  "Course id"
// @Param        body      body      progressRequest  true  "Lesson and completion flag"
// @Success      200       {object}  domain.Enrollment
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/enrollments/{courseId}/progress [put]
func (h *EnrollmentHandler) MarkProgress(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	courseID, err := pathID(c, "courseId")
	if err != nil {
		return err
	}

	var req progressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	enrollment, err := h.enrollments.MarkLessonProgress(c.Request().Context(), actor.UserID, courseID, req.LessonID, *req.Completed)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollment)
}
