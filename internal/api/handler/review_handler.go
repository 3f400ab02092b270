package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/course-platform/internal/core/ports"
)

// ReviewHandler handles HTTP requests for course reviews.
type ReviewHandler struct {
	reviews ports.ReviewService
}

func NewReviewHandler(reviews ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type createReviewRequest struct {
	CourseID int    `json:"course_id" validate:"required"`
	Rating   int    `json:"rating"    validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment"`
}

// ListByCourse returns a course's reviews with reviewer summaries.
//
// @Summary      List reviews of a course
// @Tags         reviews
// @Produce      json
// @Param        courseId  path  int  true  "Course id"
// @Success      200  {array}   ports.CourseReview
// @Failure      404  {object}  map[string]string
// @Router       /api/courses/{courseId}/reviews [get]
func (h *ReviewHandler) ListByCourse(c echo.Context) error {
	courseID, err := pathID(c, "courseId")
	if err != nil {
		return err
	}
	reviews, err := h.reviews.ListCourseReviews(c.Request().Context(), courseID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// Create submits a review. The acting user must be enrolled in the course
// and may review it at most once.
//
// @Summary      Review a course
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        body  body      createReviewRequest  true  "Review details"
// @Success      201   {object}  domain.Review
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviews.CreateReview(c.Request().Context(), actor.UserID, ports.CreateReviewInput{
		CourseID: req.CourseID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}
