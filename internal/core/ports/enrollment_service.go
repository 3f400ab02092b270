package ports

import (
	"context"

	"github.com/learnhub/course-platform/internal/core/domain"
)

// EnrolledCourse pairs an enrollment with its course for the learner's
// dashboard listing. CompletionPercent is derived from the course's true
// lesson count at read time.
type EnrolledCourse struct {
	Enrollment        *domain.Enrollment `json:"enrollment"`
	Course            *domain.Course     `json:"course"`
	CompletionPercent int                `json:"completion_percent"`
}

// EnrollmentService owns enrollment lifecycle and the per-lesson progress
// tracking core.
type EnrollmentService interface {
	// Enroll registers the user in the course. Fails with
	// domain.ErrAlreadyEnrolled when an enrollment for (user, course) exists
	// and domain.ErrCourseNotFound when the course does not.
	Enroll(ctx context.Context, userID, courseID int) (*domain.Enrollment, error)

	ListUserEnrollments(ctx context.Context, userID int) ([]EnrolledCourse, error)

	// MarkLessonProgress sets the completion flag for one lesson on the
	// caller's enrollment in courseID, then recomputes IsCompleted against
	// the course's full lesson count. Fails with domain.ErrEnrollmentNotFound
	// when the caller is not enrolled.
	MarkLessonProgress(ctx context.Context, userID, courseID, lessonID int, completed bool) (*domain.Enrollment, error)
}

// ReviewerSummary is the public slice of a reviewer's profile embedded in
// review listings.
type ReviewerSummary struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// CourseReview joins a review with its reviewer's public profile.
type CourseReview struct {
	domain.Review
	User *ReviewerSummary `json:"user"`
}

// CreateReviewInput carries the fields for a new review.
type CreateReviewInput struct {
	CourseID int
	Rating   int
	Comment  string
}

// ReviewService owns course reviews.
type ReviewService interface {
	ListCourseReviews(ctx context.Context, courseID int) ([]CourseReview, error)

	// CreateReview fails with domain.ErrNotEnrolled when the user holds no
	// enrollment for the course and domain.ErrAlreadyReviewed on a second
	// review for the same course.
	CreateReview(ctx context.Context, userID int, in CreateReviewInput) (*domain.Review, error)
}
