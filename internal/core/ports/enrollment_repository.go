package ports

import (
	"context"

	"github.com/learnhub/course-platform/internal/core/domain"
)

// EnrollmentRepository defines persistence operations for enrollments and
// their per-lesson progress state.
//
// SetLessonProgress must be an atomic merge keyed on (enrollment, lesson):
// two concurrent writes for different lessons of the same enrollment must
// both survive. Implementations store progress as individual rows, not as a
// single rewritten document.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error)
	FindByID(ctx context.Context, id int) (*domain.Enrollment, error)
	FindByCourseAndUser(ctx context.Context, courseID, userID int) (*domain.Enrollment, error)
	ListByUser(ctx context.Context, userID int) ([]*domain.Enrollment, error)
	SetLessonProgress(ctx context.Context, enrollmentID, lessonID int, completed bool) error
	SetCompleted(ctx context.Context, enrollmentID int, completed bool) error
}

// ReviewRepository defines persistence operations for course reviews.
type ReviewRepository interface {
	ListByCourse(ctx context.Context, courseID int) ([]*domain.Review, error)
	FindByCourseAndUser(ctx context.Context, courseID, userID int) (*domain.Review, error)
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
}
