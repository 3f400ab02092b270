package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/learnhub/course-platform/internal/api/metrics"
	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

// ReviewService implements course reviews.
type ReviewService struct {
	reviews     ports.ReviewRepository
	enrollments ports.EnrollmentRepository
	courses     ports.CourseRepository
	users       ports.UserRepository
}

func NewReviewService(
	reviews ports.ReviewRepository,
	enrollments ports.EnrollmentRepository,
	courses ports.CourseRepository,
	users ports.UserRepository,
) *ReviewService {
	return &ReviewService{
		reviews:     reviews,
		enrollments: enrollments,
		courses:     courses,
		users:       users,
	}
}

func (s *ReviewService) ListCourseReviews(ctx context.Context, courseID int) ([]ports.CourseReview, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	out := make([]ports.CourseReview, 0, len(reviews))
	for _, r := range reviews {
		cr := ports.CourseReview{Review: *r}
		if user, err := s.users.FindByID(ctx, r.UserID); err == nil {
			cr.User = &ports.ReviewerSummary{
				ID:        user.ID,
				Username:  user.Username,
				FirstName: user.FirstName,
				LastName:  user.LastName,
				AvatarURL: user.AvatarURL,
			}
		}
		out = append(out, cr)
	}
	return out, nil
}

func (s *ReviewService) CreateReview(ctx context.Context, userID int, in ports.CreateReviewInput) (*domain.Review, error) {
	if _, err := s.courses.FindByID(ctx, in.CourseID); err != nil {
		return nil, err
	}

	if _, err := s.enrollments.FindByCourseAndUser(ctx, in.CourseID, userID); err != nil {
		if errors.Is(err, domain.ErrEnrollmentNotFound) {
			return nil, domain.ErrNotEnrolled
		}
		return nil, err
	}

	created, err := s.reviews.Create(ctx, &domain.Review{
		UserID:   userID,
		CourseID: in.CourseID,
		Rating:   in.Rating,
		Comment:  in.Comment,
	})
	if err != nil {
		return nil, err
	}

	metrics.ReviewsCreatedTotal.WithLabelValues(strconv.Itoa(in.Rating)).Inc()
	return created, nil
}
