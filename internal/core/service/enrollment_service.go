package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/learnhub/course-platform/internal/api/metrics"
	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

// EnrollmentService implements enrollment lifecycle and lesson progress.
type EnrollmentService struct {
	enrollments ports.EnrollmentRepository
	courses     ports.CourseRepository
	sections    ports.SectionRepository
	lessons     ports.LessonRepository
	log         zerolog.Logger
}

func NewEnrollmentService(
	enrollments ports.EnrollmentRepository,
	courses ports.CourseRepository,
	sections ports.SectionRepository,
	lessons ports.LessonRepository,
	log zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		courses:     courses,
		sections:    sections,
		lessons:     lessons,
		log:         log,
	}
}

func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID int) (*domain.Enrollment, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	created, err := s.enrollments.Create(ctx, &domain.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	})
	if err != nil {
		return nil, err
	}

	metrics.EnrollmentsCreatedTotal.Inc()
	s.log.Info().Int("user_id", userID).Int("course_id", courseID).Msg("user enrolled")
	return created, nil
}

func (s *EnrollmentService) ListUserEnrollments(ctx context.Context, userID int) ([]ports.EnrolledCourse, error) {
	enrollments, err := s.enrollments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]ports.EnrolledCourse, 0, len(enrollments))
	for _, e := range enrollments {
		course, err := s.courses.FindByID(ctx, e.CourseID)
		if err != nil {
			// Course deleted after enrollment; skip the orphan rather than
			// failing the whole listing.
			s.log.Warn().Int("enrollment_id", e.ID).Int("course_id", e.CourseID).Msg("enrollment references missing course")
			continue
		}
		total, err := s.lessons.CountByCourse(ctx, e.CourseID)
		if err != nil {
			return nil, err
		}
		out = append(out, ports.EnrolledCourse{
			Enrollment:        e,
			Course:            course,
			CompletionPercent: e.CompletionPercent(total),
		})
	}
	return out, nil
}

// MarkLessonProgress flips one lesson's flag on the caller's enrollment and
// recomputes the completion state against the course's current lesson count.
// The write is a keyed merge on the persistence side, so concurrent marks of
// distinct lessons never overwrite each other.
func (s *EnrollmentService) MarkLessonProgress(ctx context.Context, userID, courseID, lessonID int, completed bool) (*domain.Enrollment, error) {
	enrollment, err := s.enrollments.FindByCourseAndUser(ctx, courseID, userID)
	if err != nil {
		return nil, err
	}

	// The lesson must belong to this course; a lesson from another course
	// would otherwise count against this enrollment's completion.
	lesson, err := s.lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	section, err := s.sections.FindByID(ctx, lesson.SectionID)
	if err != nil {
		return nil, err
	}
	if section.CourseID != courseID {
		return nil, domain.ErrLessonNotFound
	}

	if err := s.enrollments.SetLessonProgress(ctx, enrollment.ID, lessonID, completed); err != nil {
		return nil, err
	}
	metrics.LessonProgressWritesTotal.WithLabelValues(strconv.FormatBool(completed)).Inc()

	updated, err := s.enrollments.FindByID(ctx, enrollment.ID)
	if err != nil {
		return nil, err
	}

	total, err := s.lessons.CountByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	done := updated.IsFullyCompleted(total)
	if done != updated.IsCompleted {
		if err := s.enrollments.SetCompleted(ctx, updated.ID, done); err != nil {
			return nil, err
		}
		updated.IsCompleted = done
		if done {
			s.log.Info().Int("user_id", userID).Int("course_id", courseID).Msg("course completed")
		}
	}

	return updated, nil
}
