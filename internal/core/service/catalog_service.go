package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/learnhub/course-platform/internal/api/metrics"
	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

// CourseCache caches course listings keyed by filter. Implementations must
// treat a miss and an error identically from the caller's point of view: the
// service falls back to the repository either way.
type CourseCache interface {
	Get(ctx context.Context, filter ports.CourseFilter) ([]*domain.Course, bool, error)
	Set(ctx context.Context, filter ports.CourseFilter, courses []*domain.Course) error
	Invalidate(ctx context.Context) error
}

// CatalogService implements ports.CatalogService over the repository ports,
// with an optional read-through cache on course listings.
type CatalogService struct {
	categories ports.CategoryRepository
	courses    ports.CourseRepository
	sections   ports.SectionRepository
	lessons    ports.LessonRepository
	cache      CourseCache
	log        zerolog.Logger
}

func NewCatalogService(
	categories ports.CategoryRepository,
	courses ports.CourseRepository,
	sections ports.SectionRepository,
	lessons ports.LessonRepository,
	cache CourseCache,
	log zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		courses:    courses,
		sections:   sections,
		lessons:    lessons,
		cache:      cache,
		log:        log,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return s.categories.FindBySlug(ctx, slug)
}

func (s *CatalogService) CreateCategory(ctx context.Context, in ports.CreateCategoryInput) (*domain.Category, error) {
	return s.categories.Create(ctx, &domain.Category{
		Name:        in.Name,
		Slug:        in.Slug,
		IconName:    in.IconName,
		ColorClass:  in.ColorClass,
		Description: in.Description,
	})
}

func (s *CatalogService) ListCourses(ctx context.Context, filter ports.CourseFilter) ([]*domain.Course, error) {
	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, filter)
		if err != nil {
			s.log.Warn().Err(err).Msg("course cache read failed, falling back to repository")
		} else if hit {
			return cached, nil
		}
	}

	courses, err := s.courses.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, filter, courses); err != nil {
			s.log.Warn().Err(err).Msg("course cache write failed")
		}
	}
	return courses, nil
}

func (s *CatalogService) GetCourseBySlug(ctx context.Context, slug string) (*domain.Course, error) {
	return s.courses.FindBySlug(ctx, slug)
}

func (s *CatalogService) CreateCourse(ctx context.Context, actor ports.Actor, in ports.CreateCourseInput) (*domain.Course, error) {
	if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	created, err := s.courses.Create(ctx, &domain.Course{
		Title:         in.Title,
		Slug:          in.Slug,
		Description:   in.Description,
		Price:         in.Price,
		ThumbnailURL:  in.ThumbnailURL,
		InstructorID:  actor.UserID,
		CategoryID:    in.CategoryID,
		Level:         in.Level,
		DurationHours: in.DurationHours,
		IsFeatured:    in.IsFeatured,
	})
	if err != nil {
		return nil, err
	}

	metrics.CoursesCreatedTotal.WithLabelValues(string(created.Level)).Inc()
	s.invalidateCache(ctx)
	return created, nil
}

func (s *CatalogService) UpdateCourse(ctx context.Context, actor ports.Actor, id int, in ports.UpdateCourseInput) (*domain.Course, error) {
	if err := s.authorizeCourse(ctx, actor, id); err != nil {
		return nil, err
	}

	updated, err := s.courses.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return updated, nil
}

func (s *CatalogService) DeleteCourse(ctx context.Context, actor ports.Actor, id int) error {
	if err := s.authorizeCourse(ctx, actor, id); err != nil {
		return err
	}

	if _, err := s.courses.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *CatalogService) ListSections(ctx context.Context, courseID int) ([]*domain.Section, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.sections.ListByCourse(ctx, courseID)
}

func (s *CatalogService) CreateSection(ctx context.Context, actor ports.Actor, in ports.CreateSectionInput) (*domain.Section, error) {
	if err := s.authorizeCourse(ctx, actor, in.CourseID); err != nil {
		return nil, err
	}

	return s.sections.Create(ctx, &domain.Section{
		Title:    in.Title,
		CourseID: in.CourseID,
		Order:    in.Order,
	})
}

func (s *CatalogService) UpdateSection(ctx context.Context, actor ports.Actor, id int, in ports.UpdateSectionInput) (*domain.Section, error) {
	section, err := s.sections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeCourse(ctx, actor, section.CourseID); err != nil {
		return nil, err
	}
	return s.sections.Update(ctx, id, in)
}

func (s *CatalogService) DeleteSection(ctx context.Context, actor ports.Actor, id int) error {
	section, err := s.sections.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeCourse(ctx, actor, section.CourseID); err != nil {
		return err
	}
	_, err = s.sections.Delete(ctx, id)
	return err
}

func (s *CatalogService) ListLessons(ctx context.Context, sectionID int) ([]*domain.Lesson, error) {
	if _, err := s.sections.FindByID(ctx, sectionID); err != nil {
		return nil, err
	}
	return s.lessons.ListBySection(ctx, sectionID)
}

func (s *CatalogService) CreateLesson(ctx context.Context, actor ports.Actor, in ports.CreateLessonInput) (*domain.Lesson, error) {
	section, err := s.sections.FindByID(ctx, in.SectionID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeCourse(ctx, actor, section.CourseID); err != nil {
		return nil, err
	}

	return s.lessons.Create(ctx, &domain.Lesson{
		Title:           in.Title,
		Description:     in.Description,
		VideoURL:        in.VideoURL,
		SectionID:       in.SectionID,
		Order:           in.Order,
		DurationMinutes: in.DurationMinutes,
	})
}

func (s *CatalogService) UpdateLesson(ctx context.Context, actor ports.Actor, id int, in ports.UpdateLessonInput) (*domain.Lesson, error) {
	if err := s.authorizeLesson(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.lessons.Update(ctx, id, in)
}

func (s *CatalogService) DeleteLesson(ctx context.Context, actor ports.Actor, id int) error {
	if err := s.authorizeLesson(ctx, actor, id); err != nil {
		return err
	}
	_, err := s.lessons.Delete(ctx, id)
	return err
}

// authorizeCourse loads the course and checks the actor may manage it.
// A missing course surfaces as domain.ErrCourseNotFound, never as forbidden,
// so callers cannot probe for existence.
func (s *CatalogService) authorizeCourse(ctx context.Context, actor ports.Actor, courseID int) error {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	if actor.IsAdmin() {
		return nil
	}
	if course.InstructorID != actor.UserID {
		return domain.ErrForbidden
	}
	return nil
}

func (s *CatalogService) authorizeLesson(ctx context.Context, actor ports.Actor, lessonID int) error {
	lesson, err := s.lessons.FindByID(ctx, lessonID)
	if err != nil {
		return err
	}
	section, err := s.sections.FindByID(ctx, lesson.SectionID)
	if err != nil {
		return err
	}
	return s.authorizeCourse(ctx, actor, section.CourseID)
}

func (s *CatalogService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("course cache invalidation failed")
	}
}
