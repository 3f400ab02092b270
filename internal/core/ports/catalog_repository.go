package ports

import (
	"context"

	"github.com/learnhub/course-platform/internal/core/domain"
)

// CourseFilter carries the catalog query parameters. All set filters are
// combined with AND; the zero value matches every course.
type CourseFilter struct {
	CategoryID int    // 0 = no category filter
	Featured   bool   // true = only featured courses
	Search     string // case-insensitive substring match on title or description
}

// UpdateCourseInput is a field mask applied as a targeted merge against the
// stored course. The course id and instructor are never part of the mask.
type UpdateCourseInput struct {
	Title         *string
	Slug          *string
	Description   *string
	Price         *int
	ThumbnailURL  *string
	CategoryID    *int
	Level         *domain.CourseLevel
	DurationHours *int
	IsFeatured    *bool
}

// UpdateSectionInput is the field mask for section updates.
type UpdateSectionInput struct {
	Title *string
	Order *int
}

// UpdateLessonInput is the field mask for lesson updates.
type UpdateLessonInput struct {
	Title           *string
	Description     *string
	VideoURL        *string
	Order           *int
	DurationMinutes *int
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id int) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
}

// CourseRepository defines persistence operations for courses.
// Delete reports whether a row existed; deleting an absent course is a no-op.
type CourseRepository interface {
	List(ctx context.Context, filter CourseFilter) ([]*domain.Course, error)
	FindByID(ctx context.Context, id int) (*domain.Course, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Course, error)
	ListByInstructor(ctx context.Context, instructorID int) ([]*domain.Course, error)
	Create(ctx context.Context, course *domain.Course) (*domain.Course, error)
	Update(ctx context.Context, id int, in UpdateCourseInput) (*domain.Course, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// SectionRepository defines persistence operations for course sections.
type SectionRepository interface {
	ListByCourse(ctx context.Context, courseID int) ([]*domain.Section, error)
	FindByID(ctx context.Context, id int) (*domain.Section, error)
	Create(ctx context.Context, section *domain.Section) (*domain.Section, error)
	Update(ctx context.Context, id int, in UpdateSectionInput) (*domain.Section, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// LessonRepository defines persistence operations for lessons.
// CountByCourse counts every lesson across all sections of a course; the
// progress tracker uses it to derive completion.
type LessonRepository interface {
	ListBySection(ctx context.Context, sectionID int) ([]*domain.Lesson, error)
	FindByID(ctx context.Context, id int) (*domain.Lesson, error)
	CountByCourse(ctx context.Context, courseID int) (int, error)
	Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error)
	Update(ctx context.Context, id int, in UpdateLessonInput) (*domain.Lesson, error)
	Delete(ctx context.Context, id int) (bool, error)
}
