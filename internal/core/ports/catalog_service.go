package ports

import (
	"context"

	"github.com/learnhub/course-platform/internal/core/domain"
)

// Actor identifies the authenticated user a mutation is performed as.
// Role is one of the domain role names; ownership checks compare UserID
// against the target course's instructor.
type Actor struct {
	UserID int
	Role   string
}

// IsAdmin reports whether the actor holds the admin capability.
func (a Actor) IsAdmin() bool { return a.Role == domain.RoleAdmin }

// CreateCategoryInput carries the fields for a new category.
type CreateCategoryInput struct {
	Name        string
	Slug        string
	IconName    string
	ColorClass  string
	Description string
}

// CreateCourseInput carries the fields for a new course. The instructor is
// the acting user, never taken from the payload.
type CreateCourseInput struct {
	Title         string
	Slug          string
	Description   string
	Price         int
	ThumbnailURL  string
	CategoryID    int
	Level         domain.CourseLevel
	DurationHours int
	IsFeatured    bool
}

// CreateSectionInput carries the fields for a new section.
type CreateSectionInput struct {
	Title    string
	CourseID int
	Order    int
}

// CreateLessonInput carries the fields for a new lesson.
type CreateLessonInput struct {
	Title           string
	Description     string
	VideoURL        string
	SectionID       int
	Order           int
	DurationMinutes int
}

// CatalogService defines the use-case operations over categories, courses,
// sections, and lessons. Every mutation on a course or its children enforces
// ownership: the actor must be the course's instructor or an admin.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	CreateCategory(ctx context.Context, in CreateCategoryInput) (*domain.Category, error)

	ListCourses(ctx context.Context, filter CourseFilter) ([]*domain.Course, error)
	GetCourseBySlug(ctx context.Context, slug string) (*domain.Course, error)
	CreateCourse(ctx context.Context, actor Actor, in CreateCourseInput) (*domain.Course, error)
	UpdateCourse(ctx context.Context, actor Actor, id int, in UpdateCourseInput) (*domain.Course, error)
	DeleteCourse(ctx context.Context, actor Actor, id int) error

	ListSections(ctx context.Context, courseID int) ([]*domain.Section, error)
	CreateSection(ctx context.Context, actor Actor, in CreateSectionInput) (*domain.Section, error)
	UpdateSection(ctx context.Context, actor Actor, id int, in UpdateSectionInput) (*domain.Section, error)
	DeleteSection(ctx context.Context, actor Actor, id int) error

	ListLessons(ctx context.Context, sectionID int) ([]*domain.Lesson, error)
	CreateLesson(ctx context.Context, actor Actor, in CreateLessonInput) (*domain.Lesson, error)
	UpdateLesson(ctx context.Context, actor Actor, id int, in UpdateLessonInput) (*domain.Lesson, error)
	DeleteLesson(ctx context.Context, actor Actor, id int) error
}
