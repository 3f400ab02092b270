package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
	"github.com/learnhub/course-platform/internal/infrastructure/db/memory"
)

func newCatalogService(store *memory.Store, cache CourseCache) *CatalogService {
	return NewCatalogService(store.Categories(), store.Courses(), store.Sections(), store.Lessons(), cache, zerolog.Nop())
}

func seedCategory(t *testing.T, store *memory.Store) *domain.Category {
	t.Helper()
	cat, err := store.Categories().Create(context.Background(), &domain.Category{Name: "Development", Slug: "development"})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return cat
}

func TestCatalogService_CreateCourse_SetsInstructor(t *testing.T) {
	store := memory.NewStore()
	svc := newCatalogService(store, nil)
	cat := seedCategory(t, store)

	actor := ports.Actor{UserID: 42, Role: domain.RoleInstructor}
	course, err := svc.CreateCourse(context.Background(), actor, ports.CreateCourseInput{
		Title: "Go Basics", Slug: "go-basics", CategoryID: cat.ID, Level: domain.LevelBeginner,
	})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	if course.InstructorID != 42 {
		t.Fatalf("instructor must come from the actor, got %d", course.InstructorID)
	}
}

func TestCatalogService_CreateCourse_UnknownCategory(t *testing.T) {
	store := memory.NewStore()
	svc := newCatalogService(store, nil)

	actor := ports.Actor{UserID: 1, Role: domain.RoleInstructor}
	if _, err := svc.CreateCourse(context.Background(), actor, ports.CreateCourseInput{
		Title: "Orphan", Slug: "orphan", CategoryID: 99,
	}); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCatalogService_UpdateCourse_Ownership(t *testing.T) {
	store := memory.NewStore()
	svc := newCatalogService(store, nil)
	cat := seedCategory(t, store)

	owner := ports.Actor{UserID: 1, Role: domain.RoleInstructor}
	course, err := svc.CreateCourse(context.Background(), owner, ports.CreateCourseInput{
		Title: "Mine", Slug: "mine", CategoryID: cat.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "Stolen"
	other := ports.Actor{UserID: 2, Role: domain.RoleInstructor}
	if _, err := svc.UpdateCourse(context.Background(), other, course.ID, ports.UpdateCourseInput{Title: &title}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	admin := ports.Actor{UserID: 3, Role: domain.RoleAdmin}
	if _, err := svc.UpdateCourse(context.Background(), admin, course.ID, ports.UpdateCourseInput{Title: &title}); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}

	// Missing course reports not-found, not forbidden.
	if _, err := svc.UpdateCourse(context.Background(), other, 999, ports.UpdateCourseInput{Title: &title}); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestCatalogService_DeleteCourse_Idempotent(t *testing.T) {
	store := memory.NewStore()
	svc := newCatalogService(store, nil)
	cat := seedCategory(t, store)

	owner := ports.Actor{UserID: 1, Role: domain.RoleInstructor}
	course, err := svc.CreateCourse(context.Background(), owner, ports.CreateCourseInput{
		Title: "Temp", Slug: "temp", CategoryID: cat.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteCourse(context.Background(), owner, course.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteCourse(context.Background(), owner, course.ID); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("second delete should surface not found, got %v", err)
	}
}

func TestCatalogService_LessonOwnershipViaSection(t *testing.T) {
	store := memory.NewStore()
	svc := newCatalogService(store, nil)
	cat := seedCategory(t, store)

	owner := ports.Actor{UserID: 1, Role: domain.RoleInstructor}
	course, err := svc.CreateCourse(context.Background(), owner, ports.CreateCourseInput{
		Title: "C", Slug: "c", CategoryID: cat.ID,
	})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	section, err := svc.CreateSection(context.Background(), owner, ports.CreateSectionInput{Title: "S", CourseID: course.ID, Order: 1})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}

	other := ports.Actor{UserID: 2, Role: domain.RoleInstructor}
	if _, err := svc.CreateLesson(context.Background(), other, ports.CreateLessonInput{Title: "L", SectionID: section.ID, Order: 1}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden through section ownership, got %v", err)
	}
	lesson, err := svc.CreateLesson(context.Background(), owner, ports.CreateLessonInput{Title: "L", SectionID: section.ID, Order: 1})
	if err != nil {
		t.Fatalf("owner create lesson: %v", err)
	}
	if err := svc.DeleteLesson(context.Background(), other, lesson.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on lesson delete, got %v", err)
	}
}

// fakeCache records calls and can be primed to fail.
type fakeCache struct {
	data        map[string][]*domain.Course
	failing     bool
	sets, gets  int
	invalidates int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]*domain.Course)}
}

func cacheKey(f ports.CourseFilter) string {
	return fmt.Sprintf("%d|%v|%s", f.CategoryID, f.Featured, f.Search)
}

func (c *fakeCache) Get(_ context.Context, f ports.CourseFilter) ([]*domain.Course, bool, error) {
	c.gets++
	if c.failing {
		return nil, false, errors.New("cache down")
	}
	courses, ok := c.data[cacheKey(f)]
	return courses, ok, nil
}

func (c *fakeCache) Set(_ context.Context, f ports.CourseFilter, courses []*domain.Course) error {
	c.sets++
	if c.failing {
		return errors.New("cache down")
	}
	c.data[cacheKey(f)] = courses
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.invalidates++
	if c.failing {
		return errors.New("cache down")
	}
	c.data = make(map[string][]*domain.Course)
	return nil
}

func TestCatalogService_ListCourses_ReadThroughCache(t *testing.T) {
	store := memory.NewStore()
	cache := newFakeCache()
	svc := newCatalogService(store, cache)
	cat := seedCategory(t, store)

	owner := ports.Actor{UserID: 1, Role: domain.RoleInstructor}
	if _, err := svc.CreateCourse(context.Background(), owner, ports.CreateCourseInput{Title: "A", Slug: "a", CategoryID: cat.ID}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if cache.invalidates == 0 {
		t.Fatal("create must invalidate the cache")
	}

	first, err := svc.ListCourses(context.Background(), ports.CourseFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache fill on miss, sets=%d", cache.sets)
	}

	second, err := svc.ListCourses(context.Background(), ports.CourseFilter{})
	if err != nil {
		t.Fatalf("list again: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("hit must not refill the cache, sets=%d", cache.sets)
	}
	if len(first) != len(second) {
		t.Fatalf("cache served different results: %d vs %d", len(first), len(second))
	}
}

func TestCatalogService_ListCourses_CacheFailureFallsBack(t *testing.T) {
	store := memory.NewStore()
	cache := newFakeCache()
	cache.failing = true
	svc := newCatalogService(store, cache)
	cat := seedCategory(t, store)

	owner := ports.Actor{UserID: 1, Role: domain.RoleInstructor}
	if _, err := svc.CreateCourse(context.Background(), owner, ports.CreateCourseInput{Title: "A", Slug: "a", CategoryID: cat.ID}); err != nil {
		t.Fatalf("create must succeed despite cache failure: %v", err)
	}

	got, err := svc.ListCourses(context.Background(), ports.CourseFilter{})
	if err != nil {
		t.Fatalf("list must fall back to the repository: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 course from fallback, got %d", len(got))
	}
}
