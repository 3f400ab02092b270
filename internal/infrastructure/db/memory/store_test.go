package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

func TestUserRepositoryUniqueness(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if _, err := store.Users().Create(ctx, &domain.User{Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, err := store.Users().Create(ctx, &domain.User{Username: "ALICE", Email: "other@example.com"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate username, got %v", err)
	}
	if _, err := store.Users().Create(ctx, &domain.User{Username: "bob", Email: "Alice@Example.com"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate email, got %v", err)
	}
}

func TestCourseFilter(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	courses := []*domain.Course{
		{Title: "Go Fundamentals", Slug: "go-fundamentals", Description: "Learn Go", CategoryID: 1, IsFeatured: true},
		{Title: "Advanced SQL", Slug: "advanced-sql", Description: "Query tuning", CategoryID: 2},
		{Title: "Go Concurrency", Slug: "go-concurrency", Description: "Goroutines and channels", CategoryID: 1},
	}
	for _, c := range courses {
		if _, err := store.Courses().Create(ctx, c); err != nil {
			t.Fatalf("create course: %v", err)
		}
	}

	got, err := store.Courses().List(ctx, ports.CourseFilter{CategoryID: 1})
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 courses in category 1, got %d", len(got))
	}

	got, err = store.Courses().List(ctx, ports.CourseFilter{Featured: true})
	if err != nil {
		t.Fatalf("list featured: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "go-fundamentals" {
		t.Fatalf("expected only the featured course, got %v", got)
	}

	got, err = store.Courses().List(ctx, ports.CourseFilter{Search: "goroutines"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "go-concurrency" {
		t.Fatalf("expected description match, got %v", got)
	}
}

func TestCourseUpdateKeepsID(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.Courses().Create(ctx, &domain.Course{Title: "Old", Slug: "old"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "New"
	updated, err := store.Courses().Update(ctx, created.ID, ports.UpdateCourseInput{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("update changed id: %d != %d", updated.ID, created.ID)
	}
	if updated.Title != "New" || updated.Slug != "old" {
		t.Fatalf("field mask applied incorrectly: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) && !updated.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("UpdatedAt not refreshed")
	}
}

func TestCourseDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.Courses().Create(ctx, &domain.Course{Title: "Gone", Slug: "gone"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	existed, err := store.Courses().Delete(ctx, created.ID)
	if err != nil || !existed {
		t.Fatalf("first delete: existed=%v err=%v", existed, err)
	}
	existed, err = store.Courses().Delete(ctx, created.ID)
	if err != nil || existed {
		t.Fatalf("second delete should report not found without error: existed=%v err=%v", existed, err)
	}
}

func TestEnrollmentDuplicate(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if _, err := store.Enrollments().Create(ctx, &domain.Enrollment{UserID: 1, CourseID: 7}); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := store.Enrollments().Create(ctx, &domain.Enrollment{UserID: 1, CourseID: 7}); !errors.Is(err, domain.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
	if _, err := store.Enrollments().Create(ctx, &domain.Enrollment{UserID: 2, CourseID: 7}); err != nil {
		t.Fatalf("different user should enroll: %v", err)
	}
}

// Concurrent writes to distinct lessons of one enrollment must all survive.
func TestSetLessonProgressConcurrent(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	e, err := store.Enrollments().Create(ctx, &domain.Enrollment{UserID: 1, CourseID: 1})
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}

	const lessons = 50
	var wg sync.WaitGroup
	for i := 1; i <= lessons; i++ {
		wg.Add(1)
		go func(lessonID int) {
			defer wg.Done()
			if err := store.Enrollments().SetLessonProgress(ctx, e.ID, lessonID, true); err != nil {
				t.Errorf("set progress lesson %d: %v", lessonID, err)
			}
		}(i)
	}
	wg.Wait()

	got, err := store.Enrollments().FindByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if done := got.CompletedLessons(); done != lessons {
		t.Fatalf("expected %d completed lessons, got %d", lessons, done)
	}
}

func TestEnrollmentCloneIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	e, err := store.Enrollments().Create(ctx, &domain.Enrollment{UserID: 1, CourseID: 1})
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}

	first, _ := store.Enrollments().FindByID(ctx, e.ID)
	first.Progress["99"] = true

	second, _ := store.Enrollments().FindByID(ctx, e.ID)
	if second.LessonCompleted(99) {
		t.Fatal("mutating a returned enrollment leaked into the store")
	}
}

func TestReviewDuplicate(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if _, err := store.Reviews().Create(ctx, &domain.Review{UserID: 3, CourseID: 9, Rating: 5}); err != nil {
		t.Fatalf("create review: %v", err)
	}
	if _, err := store.Reviews().Create(ctx, &domain.Review{UserID: 3, CourseID: 9, Rating: 1}); !errors.Is(err, domain.ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}
}

func TestSectionsAndLessonsOrdered(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for _, order := range []int{3, 1, 2} {
		if _, err := store.Sections().Create(ctx, &domain.Section{Title: "s", CourseID: 1, Order: order}); err != nil {
			t.Fatalf("create section: %v", err)
		}
	}
	secs, err := store.Sections().ListByCourse(ctx, 1)
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	for i, sec := range secs {
		if sec.Order != i+1 {
			t.Fatalf("sections out of order: %+v", secs)
		}
	}
}

func TestCourseUpdateSlugConflict(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if _, err := store.Courses().Create(ctx, &domain.Course{Title: "A", Slug: "taken"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := store.Courses().Create(ctx, &domain.Course{Title: "B", Slug: "free", Description: "keep"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "B2"
	slug := "taken"
	if _, err := store.Courses().Update(ctx, second.ID, ports.UpdateCourseInput{Title: &title, Slug: &slug}); !errors.Is(err, domain.ErrCourseExists) {
		t.Fatalf("expected ErrCourseExists for duplicate slug, got %v", err)
	}

	// The rejected update must not have applied any part of the mask.
	got, err := store.Courses().FindByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Title != "B" || got.Slug != "free" {
		t.Fatalf("rejected update mutated the course: %+v", got)
	}

	// Re-asserting a course's own slug is not a conflict.
	if _, err := store.Courses().Update(ctx, second.ID, ports.UpdateCourseInput{Slug: &got.Slug}); err != nil {
		t.Fatalf("self slug update: %v", err)
	}
}
