package seed_test

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/learnhub/course-platform/internal/core/ports"
	"github.com/learnhub/course-platform/internal/infrastructure/db/memory"
	"github.com/learnhub/course-platform/internal/infrastructure/db/seed"
)

func demoRepos(store *memory.Store) seed.Repos {
	return seed.Repos{
		Users:      store.Users(),
		Categories: store.Categories(),
		Courses:    store.Courses(),
		Sections:   store.Sections(),
		Lessons:    store.Lessons(),
	}
}

func TestDemo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	if err := seed.Demo(ctx, demoRepos(store)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	admin, err := store.Users().FindByUsername(ctx, seed.AdminUsername)
	if err != nil {
		t.Fatalf("seeded admin missing: %v", err)
	}
	if !admin.IsAdmin || !admin.IsInstructor {
		t.Fatalf("admin roles not set: %+v", admin)
	}
	// The demo credential must actually authenticate.
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(seed.AdminPassword)); err != nil {
		t.Fatalf("admin password hash does not verify: %v", err)
	}

	cats, _ := store.Categories().List(ctx)
	if len(cats) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(cats))
	}

	courses, _ := store.Courses().List(ctx, ports.CourseFilter{})
	if len(courses) != 3 {
		t.Fatalf("expected 3 courses, got %d", len(courses))
	}

	count, _ := store.Lessons().CountByCourse(ctx, courses[0].ID)
	if count != 4 {
		t.Fatalf("expected 4 lessons in the bootcamp, got %d", count)
	}
}

func TestDemoIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	if err := seed.Demo(ctx, demoRepos(store)); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := seed.Demo(ctx, demoRepos(store)); err != nil {
		t.Fatalf("second seed must be a no-op: %v", err)
	}

	cats, _ := store.Categories().List(ctx)
	if len(cats) != 5 {
		t.Fatalf("re-seeding duplicated the catalog: %d categories", len(cats))
	}
}
