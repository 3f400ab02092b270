package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/infrastructure/db/memory"
)

type enrollmentFixture struct {
	store   *memory.Store
	svc     *EnrollmentService
	course  *domain.Course
	lessons []*domain.Lesson
}

// newEnrollmentFixture builds a course with one section and n lessons.
func newEnrollmentFixture(t *testing.T, lessonCount int) *enrollmentFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	course, err := store.Courses().Create(ctx, &domain.Course{Title: "C", Slug: "c", InstructorID: 1})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	section, err := store.Sections().Create(ctx, &domain.Section{Title: "S", CourseID: course.ID, Order: 1})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	lessons := make([]*domain.Lesson, 0, lessonCount)
	for i := 1; i <= lessonCount; i++ {
		l, err := store.Lessons().Create(ctx, &domain.Lesson{Title: "L", SectionID: section.ID, Order: i})
		if err != nil {
			t.Fatalf("create lesson: %v", err)
		}
		lessons = append(lessons, l)
	}

	return &enrollmentFixture{
		store:   store,
		svc:     NewEnrollmentService(store.Enrollments(), store.Courses(), store.Sections(), store.Lessons(), zerolog.Nop()),
		course:  course,
		lessons: lessons,
	}
}

func TestEnrollmentService_Enroll(t *testing.T) {
	f := newEnrollmentFixture(t, 2)
	ctx := context.Background()

	e, err := f.svc.Enroll(ctx, 10, f.course.ID)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if e.IsCompleted || len(e.Progress) != 0 {
		t.Fatalf("new enrollment must start empty: %+v", e)
	}

	if _, err := f.svc.Enroll(ctx, 10, f.course.ID); !errors.Is(err, domain.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
	if _, err := f.svc.Enroll(ctx, 10, 999); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestEnrollmentService_MarkLessonProgress(t *testing.T) {
	f := newEnrollmentFixture(t, 3)
	ctx := context.Background()

	if _, err := f.svc.Enroll(ctx, 10, f.course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	e, err := f.svc.MarkLessonProgress(ctx, 10, f.course.ID, f.lessons[0].ID, true)
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	if !e.LessonCompleted(f.lessons[0].ID) || e.IsCompleted {
		t.Fatalf("unexpected state after one lesson: %+v", e)
	}
	if got := e.CompletionPercent(3); got != 33 {
		t.Fatalf("expected 33%%, got %d", got)
	}

	// Re-marking the same lesson is idempotent.
	e, err = f.svc.MarkLessonProgress(ctx, 10, f.course.ID, f.lessons[0].ID, true)
	if err != nil {
		t.Fatalf("re-mark: %v", err)
	}
	if e.CompletedLessons() != 1 {
		t.Fatalf("re-mark must not double count: %d", e.CompletedLessons())
	}

	if _, err = f.svc.MarkLessonProgress(ctx, 10, f.course.ID, f.lessons[1].ID, true); err != nil {
		t.Fatalf("mark second: %v", err)
	}
	e, err = f.svc.MarkLessonProgress(ctx, 10, f.course.ID, f.lessons[2].ID, true)
	if err != nil {
		t.Fatalf("mark third: %v", err)
	}
	if !e.IsCompleted {
		t.Fatalf("all lessons done, IsCompleted must be true: %+v", e)
	}

	// Unmarking drops the completion flag again.
	e, err = f.svc.MarkLessonProgress(ctx, 10, f.course.ID, f.lessons[2].ID, false)
	if err != nil {
		t.Fatalf("unmark: %v", err)
	}
	if e.IsCompleted {
		t.Fatalf("IsCompleted must recompute to false after unmark: %+v", e)
	}
}

func TestEnrollmentService_MarkLessonProgress_Errors(t *testing.T) {
	f := newEnrollmentFixture(t, 1)
	ctx := context.Background()

	if _, err := f.svc.MarkLessonProgress(ctx, 10, f.course.ID, f.lessons[0].ID, true); !errors.Is(err, domain.ErrEnrollmentNotFound) {
		t.Fatalf("expected ErrEnrollmentNotFound without enrollment, got %v", err)
	}

	if _, err := f.svc.Enroll(ctx, 10, f.course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := f.svc.MarkLessonProgress(ctx, 10, f.course.ID, 999, true); !errors.Is(err, domain.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}
}

// A lesson that exists but hangs off another course must not count against
// this enrollment, otherwise it could flip IsCompleted early.
func TestEnrollmentService_MarkLessonProgress_ForeignLesson(t *testing.T) {
	f := newEnrollmentFixture(t, 1)
	ctx := context.Background()

	other, err := f.store.Courses().Create(ctx, &domain.Course{Title: "Other", Slug: "other", InstructorID: 1})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	otherSection, err := f.store.Sections().Create(ctx, &domain.Section{Title: "S", CourseID: other.ID, Order: 1})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	foreign, err := f.store.Lessons().Create(ctx, &domain.Lesson{Title: "L", SectionID: otherSection.ID, Order: 1})
	if err != nil {
		t.Fatalf("create lesson: %v", err)
	}

	if _, err := f.svc.Enroll(ctx, 10, f.course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := f.svc.MarkLessonProgress(ctx, 10, f.course.ID, foreign.ID, true); !errors.Is(err, domain.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound for foreign lesson, got %v", err)
	}

	e, err := f.store.Enrollments().FindByCourseAndUser(ctx, f.course.ID, 10)
	if err != nil {
		t.Fatalf("find enrollment: %v", err)
	}
	if e.CompletedLessons() != 0 || e.IsCompleted {
		t.Fatalf("foreign lesson leaked into progress: %+v", e)
	}
}

// Concurrent marks of distinct lessons must all land; the serial union is
// what a sequential execution of the same writes would produce.
func TestEnrollmentService_ConcurrentProgress(t *testing.T) {
	const lessonCount = 20
	f := newEnrollmentFixture(t, lessonCount)
	ctx := context.Background()

	if _, err := f.svc.Enroll(ctx, 10, f.course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	var wg sync.WaitGroup
	for _, l := range f.lessons {
		wg.Add(1)
		go func(lessonID int) {
			defer wg.Done()
			if _, err := f.svc.MarkLessonProgress(ctx, 10, f.course.ID, lessonID, true); err != nil {
				t.Errorf("mark lesson %d: %v", lessonID, err)
			}
		}(l.ID)
	}
	wg.Wait()

	e, err := f.store.Enrollments().FindByCourseAndUser(ctx, f.course.ID, 10)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if e.CompletedLessons() != lessonCount {
		t.Fatalf("lost progress writes: %d of %d", e.CompletedLessons(), lessonCount)
	}
	if !e.IsCompleted {
		t.Fatalf("expected completion after all lessons marked")
	}
}

func TestEnrollmentService_ListUserEnrollments(t *testing.T) {
	f := newEnrollmentFixture(t, 4)
	ctx := context.Background()

	if _, err := f.svc.Enroll(ctx, 10, f.course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := f.svc.MarkLessonProgress(ctx, 10, f.course.ID, f.lessons[0].ID, true); err != nil {
		t.Fatalf("mark: %v", err)
	}

	list, err := f.svc.ListUserEnrollments(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 enrollment, got %d", len(list))
	}
	if list[0].Course.ID != f.course.ID {
		t.Fatalf("wrong course: %+v", list[0])
	}
	if list[0].CompletionPercent != 25 {
		t.Fatalf("expected 25%%, got %d", list[0].CompletionPercent)
	}

	empty, err := f.svc.ListUserEnrollments(ctx, 99)
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty list, got %d", len(empty))
	}
}
