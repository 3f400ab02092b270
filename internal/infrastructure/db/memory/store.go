// Package memory provides a map-backed implementation of every repository
// port. It is the demo/test storage driver: ids are process-lifetime
// monotonic counters and nothing survives a restart.
//
// All mutation happens under one mutex, so SetLessonProgress is an atomic
// merge by construction: concurrent writes for different lessons of the same
// enrollment cannot clobber each other.
package memory

import (
	"sync"

	"github.com/learnhub/course-platform/internal/core/domain"
)

// Store owns the shared state behind the per-aggregate repositories.
type Store struct {
	mu sync.RWMutex

	users       map[int]*domain.User
	categories  map[int]*domain.Category
	courses     map[int]*domain.Course
	sections    map[int]*domain.Section
	lessons     map[int]*domain.Lesson
	enrollments map[int]*domain.Enrollment
	reviews     map[int]*domain.Review

	userID       int
	categoryID   int
	courseID     int
	sectionID    int
	lessonID     int
	enrollmentID int
	reviewID     int
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		users:       make(map[int]*domain.User),
		categories:  make(map[int]*domain.Category),
		courses:     make(map[int]*domain.Course),
		sections:    make(map[int]*domain.Section),
		lessons:     make(map[int]*domain.Lesson),
		enrollments: make(map[int]*domain.Enrollment),
		reviews:     make(map[int]*domain.Review),
	}
}

// Repository accessors. Each view shares the Store's state and mutex.

func (s *Store) Users() *UserRepository             { return &UserRepository{s: s} }
func (s *Store) Categories() *CategoryRepository    { return &CategoryRepository{s: s} }
func (s *Store) Courses() *CourseRepository         { return &CourseRepository{s: s} }
func (s *Store) Sections() *SectionRepository       { return &SectionRepository{s: s} }
func (s *Store) Lessons() *LessonRepository         { return &LessonRepository{s: s} }
func (s *Store) Enrollments() *EnrollmentRepository { return &EnrollmentRepository{s: s} }
func (s *Store) Reviews() *ReviewRepository         { return &ReviewRepository{s: s} }

func cloneEnrollment(e *domain.Enrollment) *domain.Enrollment {
	clone := *e
	clone.Progress = make(map[string]bool, len(e.Progress))
	for k, v := range e.Progress {
		clone.Progress[k] = v
	}
	return &clone
}
