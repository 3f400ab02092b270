package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

// UserRepository implements ports.UserRepository over the shared Store.
type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, user.Username) || strings.EqualFold(u.Email, user.Email) {
			return nil, domain.ErrUserExists
		}
	}

	r.s.userID++
	u := *user
	u.ID = r.s.userID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.s.users[u.ID] = &u

	clone := u
	return &clone, nil
}

func (r *UserRepository) FindByID(_ context.Context, id int) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, username) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) UpdateRoles(_ context.Context, id int, in ports.UpdateUserRolesInput) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if in.IsAdmin != nil {
		u.IsAdmin = *in.IsAdmin
	}
	if in.IsInstructor != nil {
		u.IsInstructor = *in.IsInstructor
	}
	clone := *u
	return &clone, nil
}

// CategoryRepository implements ports.CategoryRepository.
type CategoryRepository struct{ s *Store }

func (r *CategoryRepository) List(_ context.Context) ([]*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CategoryRepository) FindByID(_ context.Context, id int) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *CategoryRepository) FindBySlug(_ context.Context, slug string) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.categories {
		if c.Slug == slug {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *CategoryRepository) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.categories {
		if c.Slug == category.Slug {
			return nil, domain.ErrCategoryExists
		}
	}

	r.s.categoryID++
	c := *category
	c.ID = r.s.categoryID
	r.s.categories[c.ID] = &c

	clone := c
	return &clone, nil
}

// CourseRepository implements ports.CourseRepository.
type CourseRepository struct{ s *Store }

func (r *CourseRepository) List(_ context.Context, filter ports.CourseFilter) ([]*domain.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	out := make([]*domain.Course, 0, len(r.s.courses))
	for _, c := range r.s.courses {
		if filter.CategoryID != 0 && c.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Featured && !c.IsFeatured {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Title), search) &&
			!strings.Contains(strings.ToLower(c.Description), search) {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CourseRepository) FindByID(_ context.Context, id int) (*domain.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *CourseRepository) FindBySlug(_ context.Context, slug string) (*domain.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.courses {
		if c.Slug == slug {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCourseNotFound
}

func (r *CourseRepository) ListByInstructor(_ context.Context, instructorID int) ([]*domain.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Course{}
	for _, c := range r.s.courses {
		if c.InstructorID == instructorID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CourseRepository) Create(_ context.Context, course *domain.Course) (*domain.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.courses {
		if c.Slug == course.Slug {
			return nil, domain.ErrCourseExists
		}
	}

	r.s.courseID++
	now := time.Now().UTC()
	c := *course
	c.ID = r.s.courseID
	c.CreatedAt = now
	c.UpdatedAt = now
	r.s.courses[c.ID] = &c

	clone := c
	return &clone, nil
}

func (r *CourseRepository) Update(_ context.Context, id int, in ports.UpdateCourseInput) (*domain.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	if in.Slug != nil {
		for otherID, other := range r.s.courses {
			if otherID != id && other.Slug == *in.Slug {
				return nil, domain.ErrCourseExists
			}
		}
	}
	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Slug != nil {
		c.Slug = *in.Slug
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Price != nil {
		c.Price = *in.Price
	}
	if in.ThumbnailURL != nil {
		c.ThumbnailURL = *in.ThumbnailURL
	}
	if in.CategoryID != nil {
		c.CategoryID = *in.CategoryID
	}
	if in.Level != nil {
		c.Level = *in.Level
	}
	if in.DurationHours != nil {
		c.DurationHours = *in.DurationHours
	}
	if in.IsFeatured != nil {
		c.IsFeatured = *in.IsFeatured
	}
	c.UpdatedAt = time.Now().UTC()

	clone := *c
	return &clone, nil
}

func (r *CourseRepository) Delete(_ context.Context, id int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.courses[id]; !ok {
		return false, nil
	}
	delete(r.s.courses, id)
	return true, nil
}

// SectionRepository implements ports.SectionRepository.
type SectionRepository struct{ s *Store }

func (r *SectionRepository) ListByCourse(_ context.Context, courseID int) ([]*domain.Section, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Section{}
	for _, sec := range r.s.sections {
		if sec.CourseID == courseID {
			clone := *sec
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *SectionRepository) FindByID(_ context.Context, id int) (*domain.Section, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sec, ok := r.s.sections[id]
	if !ok {
		return nil, domain.ErrSectionNotFound
	}
	clone := *sec
	return &clone, nil
}

func (r *SectionRepository) Create(_ context.Context, section *domain.Section) (*domain.Section, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.sectionID++
	sec := *section
	sec.ID = r.s.sectionID
	r.s.sections[sec.ID] = &sec

	clone := sec
	return &clone, nil
}

func (r *SectionRepository) Update(_ context.Context, id int, in ports.UpdateSectionInput) (*domain.Section, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sec, ok := r.s.sections[id]
	if !ok {
		return nil, domain.ErrSectionNotFound
	}
	if in.Title != nil {
		sec.Title = *in.Title
	}
	if in.Order != nil {
		sec.Order = *in.Order
	}
	clone := *sec
	return &clone, nil
}

func (r *SectionRepository) Delete(_ context.Context, id int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.sections[id]; !ok {
		return false, nil
	}
	delete(r.s.sections, id)
	return true, nil
}

// LessonRepository implements ports.LessonRepository.
type LessonRepository struct{ s *Store }

func (r *LessonRepository) ListBySection(_ context.Context, sectionID int) ([]*domain.Lesson, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Lesson{}
	for _, l := range r.s.lessons {
		if l.SectionID == sectionID {
			clone := *l
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *LessonRepository) FindByID(_ context.Context, id int) (*domain.Lesson, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.lessons[id]
	if !ok {
		return nil, domain.ErrLessonNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *LessonRepository) CountByCourse(_ context.Context, courseID int) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, l := range r.s.lessons {
		if sec, ok := r.s.sections[l.SectionID]; ok && sec.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (r *LessonRepository) Create(_ context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.lessonID++
	l := *lesson
	l.ID = r.s.lessonID
	r.s.lessons[l.ID] = &l

	clone := l
	return &clone, nil
}

func (r *LessonRepository) Update(_ context.Context, id int, in ports.UpdateLessonInput) (*domain.Lesson, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.lessons[id]
	if !ok {
		return nil, domain.ErrLessonNotFound
	}
	if in.Title != nil {
		l.Title = *in.Title
	}
	if in.Description != nil {
		l.Description = *in.Description
	}
	if in.VideoURL != nil {
		l.VideoURL = *in.VideoURL
	}
	if in.Order != nil {
		l.Order = *in.Order
	}
	if in.DurationMinutes != nil {
		l.DurationMinutes = *in.DurationMinutes
	}
	clone := *l
	return &clone, nil
}

func (r *LessonRepository) Delete(_ context.Context, id int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.lessons[id]; !ok {
		return false, nil
	}
	delete(r.s.lessons, id)
	return true, nil
}

// EnrollmentRepository implements ports.EnrollmentRepository. The progress
// write is a keyed merge under the store lock, never a map replacement.
type EnrollmentRepository struct{ s *Store }

func (r *EnrollmentRepository) Create(_ context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.enrollments {
		if e.UserID == enrollment.UserID && e.CourseID == enrollment.CourseID {
			return nil, domain.ErrAlreadyEnrolled
		}
	}

	r.s.enrollmentID++
	e := *enrollment
	e.ID = r.s.enrollmentID
	if e.EnrolledAt.IsZero() {
		e.EnrolledAt = time.Now().UTC()
	}
	e.Progress = make(map[string]bool)
	e.IsCompleted = false
	r.s.enrollments[e.ID] = &e

	return cloneEnrollment(&e), nil
}

func (r *EnrollmentRepository) FindByID(_ context.Context, id int) (*domain.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.enrollments[id]
	if !ok {
		return nil, domain.ErrEnrollmentNotFound
	}
	return cloneEnrollment(e), nil
}

func (r *EnrollmentRepository) FindByCourseAndUser(_ context.Context, courseID, userID int) (*domain.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, e := range r.s.enrollments {
		if e.CourseID == courseID && e.UserID == userID {
			return cloneEnrollment(e), nil
		}
	}
	return nil, domain.ErrEnrollmentNotFound
}

func (r *EnrollmentRepository) ListByUser(_ context.Context, userID int) ([]*domain.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Enrollment{}
	for _, e := range r.s.enrollments {
		if e.UserID == userID {
			out = append(out, cloneEnrollment(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *EnrollmentRepository) SetLessonProgress(_ context.Context, enrollmentID, lessonID int, completed bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.enrollments[enrollmentID]
	if !ok {
		return domain.ErrEnrollmentNotFound
	}
	if e.Progress == nil {
		e.Progress = make(map[string]bool)
	}
	e.Progress[strconv.Itoa(lessonID)] = completed
	return nil
}

func (r *EnrollmentRepository) SetCompleted(_ context.Context, enrollmentID int, completed bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.enrollments[enrollmentID]
	if !ok {
		return domain.ErrEnrollmentNotFound
	}
	e.IsCompleted = completed
	return nil
}

// ReviewRepository implements ports.ReviewRepository.
type ReviewRepository struct{ s *Store }

func (r *ReviewRepository) ListByCourse(_ context.Context, courseID int) ([]*domain.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Review{}
	for _, rv := range r.s.reviews {
		if rv.CourseID == courseID {
			clone := *rv
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ReviewRepository) FindByCourseAndUser(_ context.Context, courseID, userID int) (*domain.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rv := range r.s.reviews {
		if rv.CourseID == courseID && rv.UserID == userID {
			clone := *rv
			return &clone, nil
		}
	}
	return nil, domain.ErrReviewNotFound
}

func (r *ReviewRepository) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, rv := range r.s.reviews {
		if rv.CourseID == review.CourseID && rv.UserID == review.UserID {
			return nil, domain.ErrAlreadyReviewed
		}
	}

	r.s.reviewID++
	rv := *review
	rv.ID = r.s.reviewID
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now().UTC()
	}
	r.s.reviews[rv.ID] = &rv

	clone := rv
	return &clone, nil
}
