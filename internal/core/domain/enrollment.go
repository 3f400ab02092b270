package domain

import (
	"errors"
	"math"
	"strconv"
	"time"
)

var ErrEnrollmentNotFound = errors.New("enrollment not found")
var ErrAlreadyEnrolled = errors.New("already enrolled in this course")

// Enrollment is a learner's registration in a course together with their
// per-lesson completion state. Progress maps a lesson id (as a string, the
// wire format inherited from the JSON API) to a completion flag.
//
// IsCompleted is a cached derivation: it is recomputed against the course's
// true lesson count on every progress write. Readers that need certainty
// should still prefer IsFullyCompleted.
type Enrollment struct {
	ID          int             `json:"id"`
	UserID      int             `json:"user_id"`
	CourseID    int             `json:"course_id"`
	EnrolledAt  time.Time       `json:"enrolled_at"`
	Progress    map[string]bool `json:"progress"`
	IsCompleted bool            `json:"is_completed"`
}

// CompletedLessons counts lessons currently marked completed.
func (e *Enrollment) CompletedLessons() int {
	n := 0
	for _, done := range e.Progress {
		if done {
			n++
		}
	}
	return n
}

// LessonCompleted reports whether the given lesson is marked completed.
func (e *Enrollment) LessonCompleted(lessonID int) bool {
	return e.Progress[strconv.Itoa(lessonID)]
}

// CompletionPercent derives the aggregate progress percentage, rounded to the
// nearest integer. A course with no lessons is 0% by definition.
func (e *Enrollment) CompletionPercent(totalLessons int) int {
	if totalLessons <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(e.CompletedLessons()) / float64(totalLessons)))
}

// IsFullyCompleted reports whether every lesson of the course is completed.
func (e *Enrollment) IsFullyCompleted(totalLessons int) bool {
	return totalLessons > 0 && e.CompletedLessons() == totalLessons
}
