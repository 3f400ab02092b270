package domain

import (
	"errors"
	"time"
)

var ErrReviewNotFound = errors.New("review not found")
var ErrAlreadyReviewed = errors.New("course already reviewed")
var ErrNotEnrolled = errors.New("not enrolled in this course")

// Review is a learner's rating of a course. At most one per (user, course),
// and only enrolled learners may review.
type Review struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	CourseID  int       `json:"course_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
