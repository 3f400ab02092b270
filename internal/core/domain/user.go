package domain

import (
	"errors"
	"time"
)

// Role names derived from the User role flags. Admin implies instructor-level
// permissions everywhere instructors are allowed.
const (
	RoleLearner    = "learner"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")

// User models a registered account: learner by default, optionally promoted
// to instructor or admin.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Bio          string    `json:"bio,omitempty"`
	IsAdmin      bool      `json:"is_admin"`
	IsInstructor bool      `json:"is_instructor"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Role collapses the role flags into a single capability name for tokens and
// route guards. The strongest capability wins.
func (u *User) Role() string {
	switch {
	case u.IsAdmin:
		return RoleAdmin
	case u.IsInstructor:
		return RoleInstructor
	default:
		return RoleLearner
	}
}

// CanManageCourse reports whether a user may mutate a course owned by
// instructorID: the owner or any admin.
func (u *User) CanManageCourse(instructorID int) bool {
	return u.IsAdmin || u.ID == instructorID
}
