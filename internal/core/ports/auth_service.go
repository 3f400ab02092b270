package ports

import (
	"context"

	"github.com/learnhub/course-platform/internal/core/domain"
)

// RegisterInput carries the fields a new account is created from. Role flags
// are never client-settable; new accounts start as learners.
type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	AvatarURL string
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login accepts the username or email and returns a signed token on success.
	Login(ctx context.Context, login, password string) (string, *domain.User, error)
}

// UserService implements the admin-only user management operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUserRoles(ctx context.Context, id int, in UpdateUserRolesInput) (*domain.User, error)
}
