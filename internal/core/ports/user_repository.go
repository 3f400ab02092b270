package ports

import (
	"context"

	"github.com/learnhub/course-platform/internal/core/domain"
)

// UpdateUserRolesInput is a field mask over the two role flags: each flag is
// applied only when its pointer is non-nil.
type UpdateUserRolesInput struct {
	IsAdmin      *bool
	IsInstructor *bool
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRoles(ctx context.Context, id int, in UpdateUserRolesInput) (*domain.User, error)
}
