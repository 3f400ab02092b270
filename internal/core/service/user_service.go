package service

import (
	"context"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

// UserService exposes the admin-only user operations.
type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) UpdateUserRoles(ctx context.Context, id int, in ports.UpdateUserRolesInput) (*domain.User, error) {
	return s.users.UpdateRoles(ctx, id, in)
}
