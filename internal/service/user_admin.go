package service

import (
	"context"
	"fmt"
	"strings"

	"go-task-manager/internal/core/cache"
	"go-task-manager/internal/domain"
	"go-task-manager/pkg/utils"
)

// AdminUserService backs the administrative override path. Targets are
// explicit user ids, not the acting identity; role gating happens before any
// of these methods is reachable.
type AdminUserService struct {
	users domain.UserRepository
	cache *cache.Cache // optional
}

func NewAdminUserService(users domain.UserRepository, c *cache.Cache) *AdminUserService {
	return &AdminUserService{users: users, cache: c}
}

type AdminUpdateUserInput struct {
	Name     *string
	Email    *string
	Role     *string
	Password *string
}

func (s *AdminUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// CreateUser differs from self-registration in one way: an admin may choose
// the role. Absent or blank means "user".
func (s *AdminUserService) CreateUser(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, domain.Invalid("name, email and password are required")
	}
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, domain.Invalid("role must be user or admin")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AdminUserService) UpdateUser(ctx context.Context, id string, in AdminUpdateUserInput) (*domain.User, error) {
	if in.Name == nil && in.Email == nil && in.Role == nil && in.Password == nil {
		return nil, domain.Invalid("no fields to update")
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("name cannot be empty")
		}
		u.Name = name
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, domain.Invalid("email cannot be empty")
		}
		u.Email = email
	}
	if in.Role != nil {
		if *in.Role != domain.RoleUser && *in.Role != domain.RoleAdmin {
			return nil, domain.Invalid("role must be user or admin")
		}
		u.Role = *in.Role
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.Invalid("password cannot be empty")
		}
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return u, nil
}

// DeleteUser removes the account. Task cleanup is left to the store's
// referential policy; callers must not assume it cascades.
func (s *AdminUserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *AdminUserService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userCacheKey(id))
	}
}
