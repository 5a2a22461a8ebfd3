package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-task-manager/internal/core/auth"
	"go-task-manager/internal/core/cache"
	"go-task-manager/internal/domain"
	"go-task-manager/pkg/utils"
)

const userCacheTTL = 5 * time.Minute

func userCacheKey(id string) string { return "user:" + id }

// Profile is the public projection of a user. The password hash never
// leaves this package.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
	cache *cache.Cache // optional; nil disables the read-through cache
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer, c *cache.Cache) *AuthService {
	return &AuthService{users: users, jwter: jwter, cache: c}
}

// Register creates an account with role "user", no matter what the request
// payload claimed. Privilege escalation via the registration body is a
// rejected input, not a supported path.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, domain.Invalid("name, email and password are required")
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
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues a bearer token carrying {id, role}
// with the configured validity window. The user-not-found and wrong-password
// outcomes stay distinct, matching the observable behavior of the system
// this replaces.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, domain.ErrUserNotFound
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}
	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return tok, u, nil
}

// Me resolves the acting identity to its profile. ErrUserNotFound means the
// subject was deleted after the token was issued; the caller must treat the
// session as dead and force re-authentication.
func (s *AuthService) Me(ctx context.Context, uid string) (*Profile, error) {
	if s.cache == nil {
		return s.loadProfile(ctx, uid)
	}
	p, err := cache.GetOrLoadJSON(s.cache, ctx, userCacheKey(uid), userCacheTTL, func(ctx context.Context) (*Profile, error) {
		return s.loadProfile(ctx, uid)
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUserNotFound
	}
	return p, nil
}

func (s *AuthService) loadProfile(ctx context.Context, uid string) (*Profile, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return &Profile{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}, nil
}
