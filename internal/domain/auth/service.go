package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/familytree/gallery-api/internal/domain/user"
	"github.com/familytree/gallery-api/internal/pkg/jwt"
	"github.com/familytree/gallery-api/internal/pkg/logger"
	"github.com/familytree/gallery-api/internal/pkg/password"
)

// Service handles authentication business logic
type Service struct {
	userRepo   user.Repository
	jwtService *jwt.Service
}

// NewService creates auth service
func NewService(userRepo user.Repository, jwtService *jwt.Service) *Service {
	return &Service{userRepo: userRepo, jwtService: jwtService}
}

// Login checks credentials and issues an access token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	u, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil || !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, u.ID); err != nil {
		logger.LogWarn(ctx, "Failed to record last login", "user_id", u.ID.String(), "error", err.Error())
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        UserResponseFromEntity(u),
	}, nil
}

// Me returns the active user behind a token
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}
	return u, nil
}

// EnsureAdmin creates the bootstrap admin unless a user with that email exists.
// An empty password disables the bootstrap.
func (s *Service) EnsureAdmin(ctx context.Context, cfg AdminConfig) (created bool, err error) {
	if cfg.Password == "" {
		return false, nil
	}

	email := normalizeEmail(cfg.Email)
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("get admin: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	hash, err := password.Hash(cfg.Password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	username := strings.TrimSpace(cfg.Username)
	if username == "" {
		username = "admin"
	}
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      true,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		// lost a race with another instance
		if errors.Is(err, user.ErrEmailAlreadyExists) {
			return false, nil
		}
		return false, err
	}

	logger.LogInfo(ctx, "Admin user created", "email", email)
	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
