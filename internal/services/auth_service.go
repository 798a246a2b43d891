package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"github.com/luckydraw/draw-backend/internal/config"
	"github.com/luckydraw/draw-backend/internal/models"
	"github.com/luckydraw/draw-backend/internal/repositories"
	"github.com/luckydraw/draw-backend/internal/utils"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// ErrInvalidCredentials is returned for any failed login, without revealing
// whether the username exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthServiceImpl handles operator authentication.
type AuthServiceImpl struct {
	adminRepo repositories.AdminUserRepository
	cfg       *config.Config
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(adminRepo repositories.AdminUserRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		adminRepo: adminRepo,
		cfg:       cfg,
	}
}

// Login verifies credentials and issues a JWT.
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.adminRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(time.Second * time.Duration(s.cfg.JWT.ExpiresIn))
	token, err := utils.GenerateJWT(user.Username, user.Role, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	slog.Info("Operator logged in", "username", user.Username)
	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// Register creates a new operator account with a bcrypt-hashed password.
func (s *AuthServiceImpl) Register(ctx context.Context, username, password, role string) (*models.AdminUser, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if role == "" {
		role = "operator"
	}

	user := &models.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.adminRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}
	return user, nil
}
