package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-planner/internal/auth"
	"github.com/spec-kit/shift-planner/internal/config"
	"github.com/spec-kit/shift-planner/internal/domain"
	"github.com/spec-kit/shift-planner/internal/repository"
	apperrors "github.com/spec-kit/shift-planner/pkg/util/errorutil"
)

// AuthService coordinates manager login and password management.
type AuthService struct {
	managers   repository.ManagerRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	bootstrap  config.AuthConfig
	logger     *zap.Logger
}

// AuthDependencies encapsulates repo requirements for the auth service.
type AuthDependencies struct {
	ManagerRepo repository.ManagerRepository
	Logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		managers:   deps.ManagerRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		bootstrap:  cfg.Auth,
		logger:     deps.Logger,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates a manager and issues a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Manager, string, time.Time, error) {
	manager, err := s.managers.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(manager.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(manager.ID, manager.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return manager, token, exp, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, managerID, current, next string) error {
	if err := auth.ValidatePassword(next); err != nil {
		return apperrors.NewValidationError("password too short", map[string]any{
			"min_length": auth.MinPasswordLength,
		})
	}
	manager, err := s.managers.GetByID(ctx, managerID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("manager", map[string]any{"manager_id": managerID})
		}
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(manager.PasswordHash, current); err != nil {
		return apperrors.NewUnauthorized("current password does not match")
	}
	hash, err := auth.HashPassword(next, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.managers.UpdatePassword(ctx, managerID, hash); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// EnsureBootstrapManager creates the first manager account from env
// configuration when the table is empty. A no-op otherwise.
func (s *AuthService) EnsureBootstrapManager(ctx context.Context) error {
	count, err := s.managers.Count(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}
	if count > 0 {
		return nil
	}
	if s.bootstrap.BootstrapEmail == "" || s.bootstrap.BootstrapPassword == "" {
		s.logger.Warn("no manager accounts and no bootstrap credentials configured")
		return nil
	}

	hash, err := auth.HashPassword(s.bootstrap.BootstrapPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	manager := &domain.Manager{
		Name:         s.bootstrap.BootstrapName,
		Email:        s.bootstrap.BootstrapEmail,
		PasswordHash: hash,
	}
	if err := s.managers.Create(ctx, manager); err != nil {
		return apperrors.MapError(err)
	}
	s.logger.Info("bootstrap manager created", zap.String("email", manager.Email))
	return nil
}
