package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/shift-planner/internal/auth"
	"github.com/spec-kit/shift-planner/internal/config"
	"github.com/spec-kit/shift-planner/internal/domain"
)

func authTestConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 15,
			BcryptCost:            bcrypt.MinCost,
			BootstrapName:         "Administrator",
			BootstrapEmail:        "admin@example.com",
			BootstrapPassword:     "changeme123",
		},
	}
}

func newAuthFixture(t *testing.T, cfg config.Config) (*AuthService, *mockManagerRepo) {
	t.Helper()
	managers := &mockManagerRepo{}
	svc := NewAuthService(cfg, AuthDependencies{
		ManagerRepo: managers,
		Logger:      zap.NewNop(),
	})
	return svc, managers
}

func seedManager(t *testing.T, managers *mockManagerRepo, email, password string) *domain.Manager {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	manager := &domain.Manager{Name: "Manager", Email: email, PasswordHash: hash}
	if err := managers.Create(context.Background(), manager); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return manager
}

func TestAuthLogin(t *testing.T) {
	svc, managers := newAuthFixture(t, authTestConfig())
	seedManager(t, managers, "mgr@example.com", "secret-pass")

	manager, token, exp, err := svc.Login(context.Background(), "mgr@example.com", "secret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" || exp.IsZero() {
		t.Error("expected a token with an expiry")
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.ManagerID != manager.ID {
		t.Errorf("token subject %s does not match manager %s", claims.ManagerID, manager.ID)
	}
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	svc, managers := newAuthFixture(t, authTestConfig())
	seedManager(t, managers, "mgr@example.com", "secret-pass")

	_, _, _, err := svc.Login(context.Background(), "mgr@example.com", "not-the-one")
	if code := errCode(t, err); code != "UNAUTHORIZED" {
		t.Errorf("expected UNAUTHORIZED, got %s", code)
	}
}

func TestAuthLogin_UnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t, authTestConfig())

	_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if code := errCode(t, err); code != "UNAUTHORIZED" {
		t.Errorf("expected UNAUTHORIZED, got %s", code)
	}
}

func TestAuthChangePassword(t *testing.T) {
	svc, managers := newAuthFixture(t, authTestConfig())
	manager := seedManager(t, managers, "mgr@example.com", "secret-pass")

	if err := svc.ChangePassword(context.Background(), manager.ID, "secret-pass", "brand-new-pass"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "mgr@example.com", "brand-new-pass"); err != nil {
		t.Errorf("new password should log in: %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "mgr@example.com", "secret-pass"); err == nil {
		t.Error("old password must stop working")
	}
}

func TestAuthChangePassword_WrongCurrent(t *testing.T) {
	svc, managers := newAuthFixture(t, authTestConfig())
	manager := seedManager(t, managers, "mgr@example.com", "secret-pass")

	err := svc.ChangePassword(context.Background(), manager.ID, "not-the-one", "brand-new-pass")
	if code := errCode(t, err); code != "UNAUTHORIZED" {
		t.Errorf("expected UNAUTHORIZED, got %s", code)
	}
}

func TestAuthChangePassword_TooShort(t *testing.T) {
	svc, managers := newAuthFixture(t, authTestConfig())
	manager := seedManager(t, managers, "mgr@example.com", "secret-pass")

	err := svc.ChangePassword(context.Background(), manager.ID, "secret-pass", "short")
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %s", code)
	}
}

func TestAuthEnsureBootstrapManager(t *testing.T) {
	svc, managers := newAuthFixture(t, authTestConfig())

	if err := svc.EnsureBootstrapManager(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if len(managers.managers) != 1 {
		t.Fatalf("expected 1 manager, got %d", len(managers.managers))
	}
	if _, _, _, err := svc.Login(context.Background(), "admin@example.com", "changeme123"); err != nil {
		t.Errorf("bootstrap credentials should log in: %v", err)
	}

	// A second run must not create another account.
	if err := svc.EnsureBootstrapManager(context.Background()); err != nil {
		t.Fatalf("repeat bootstrap: %v", err)
	}
	if len(managers.managers) != 1 {
		t.Errorf("bootstrap must be a no-op once a manager exists, got %d", len(managers.managers))
	}
}

func TestAuthEnsureBootstrapManager_NoCredentials(t *testing.T) {
	cfg := authTestConfig()
	cfg.Auth.BootstrapEmail = ""
	cfg.Auth.BootstrapPassword = ""
	svc, managers := newAuthFixture(t, cfg)

	if err := svc.EnsureBootstrapManager(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if len(managers.managers) != 0 {
		t.Error("no account should be created without bootstrap credentials")
	}
}
