package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shift-planner/internal/domain"
	"github.com/spec-kit/shift-planner/internal/repository"
	apperrors "github.com/spec-kit/shift-planner/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated manager.
type Principal struct {
	Manager *domain.Manager
}

// AuthMiddleware validates bearer tokens and loads the manager principal.
type AuthMiddleware struct {
	tokens   *TokenManager
	managers repository.ManagerRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, managers repository.ManagerRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, managers: managers}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	manager, err := m.managers.GetByID(c.Context(), claims.ManagerID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("manager not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{Manager: manager})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated manager.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
