package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// RequireManager ensures an authenticated manager principal is present.
func RequireManager() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Manager == nil {
			return fiber.NewError(http.StatusForbidden, "manager required")
		}
		return c.Next()
	}
}
