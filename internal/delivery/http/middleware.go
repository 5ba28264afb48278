package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tlcanalytics/backend/internal/auth"
)

// principalKey is the fiber.Ctx local under which the authenticated
// principal's username is stored.
const principalKey = "principal"

// RequireAuth rejects requests without a valid bearer token and attaches
// the principal to the request context.
func RequireAuth(jwtMgr *auth.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		claims, err := jwtMgr.ValidateToken(token)
		if err != nil {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(principalKey, claims.Sub)
		return c.Next()
	}
}
