package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/polybites/polybites-backend/pkg/auth"
)

// AuthMiddleware validates JWT tokens issued by the identity provider
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		// Store identity in context
		c.Locals("auth_id", claims.AuthID)
		c.Locals("email", claims.Email)

		// Forward identity to the backend
		c.Request().Header.Set("X-Auth-Id", claims.AuthID)
		c.Request().Header.Set("X-User-Email", claims.Email)

		return c.Next()
	}
}

// MutatingAuthMiddleware requires a valid token only for requests that
// change state. Reads stay public the way the web frontend expects.
// When no secret is configured, enforcement is disabled entirely.
func MutatingAuthMiddleware() fiber.Handler {
	required := AuthMiddleware()
	return func(c *fiber.Ctx) error {
		if auth.Secret() == "" {
			return c.Next()
		}
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		return required(c)
	}
}

// OptionalAuthMiddleware validates a token if present but doesn't require it
func OptionalAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := auth.ValidateToken(parts[1]); err == nil {
				c.Locals("auth_id", claims.AuthID)
				c.Locals("email", claims.Email)
			}
		}

		return c.Next()
	}
}
