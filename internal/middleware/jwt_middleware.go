package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"alshop/internal/models"
	"alshop/internal/services"
)

// AuthRequired is a Fiber middleware that checks for a valid bearer token
// and stores the caller's identity in the request locals.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authorization header is required",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid or expired token",
			})
		}

		userID, _ := claims["user_id"].(string)
		role, _ := claims["role"].(string)
		c.Locals("user_id", userID)
		c.Locals("role", role)

		return c.Next()
	}
}

// AuthOptional resolves the caller's identity when a valid bearer token
// is present but lets anonymous requests through. Public listing routes
// use it so admins can ask for hidden records.
func AuthOptional(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		parts := strings.SplitN(c.Get("Authorization"), " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := authService.ValidateToken(parts[1]); err == nil {
				userID, _ := claims["user_id"].(string)
				role, _ := claims["role"].(string)
				c.Locals("user_id", userID)
				c.Locals("role", role)
			}
		}
		return c.Next()
	}
}

// RequireRole is the centralized capability guard: it rejects callers
// whose token does not carry the given role. It must run after
// AuthRequired.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, _ := c.Locals("role").(string)
		if models.Role(current) != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "You do not have permission to access this resource",
			})
		}
		return c.Next()
	}
}
