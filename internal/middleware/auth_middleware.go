package middleware

import (
	"strings"

	"go-pos-backend/internal/repository"
	"go-pos-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth is middleware that validates JWT token and sets user info in context
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// The account must still be active; a deactivated user keeps a
		// syntactically valid token until it expires.
		user, err := userRepo.FindActiveByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found or deactivated"})
		}

		// Set user info in context for downstream handlers
		c.Locals("user_id", user.ID.String())
		c.Locals("user_login", user.Login)
		c.Locals("user_name", user.Name)
		c.Locals("user_role", user.Role)

		return c.Next()
	}
}

// RequireRole checks if the authenticated user carries one of the given roles
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No role found"})
		}

		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires one of " + strings.Join(roles, ", ") + " roles",
		})
	}
}
