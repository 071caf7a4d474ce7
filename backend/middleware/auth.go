package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnsphere/backend/config"
	"learnsphere/backend/models"
	"learnsphere/backend/utils"
)

const currentUserKey = "currentUser"

// AuthMiddleware validates the bearer token, resolves its subject to a stored
// user, and makes the user available to downstream handlers.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := utils.ResolveTokenUser(c, db, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Could not validate credentials")
		}
		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// RequireRole gates a route behind a single role. It must run after
// AuthMiddleware.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || user.Role != role {
			return utils.Forbidden(c, "Insufficient permissions")
		}
		return c.Next()
	}
}

// CurrentUser returns the user resolved by AuthMiddleware, or nil on
// unauthenticated routes.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}
