package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poiuyt183/efunny-learn-sub001/app/models"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/usercontext"
)

// RequireAuth ensures a logged-in session and returns JSON 401 otherwise.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	return c.Next()
}

// RequireParent ensures a logged-in parent account.
func RequireParent(c *fiber.Ctx) error {
	return requireRole(c, models.ROLE_PARENT)
}

// RequireTutor ensures a logged-in tutor account.
func RequireTutor(c *fiber.Ctx) error {
	return requireRole(c, models.ROLE_TUTOR)
}

// RequireAdmin ensures a logged-in admin account.
func RequireAdmin(c *fiber.Ctx) error {
	return requireRole(c, models.ROLE_ADMIN)
}

func requireRole(c *fiber.Ctx, role string) error {
	ctx := usercontext.GetUserContext(c)
	if !ctx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	if ctx.Role != role && ctx.Role != models.ROLE_ADMIN {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "insufficient role",
		})
	}
	return c.Next()
}
