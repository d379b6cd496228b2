package auth

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/constants"
	helper "ecole_backend/internals/helpers"
)

// OnlyRolesSlice memungkinkan akses jika user memiliki salah satu dari role yang diizinkan.
// A refused user is pointed back to their own home.
func OnlyRolesSlice(message string, allowedRoles []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return helper.JsonRedirect(c, fiber.StatusUnauthorized, constants.ErrLoginRequired, constants.HomeLogin)
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return helper.JsonRedirect(c, fiber.StatusForbidden, message, constants.HomeFor(role))
	}
}
