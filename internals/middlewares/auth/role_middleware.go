package auth

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/constants"
	helper "ecole_backend/internals/helpers"
)

// ParentDirectory finds the parent record whose email matches a session.
type ParentDirectory interface {
	ParentIDByEmail(ctx context.Context, email string) (int64, bool, error)
}

// BindParentByEmail makes the parent table, not user_metadata, decide who
// is a parent: users can edit their own user_metadata, but the email claim
// is Supabase's. A session whose email belongs to a parent becomes that
// parent; any other session loses the parent_id it claimed. A role pinned
// in app_metadata is left alone.
func BindParentByEmail(dir ParentDirectory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if pinned, _ := c.Locals(LocalRolePinned).(bool); pinned {
			return c.Next()
		}
		email, _ := c.Locals(LocalUserEmail).(string)
		id, found := int64(0), false
		if email != "" {
			var err error
			id, found, err = dir.ParentIDByEmail(c.UserContext(), email)
			if err != nil {
				log.Printf("[ERROR] vérification parent %q: %v", email, err)
				return helper.JsonError(c, fiber.StatusBadGateway, constants.ErrSessionCheckFailed)
			}
		}
		if found {
			c.Locals(LocalRole, constants.RoleParent)
			c.Locals(LocalParentID, id)
		} else {
			c.Locals(LocalParentID, nil)
		}
		return c.Next()
	}
}

// RequireParentLink lets a parent through only when the session names the
// parent record it belongs to.
func RequireParentLink() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := ParentID(c); ok {
			return c.Next()
		}
		log.Printf("[WARN] parent sans parent_id: user %v", c.Locals(LocalUserID))
		return helper.JsonRedirect(c, fiber.StatusForbidden, constants.ErrNoParentLinked, constants.HomeAdmin)
	}
}

// Shortcut biar lebih clean pemakaian
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return OnlyRolesSlice(customMessage, roles)
}
