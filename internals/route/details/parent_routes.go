package details

import (
	"github.com/gofiber/fiber/v2"

	portalRoute "ecole_backend/internals/features/portal/route"
	"ecole_backend/internals/revalidate"
)

func ParentRoutes(parent fiber.Router, s *Services, reg *revalidate.Registry) {
	portalRoute.PortalRoutes(parent, s.Portal, reg)
}
