package route

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/portal/controller"
	"ecole_backend/internals/features/portal/service"
	"ecole_backend/internals/middlewares/auth"
	"ecole_backend/internals/revalidate"
)

// Base: /api/p (role parent + parent_id, see route/index.go)
func PortalRoutes(parent fiber.Router, svc *service.PortalService, reg *revalidate.Registry) {
	ctl := controller.NewPortalController(svc)
	mine := func(route string) fiber.Handler {
		return reg.ConditionalScoped(route, func(c *fiber.Ctx) string {
			id, _ := auth.ParentID(c)
			return strconv.FormatInt(id, 10)
		})
	}

	parent.Get("/me", mine(revalidate.RoutePortal), ctl.Me)
	parent.Get("/children", mine(revalidate.RoutePortal), ctl.Children)
	parent.Get("/payments", mine(revalidate.RoutePortalPayments), ctl.Payments)
	parent.Get("/notifications", mine(revalidate.RoutePortalNotifications), ctl.Notifications)
}
