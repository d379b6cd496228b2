package route

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/live/controller"
	"ecole_backend/internals/features/live/service"
	"ecole_backend/internals/realtime"
	"ecole_backend/internals/revalidate"
)

// Base: /api/a/live/:entity
func LiveAdminRoutes(admin fiber.Router, feeds *service.Feeds, hub *realtime.Hub, reg *revalidate.Registry) {
	ctl := controller.NewLiveController(feeds, hub)
	reg.OnInvalidate(service.RelayInvalidations(hub))

	admin.Get("/live/:entity", ctl.Upgrade, ctl.Stream())
}
