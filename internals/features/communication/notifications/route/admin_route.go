package route

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/communication/notifications/controller"
	"ecole_backend/internals/features/communication/notifications/service"
	"ecole_backend/internals/revalidate"
)

// Base: /api/a/notifications
func NotificationAdminRoutes(admin fiber.Router, svc *service.NotificationService, reg *revalidate.Registry) {
	ctl := controller.NewNotificationController(svc)

	r := admin.Group("/notifications")
	r.Get("/", reg.Conditional(revalidate.RouteNotifications), ctl.List)
	r.Get("/:id", ctl.Get)
	r.Post("/", ctl.Create)
	r.Put("/:id", ctl.Update)
	r.Delete("/:id", ctl.Delete)
}
