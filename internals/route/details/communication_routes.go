package details

import (
	"github.com/gofiber/fiber/v2"

	notificationRoute "ecole_backend/internals/features/communication/notifications/route"
	dashboardRoute "ecole_backend/internals/features/dashboard/route"
	liveRoute "ecole_backend/internals/features/live/route"
	"ecole_backend/internals/realtime"
	"ecole_backend/internals/revalidate"
)

// CommunicationAdminRoutes mounts notifications, the dashboard and the
// live list sockets.
func CommunicationAdminRoutes(admin fiber.Router, s *Services, reg *revalidate.Registry, hub *realtime.Hub) {
	notificationRoute.NotificationAdminRoutes(admin, s.Notifications, reg)
	dashboardRoute.DashboardAdminRoutes(admin, s.Dashboard, reg)
	liveRoute.LiveAdminRoutes(admin, s.Feeds, hub, reg)
}
