package route

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/dashboard/controller"
	"ecole_backend/internals/features/dashboard/service"
	"ecole_backend/internals/revalidate"
)

// Base: /api/a/dashboard
func DashboardAdminRoutes(admin fiber.Router, svc *service.DashboardService, reg *revalidate.Registry) {
	ctl := controller.NewDashboardController(svc)
	admin.Get("/dashboard", reg.Conditional(revalidate.RouteDashboard), ctl.Summary)
}
