package route

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/finance/fees/controller"
	"ecole_backend/internals/features/finance/fees/service"
	"ecole_backend/internals/revalidate"
)

// Base: /api/a/frais
func FeeAdminRoutes(admin fiber.Router, svc *service.FeeService, reg *revalidate.Registry) {
	ctl := controller.NewFeeController(svc)

	r := admin.Group("/frais")
	r.Get("/", reg.Conditional(revalidate.RouteFees), ctl.List)
	r.Get("/:id", ctl.Get)
	r.Post("/", ctl.Create)
	r.Put("/:id", ctl.Update)
	r.Delete("/:id", ctl.Delete)
}
