package route

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/academics/options/controller"
	"ecole_backend/internals/features/academics/options/service"
	"ecole_backend/internals/revalidate"
)

// Base: /api/a/options
func OptionAdminRoutes(admin fiber.Router, svc *service.OptionService, reg *revalidate.Registry) {
	ctl := controller.NewOptionController(svc)

	r := admin.Group("/options")
	r.Get("/", reg.Conditional(revalidate.RouteOptions), ctl.List)
	r.Get("/:id", ctl.Get)
	r.Post("/", ctl.Create)
	r.Put("/:id", ctl.Update)
	r.Delete("/:id", ctl.Delete)
}
