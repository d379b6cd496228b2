package route

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/academics/classes/controller"
	"ecole_backend/internals/features/academics/classes/service"
	"ecole_backend/internals/revalidate"
)

// Base: /api/a/classes
func ClassAdminRoutes(admin fiber.Router, svc *service.ClassService, reg *revalidate.Registry) {
	ctl := controller.NewClassController(svc)

	r := admin.Group("/classes")
	r.Get("/", reg.Conditional(revalidate.RouteClasses), ctl.List)
	r.Get("/count", ctl.Count)
	r.Get("/:id", ctl.Get)
	r.Post("/", ctl.Create)
	r.Put("/:id", ctl.Update)
	r.Delete("/:id", ctl.Delete)
}
