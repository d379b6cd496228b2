package route

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/people/parents/controller"
	"ecole_backend/internals/features/people/parents/service"
	"ecole_backend/internals/revalidate"
)

// Base: /api/a/parents
func ParentAdminRoutes(admin fiber.Router, svc *service.ParentService, reg *revalidate.Registry) {
	ctl := controller.NewParentController(svc)

	r := admin.Group("/parents")
	r.Get("/", reg.Conditional(revalidate.RouteParents), ctl.List)
	r.Get("/:id", ctl.Get)
	r.Post("/", ctl.Create)
	r.Put("/:id", ctl.Update)
	r.Delete("/:id", ctl.Delete)
}
