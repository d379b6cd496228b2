package route

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/people/students/controller"
	"ecole_backend/internals/features/people/students/service"
	"ecole_backend/internals/revalidate"
)

// Base: /api/a/eleves
func StudentAdminRoutes(admin fiber.Router, svc *service.StudentService, reg *revalidate.Registry) {
	ctl := controller.NewStudentController(svc)

	r := admin.Group("/eleves")
	r.Get("/", reg.Conditional(revalidate.RouteStudents), ctl.List)
	r.Get("/count", ctl.Count)
	r.Get("/by-parent/:id", ctl.ListByParent)
	r.Get("/:id", ctl.Get)
	r.Post("/", ctl.Create)
	r.Put("/:id", ctl.Update)
	r.Delete("/:id", ctl.Delete)
}
