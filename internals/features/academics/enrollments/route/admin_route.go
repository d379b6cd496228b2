package route

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/academics/enrollments/controller"
	"ecole_backend/internals/features/academics/enrollments/service"
	"ecole_backend/internals/revalidate"
)

// Base: /api/a/inscriptions
func EnrollmentAdminRoutes(admin fiber.Router, svc *service.EnrollmentService, reg *revalidate.Registry) {
	ctl := controller.NewEnrollmentController(svc)

	r := admin.Group("/inscriptions")
	r.Get("/", reg.Conditional(revalidate.RouteEnrollments), ctl.List)
	r.Get("/recent", ctl.Recent)
	r.Get("/:key", ctl.Get)
	r.Post("/", ctl.Create)
	r.Put("/:key", ctl.Update)
	r.Delete("/:key", ctl.Delete)
}
