package route

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/academics/school_years/controller"
	"ecole_backend/internals/features/academics/school_years/service"
	"ecole_backend/internals/revalidate"
)

// Base: /api/a/anneescolaire
func SchoolYearAdminRoutes(admin fiber.Router, svc *service.SchoolYearService, reg *revalidate.Registry) {
	ctl := controller.NewSchoolYearController(svc)

	r := admin.Group("/anneescolaire")
	r.Get("/", reg.Conditional(revalidate.RouteSchoolYears), ctl.List)
	r.Get("/current", ctl.Current)
	r.Get("/:id", ctl.Get)
	r.Post("/", ctl.Create)
	r.Put("/:id", ctl.Update)
	r.Delete("/:id", ctl.Delete)
}
