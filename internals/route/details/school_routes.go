package details

import (
	"github.com/gofiber/fiber/v2"

	classRoute "ecole_backend/internals/features/academics/classes/route"
	enrollmentRoute "ecole_backend/internals/features/academics/enrollments/route"
	optionRoute "ecole_backend/internals/features/academics/options/route"
	yearRoute "ecole_backend/internals/features/academics/school_years/route"
	parentRoute "ecole_backend/internals/features/people/parents/route"
	studentRoute "ecole_backend/internals/features/people/students/route"
	"ecole_backend/internals/revalidate"
)

// SchoolAdminRoutes mounts the academic structure and the people records.
func SchoolAdminRoutes(admin fiber.Router, s *Services, reg *revalidate.Registry) {
	yearRoute.SchoolYearAdminRoutes(admin, s.SchoolYears, reg)
	optionRoute.OptionAdminRoutes(admin, s.Options, reg)
	classRoute.ClassAdminRoutes(admin, s.Classes, reg)
	enrollmentRoute.EnrollmentAdminRoutes(admin, s.Enrollments, reg)

	parentRoute.ParentAdminRoutes(admin, s.Parents, reg)
	studentRoute.StudentAdminRoutes(admin, s.Students, reg)
}
