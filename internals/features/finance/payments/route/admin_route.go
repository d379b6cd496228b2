package route

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/finance/payments/controller"
	"ecole_backend/internals/features/finance/payments/service"
	"ecole_backend/internals/revalidate"
)

// Base: /api/a/paiements
func PaymentAdminRoutes(admin fiber.Router, svc *service.PaymentService, reg *revalidate.Registry) {
	ctl := controller.NewPaymentController(svc)

	r := admin.Group("/paiements")
	r.Get("/", reg.Conditional(revalidate.RoutePayments), ctl.List)
	r.Get("/total", ctl.Total)
	r.Get("/pending/count", ctl.CountPending)
	r.Get("/monthly", ctl.Monthly)
	r.Get("/:id", ctl.Get)
	r.Post("/", ctl.Create)
	r.Put("/:id", ctl.Update)
	r.Delete("/:id", ctl.Delete)
}
