package details

import (
	"github.com/gofiber/fiber/v2"

	feeRoute "ecole_backend/internals/features/finance/fees/route"
	paymentRoute "ecole_backend/internals/features/finance/payments/route"
	"ecole_backend/internals/revalidate"
)

func FinanceAdminRoutes(admin fiber.Router, s *Services, reg *revalidate.Registry) {
	feeRoute.FeeAdminRoutes(admin, s.Fees, reg)
	paymentRoute.PaymentAdminRoutes(admin, s.Payments, reg)
}
