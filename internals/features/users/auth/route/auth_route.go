package route

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/users/auth/controller"
	"ecole_backend/internals/features/users/auth/service"
	rateLimiter "ecole_backend/internals/middlewares"
)

// Base: /api/auth
func AuthRoutes(app fiber.Router, svc *service.AuthService, requireSession ...fiber.Handler) {
	ctl := controller.NewAuthController(svc)

	base := app.Group("/api/auth")
	base.Post("/parent/check-email", rateLimiter.CheckEmailRateLimiter(), ctl.CheckEmail)
	base.Post("/parent/sign-up", rateLimiter.SignUpRateLimiter(), ctl.SignUp)
	base.Get("/me", append(requireSession, ctl.Me)...)
}
