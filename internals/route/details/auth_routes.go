package details

import (
	"github.com/gofiber/fiber/v2"

	authRoute "ecole_backend/internals/features/users/auth/route"
	authMiddleware "ecole_backend/internals/middlewares/auth"
)

func AuthRoutes(app fiber.Router, s *Services) {
	authRoute.AuthRoutes(app, s.Auth,
		authMiddleware.AuthMiddleware(""),
		authMiddleware.BindParentByEmail(s.Parents),
	)
}
