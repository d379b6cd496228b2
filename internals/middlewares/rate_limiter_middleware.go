package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "ecole_backend/internals/helpers"
)

func limitBy(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		perMinute = 100
	}
	return limitBy(perMinute, time.Minute, "Trop de requêtes. Réessayez dans un instant.")
}

// CheckEmailRateLimiter keeps the parent email lookup from being used to
// enumerate addresses.
func CheckEmailRateLimiter() fiber.Handler {
	return limitBy(5, time.Minute, "Trop de vérifications d'e-mail. Réessayez dans une minute.")
}

func SignUpRateLimiter() fiber.Handler {
	return limitBy(3, 5*time.Minute, "Trop de tentatives d'inscription. Patientez quelques minutes.")
}
