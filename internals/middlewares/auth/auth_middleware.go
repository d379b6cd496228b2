// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"ecole_backend/internals/configs"
	"ecole_backend/internals/constants"
	helper "ecole_backend/internals/helpers"
)

// Locals keys set by AuthMiddleware.
const (
	LocalUserID    = "user_id"
	LocalUserEmail = "user_email"
	LocalRole      = "userRole"
	LocalParentID  = "parent_id"

	// LocalRolePinned is true when the role came from app_metadata, which
	// only the service role can write.
	LocalRolePinned = "role_pinned"
)

// AuthMiddleware verifies the Supabase access token and stores the
// session claims in Locals. secret empty means configs.SupabaseJWTSecret.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := secret
		if key == "" {
			key = configs.SupabaseJWTSecret
		}
		if key == "" {
			log.Println("[ERROR] SUPABASE_JWT_SECRET vide")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		tokenString, err := extractToken(c)
		if err != nil {
			return helper.JsonRedirect(c, fiber.StatusUnauthorized, constants.ErrLoginRequired, constants.HomeLogin)
		}

		claims, err := parseClaims(tokenString, key)
		if err != nil {
			log.Println("[WARN] token refusé:", err)
			return helper.JsonRedirect(c, fiber.StatusUnauthorized, "Session invalide ou expirée.", constants.HomeLogin)
		}

		userID, err := extractSubject(claims)
		if err != nil {
			log.Println("[WARN] sub:", err)
			return helper.JsonRedirect(c, fiber.StatusUnauthorized, "Session invalide.", constants.HomeLogin)
		}
		c.Locals(LocalUserID, userID.String())
		storeClaimsToLocals(c, claims)
		return c.Next()
	}
}

func parseClaims(tokenString, key string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(key), nil
	}); err != nil {
		return nil, err
	}
	if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
		return nil, err
	}
	return claims, nil
}
