// internals/middlewares/auth/claims_utils.go
package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"ecole_backend/internals/constants"
)

// Supabase keeps the session in this cookie for server-rendered pages.
const sessionCookie = "sb-access-token"

/* ======== Extractors ======== */

// extractToken reads the Bearer header, then the session cookie, then the
// "token" query parameter (browsers cannot set headers on a websocket).
func extractToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		if tok := c.Cookies(sessionCookie); tok != "" {
			auth = "Bearer " + tok
		} else if tok := c.Query("token"); tok != "" {
			auth = "Bearer " + tok
		}
	}
	if auth == "" {
		return "", fmt.Errorf("unauthorized - No token provided")
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - Empty token")
	}
	return tok, nil
}

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) error {
	expUnix, ok := toInt64(claims["exp"])
	if !ok {
		return fmt.Errorf("token has no valid exp")
	}
	expTime := time.Unix(expUnix, 0).UTC()
	if time.Now().UTC().After(expTime.Add(skew)) {
		return fmt.Errorf("token expired at %v", expTime)
	}
	return nil
}

func extractSubject(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("no sub claim")
	}
	return uuid.Parse(strings.TrimSpace(sub))
}

/* ======== Store claims to Locals ======== */

func storeClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if email, ok := claims["email"].(string); ok {
		c.Locals(LocalUserEmail, email)
	}

	app, _ := claims["app_metadata"].(map[string]interface{})
	user, _ := claims["user_metadata"].(map[string]interface{})

	role := constants.RoleAdmin
	if r, ok := roleClaim(app); ok {
		role = r
		c.Locals(LocalRolePinned, true)
	} else if r, ok := roleClaim(user); ok {
		role = r
	}
	c.Locals(LocalRole, role)

	for _, meta := range []map[string]interface{}{app, user} {
		if id, ok := toInt64(meta["parent_id"]); ok && id > 0 {
			c.Locals(LocalParentID, id)
			break
		}
	}
}

func roleClaim(meta map[string]interface{}) (string, bool) {
	r, ok := meta["role"].(string)
	r = strings.ToLower(strings.TrimSpace(r))
	return r, ok && r != ""
}

/* ======== Session accessors ======== */

type Session struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	ParentID *int64 `json:"parent_id,omitempty"`
	Home     string `json:"home"`
}

func SessionFrom(c *fiber.Ctx) Session {
	s := Session{}
	s.UserID, _ = c.Locals(LocalUserID).(string)
	s.Email, _ = c.Locals(LocalUserEmail).(string)
	s.Role, _ = c.Locals(LocalRole).(string)
	if id, ok := ParentID(c); ok {
		s.ParentID = &id
	}
	s.Home = constants.HomeFor(s.Role)
	return s
}

func ParentID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(LocalParentID).(int64)
	return id, ok && id > 0
}

/* ======== Helpers ======== */

// toInt64 accepts the JSON number and string forms a claim may take.
func toInt64(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case int64:
		return t, true
	case int:
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return n, err == nil
	}
	return 0, false
}
