package auth

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecole_backend/internals/constants"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func sign(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return tok
}

func parentClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "2f1c6a52-6a0e-4c55-9a43-1f0f5f1f8c11",
		"email": "kabongo@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"user_metadata": map[string]any{
			"role":      "parent",
			"parent_id": 12,
		},
	}
}

func testApp() *fiber.App {
	app := fiber.New()
	app.Use(AuthMiddleware(testSecret))
	app.Get("/me", func(c *fiber.Ctx) error { return c.JSON(SessionFrom(c)) })
	app.Get("/admin", OnlyRolesSlice(constants.ErrOnlyAdminsCanAccess, constants.AdminOnly),
		func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/portal", OnlyRolesSlice(constants.ErrOnlyParentsCanAccess, constants.ParentOnly), RequireParentLink(),
		func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

type body struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

func call(t *testing.T, app *fiber.App, path, token string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func TestSessionFromParentToken(t *testing.T) {
	code, raw := call(t, testApp(), "/me", sign(t, parentClaims(), testSecret))
	require.Equal(t, fiber.StatusOK, code)

	var s Session
	require.NoError(t, sonic.Unmarshal(raw, &s))
	assert.Equal(t, "parent", s.Role)
	assert.Equal(t, "kabongo@example.com", s.Email)
	require.NotNil(t, s.ParentID)
	assert.Equal(t, int64(12), *s.ParentID)
	assert.Equal(t, constants.HomeParent, s.Home)
}

func TestMissingRoleDefaultsToAdmin(t *testing.T) {
	claims := parentClaims()
	delete(claims, "user_metadata")
	tok := sign(t, claims, testSecret)

	code, _ := call(t, testApp(), "/admin", tok)
	assert.Equal(t, fiber.StatusOK, code)

	code, raw := call(t, testApp(), "/portal", tok)
	assert.Equal(t, fiber.StatusForbidden, code)
	var b body
	require.NoError(t, sonic.Unmarshal(raw, &b))
	assert.Equal(t, constants.HomeAdmin, b.Redirect)
}

func TestParentRefusedFromAdmin(t *testing.T) {
	code, raw := call(t, testApp(), "/admin", sign(t, parentClaims(), testSecret))
	assert.Equal(t, fiber.StatusForbidden, code)
	var b body
	require.NoError(t, sonic.Unmarshal(raw, &b))
	assert.Equal(t, constants.HomeParent, b.Redirect)

	code, _ = call(t, testApp(), "/portal", sign(t, parentClaims(), testSecret))
	assert.Equal(t, fiber.StatusOK, code)
}

func TestParentWithoutLinkIsRefused(t *testing.T) {
	claims := parentClaims()
	claims["user_metadata"] = map[string]any{"role": "parent"}
	code, _ := call(t, testApp(), "/portal", sign(t, claims, testSecret))
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestRejectedTokensRedirectToLogin(t *testing.T) {
	expired := parentClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	cases := map[string]string{
		"none":      "",
		"bad sig":   sign(t, parentClaims(), "another-secret"),
		"expired":   sign(t, expired, testSecret),
		"not a jwt": "abc.def",
	}
	for name, tok := range cases {
		code, raw := call(t, testApp(), "/me", tok)
		assert.Equal(t, fiber.StatusUnauthorized, code, name)
		var b body
		require.NoError(t, sonic.Unmarshal(raw, &b), name)
		assert.Equal(t, constants.HomeLogin, b.Redirect, name)
	}
}

func TestTokenFromQueryAndCookie(t *testing.T) {
	tok := sign(t, parentClaims(), testSecret)
	app := testApp()

	code, _ := call(t, app, "/me?token="+tok, "")
	assert.Equal(t, fiber.StatusOK, code)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Cookie", sessionCookie+"="+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

type directory map[string]int64

func (d directory) ParentIDByEmail(_ context.Context, email string) (int64, bool, error) {
	if email == "down@example.com" {
		return 0, false, errors.New("connection refused")
	}
	id, ok := d[email]
	return id, ok, nil
}

func boundApp(dir ParentDirectory) *fiber.App {
	app := fiber.New()
	app.Use(AuthMiddleware(testSecret), BindParentByEmail(dir))
	app.Get("/me", func(c *fiber.Ctx) error { return c.JSON(SessionFrom(c)) })
	app.Get("/admin", OnlyRolesSlice(constants.ErrOnlyAdminsCanAccess, constants.AdminOnly),
		func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestParentEmailCannotClaimAdmin(t *testing.T) {
	app := boundApp(directory{"kabongo@example.com": 12})

	claims := parentClaims()
	claims["user_metadata"] = map[string]any{"role": "admin"}
	tok := sign(t, claims, testSecret)

	code, _ := call(t, app, "/admin", tok)
	assert.Equal(t, fiber.StatusForbidden, code)

	delete(claims, "user_metadata")
	code, _ = call(t, app, "/admin", sign(t, claims, testSecret))
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestParentIDComesFromEmail(t *testing.T) {
	app := boundApp(directory{"kabongo@example.com": 12})

	claims := parentClaims()
	claims["user_metadata"] = map[string]any{"role": "parent", "parent_id": 99}
	code, raw := call(t, app, "/me", sign(t, claims, testSecret))
	require.Equal(t, fiber.StatusOK, code)

	var s Session
	require.NoError(t, sonic.Unmarshal(raw, &s))
	require.NotNil(t, s.ParentID)
	assert.Equal(t, int64(12), *s.ParentID)

	claims["email"] = "intrus@example.com"
	code, raw = call(t, app, "/me", sign(t, claims, testSecret))
	require.Equal(t, fiber.StatusOK, code)
	s = Session{}
	require.NoError(t, sonic.Unmarshal(raw, &s))
	assert.Nil(t, s.ParentID)
}

func TestPinnedRoleSkipsDirectory(t *testing.T) {
	app := boundApp(directory{"kabongo@example.com": 12})

	claims := parentClaims()
	claims["app_metadata"] = map[string]any{"role": "admin"}
	code, _ := call(t, app, "/admin", sign(t, claims, testSecret))
	assert.Equal(t, fiber.StatusOK, code)
}

func TestDirectoryFailureIsBadGateway(t *testing.T) {
	app := boundApp(directory{})
	claims := parentClaims()
	claims["email"] = "down@example.com"
	code, _ := call(t, app, "/me", sign(t, claims, testSecret))
	assert.Equal(t, fiber.StatusBadGateway, code)
}
