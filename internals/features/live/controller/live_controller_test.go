package controller

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecole_backend/internals/features/live/service"
	"ecole_backend/internals/realtime"
)

func liveApp() *fiber.App {
	feeds := service.NewFeeds(realtime.NewListener("", "table_changes", nil), 0)
	feeds.Register("eleve", nil)
	ctl := NewLiveController(feeds, realtime.NewHub())

	app := fiber.New()
	app.Get("/live/:entity", ctl.Upgrade, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusSwitchingProtocols) })
	return app
}

func TestPlainRequestNeedsUpgrade(t *testing.T) {
	resp, err := liveApp().Test(httptest.NewRequest("GET", "/live/eleve", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestUnknownEntityIsNotFound(t *testing.T) {
	req := httptest.NewRequest("GET", "/live/inconnu", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	resp, err := liveApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
