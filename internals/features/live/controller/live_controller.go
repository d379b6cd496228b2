package controller

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/live/service"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/realtime"
)

const (
	localFeed = "live_feed"
	seedWait  = 10 * time.Second
)

type LiveController struct {
	Feeds *service.Feeds
	Hub   *realtime.Hub
}

func NewLiveController(feeds *service.Feeds, hub *realtime.Hub) *LiveController {
	return &LiveController{Feeds: feeds, Hub: hub}
}

// Upgrade resolves :entity before the handshake so unknown tables get a
// plain HTTP error.
func (ctl *LiveController) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return helper.JsonError(c, fiber.StatusUpgradeRequired, "Connexion WebSocket requise.")
	}
	f, ok := ctl.Feeds.Lookup(c.Params("entity"))
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Entité inconnue : "+c.Params("entity"))
	}
	c.Locals(localFeed, f)
	return c.Next()
}

// GET /live/:entity (ws)
func (ctl *LiveController) Stream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		f, _ := conn.Locals(localFeed).(service.Feed)
		if f == nil {
			return
		}
		ctl.Hub.Serve(conn, conn.Params("entity"), func(cl *realtime.Client) func() {
			ctx, cancel := context.WithTimeout(context.Background(), seedWait)
			defer cancel()
			return ctl.Feeds.Open(ctx, f, cl)
		})
	})
}
