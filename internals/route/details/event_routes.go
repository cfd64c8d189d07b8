package details

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"zakatconnect_backend/internals/helpers/events"
)

const sseKeepAlive = 25 * time.Second

// GET /api/a/events → stream refresh (text/event-stream)
func EventRoutes(admin fiber.Router, sub events.Subscriber) {
	admin.Get("/events", events.SSEHandler(sub, sseKeepAlive))
}
