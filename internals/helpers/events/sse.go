package events

import (
	"bufio"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	helpersAuth "zakatconnect_backend/internals/helpers/auth"
)

// ScopeFilter: hanya event milik masjid dalam scope.
func ScopeFilter(scope helpersAuth.Scope) func(Event) bool {
	return func(ev Event) bool { return scope.Allows(ev.MosqueID) }
}

// SSEHandler: GET /events → stream text/event-stream sampai client putus.
func SSEHandler(sub Subscriber, keepAlive time.Duration) fiber.Handler {
	if keepAlive <= 0 {
		keepAlive = 25 * time.Second
	}
	return func(c *fiber.Ctx) error {
		scope, err := helpersAuth.ResolveScope(c)
		if err != nil {
			return err
		}

		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderConnection, "keep-alive")
		c.Set("X-Accel-Buffering", "no")

		ch, cancel := sub.Subscribe(ScopeFilter(scope))
		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			defer cancel()
			ticker := time.NewTicker(keepAlive)
			defer ticker.Stop()

			fmt.Fprint(w, ": connected\n\n")
			if w.Flush() != nil {
				return
			}
			for {
				select {
				case ev, ok := <-ch:
					if !ok {
						return
					}
					data, err := sonic.Marshal(ev)
					if err != nil {
						continue
					}
					fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
				case <-ticker.C:
					fmt.Fprint(w, ": ping\n\n")
				}
				// flush gagal = client sudah putus
				if w.Flush() != nil {
					return
				}
			}
		}))
		return nil
	}
}
