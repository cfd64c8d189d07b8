package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"zakatconnect_backend/internals/configs"
)

func newLimiter(max int, window time.Duration, message string, next func(*fiber.Ctx) bool) fiber.Handler {
	return limiter.New(limiter.Config{
		Next:       next,
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success":    false,
				"message":    message,
				"error_code": "TOO_MANY_REQUESTS",
			})
		},
	})
}

// Global limiter: untuk semua endpoint biasa (stream SSE & webhook dilewati)
func GlobalRateLimiter(cfg configs.RateLimitConfig, skipPaths ...string) fiber.Handler {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}
	return newLimiter(cfg.Max, cfg.Window,
		"❌ Terlalu banyak permintaan. Silakan coba lagi nanti.",
		func(c *fiber.Ctx) bool {
			_, ok := skip[c.Path()]
			return ok
		})
}

// Rate limiter untuk login route (lebih ketat)
func LoginRateLimiter(cfg configs.RateLimitConfig) fiber.Handler {
	return newLimiter(cfg.LoginMax, cfg.LoginWindow,
		"❌ Terlalu banyak percobaan login. Coba beberapa saat lagi.", nil)
}
