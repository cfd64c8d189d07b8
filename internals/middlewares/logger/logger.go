package logger

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"zakatconnect_backend/internals/configs"
)

const HeaderRequestID = "X-Request-ID"

// RequestContext: request id + timeout ke UserContext (dibaca gorm & handler).
// Path di noTimeout (mis. SSE) tidak dibatasi.
func RequestContext(timeout time.Duration, noTimeout ...string) fiber.Handler {
	skip := make(map[string]struct{}, len(noTimeout))
	for _, p := range noTimeout {
		skip[p] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = utils.UUID()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals("request_id", rid)

		ctx := configs.WithRequestID(context.Background(), rid)
		if _, ok := skip[c.Path()]; !ok && timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// LoggerMiddleware mencatat tiap request via zap (status, latency, request id).
func LoggerMiddleware(log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// biar status code final sudah terisi sebelum dicatat
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		lvl := zapcore.InfoLevel
		switch {
		case status >= 500:
			lvl = zapcore.ErrorLevel
		case status >= 400:
			lvl = zapcore.WarnLevel
		}
		rid, _ := c.Locals("request_id").(string)
		log.Check(lvl, "request").Write(
			zap.String("request_id", rid),
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		)
		return nil
	}
}
