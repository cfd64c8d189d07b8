package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"zakatconnect_backend/internals/constants"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
)

// RequireCapability: lolos kalau role user punya SALAH SATU capability.
func RequireCapability(log *zap.Logger, caps ...constants.Capability) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		u, ok := helpersAuth.GetCurrentUser(c)
		if !ok {
			return helpersAuth.ErrUnauthenticated
		}
		for _, cp := range caps {
			if u.Can(cp) {
				return c.Next()
			}
		}
		log.Debug("capability ditolak",
			zap.String("role", u.Role),
			zap.String("path", c.Path()),
		)
		if len(caps) > 0 {
			return fiber.NewError(fiber.StatusForbidden, constants.CapabilityError(caps[0]))
		}
		return fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}
}
