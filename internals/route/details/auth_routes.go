package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/configs"
	authRoute "zakatconnect_backend/internals/features/users/auth/route"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config, log *zap.Logger) {
	authRoute.AuthRoutes(app, db, cfg, log)
}
