package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/constants"
	"zakatconnect_backend/internals/features/zakat/givers/controller"
	authMiddleware "zakatconnect_backend/internals/middlewares/auth"
)

// /api/a/givers
func GiverRoutes(admin fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctrl := controller.NewGiverController(db, log)

	g := admin.Group("/givers", authMiddleware.RequireCapability(log, constants.CapManageGivers))
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Post("/", ctrl.Create)
	g.Patch("/:id", ctrl.Update)
}
