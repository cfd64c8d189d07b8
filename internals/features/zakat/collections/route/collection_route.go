package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/constants"
	"zakatconnect_backend/internals/features/zakat/collections/controller"
	"zakatconnect_backend/internals/helpers/events"
	authMiddleware "zakatconnect_backend/internals/middlewares/auth"
)

// /api/a/collections
func CollectionRoutes(admin fiber.Router, db *gorm.DB, pub events.Publisher, log *zap.Logger) {
	ctrl := controller.NewCollectionController(db, pub, log)

	g := admin.Group("/collections", authMiddleware.RequireCapability(log, constants.CapRecordCollections))
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Post("/", ctrl.Create)
}
