package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/constants"
	"zakatconnect_backend/internals/features/zakat/product_types/controller"
	authMiddleware "zakatconnect_backend/internals/middlewares/auth"
)

// /api/a/product-types
func ProductTypeRoutes(admin fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctrl := controller.NewProductTypeController(db, log)
	manage := authMiddleware.RequireCapability(log, constants.CapManageProductTypes)

	g := admin.Group("/product-types")
	g.Get("/", ctrl.List)
	g.Post("/", manage, ctrl.Create)
	g.Patch("/:id", manage, ctrl.Update)
}
