package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/constants"
	"zakatconnect_backend/internals/features/mosques/mosques/controller"
	authMiddleware "zakatconnect_backend/internals/middlewares/auth"
)

// /api/a/mosques
func MosqueAdminRoutes(admin fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctrl := controller.NewMosqueController(db, log)

	g := admin.Group("/mosques")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Post("/", authMiddleware.RequireCapability(log, constants.CapManageMosques), ctrl.Create)
	g.Patch("/:id", authMiddleware.RequireCapability(log, constants.CapManageMosques, constants.CapManageUsers), ctrl.Update)
}

// /api/public/mosques
func MosquePublicRoutes(public fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctrl := controller.NewMosqueController(db, log)
	public.Get("/mosques", ctrl.PublicList)
}
