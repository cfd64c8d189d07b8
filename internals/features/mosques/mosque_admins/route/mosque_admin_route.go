package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/constants"
	"zakatconnect_backend/internals/features/mosques/mosque_admins/controller"
	authMiddleware "zakatconnect_backend/internals/middlewares/auth"
)

func MosqueAdminRoutes(api fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctrl := controller.NewMosqueAdminController(db, log)

	admin := api.Group("/mosque-admins", authMiddleware.RequireCapability(log, constants.CapManageUsers))
	admin.Post("/", ctrl.AddAdmin)
	admin.Get("/", ctrl.GetAdminsByMosque)
	admin.Put("/revoke", ctrl.RevokeAdmin)
}
