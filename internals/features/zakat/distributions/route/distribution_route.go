package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/constants"
	"zakatconnect_backend/internals/features/zakat/distributions/controller"
	"zakatconnect_backend/internals/helpers/events"
	authMiddleware "zakatconnect_backend/internals/middlewares/auth"
)

// /api/a/distributions
// PATCH /:id/status ada di ApprovalRoutes.
func DistributionRoutes(admin fiber.Router, db *gorm.DB, pub events.Publisher, log *zap.Logger) {
	ctrl := controller.NewDistributionController(db, pub, log)

	view := authMiddleware.RequireCapability(log, constants.CapRecordDistributions, constants.CapApproveDistributions)
	record := authMiddleware.RequireCapability(log, constants.CapRecordDistributions)

	admin.Get("/distributions", view, ctrl.List)
	admin.Post("/distributions", record, ctrl.Create)
}
