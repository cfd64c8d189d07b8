package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/constants"
	"zakatconnect_backend/internals/features/zakat/approvals/controller"
	"zakatconnect_backend/internals/features/zakat/approvals/service"
	"zakatconnect_backend/internals/helpers/events"
	authMiddleware "zakatconnect_backend/internals/middlewares/auth"
)

// /api/a/beneficiaries/update-status dan /api/a/distributions/:id/status
func ApprovalRoutes(admin fiber.Router, db *gorm.DB, pub events.Publisher, log *zap.Logger) {
	svc := service.New(service.NewGormStore(db), pub, log)
	ctrl := controller.NewApprovalController(svc, log)

	approve := authMiddleware.RequireCapability(log, constants.CapApproveDistributions)
	admin.Post("/beneficiaries/update-status", approve, ctrl.UpdateBeneficiaryStatus)
	admin.Patch("/distributions/:id/status", approve, ctrl.UpdateDistributionStatus)
}
