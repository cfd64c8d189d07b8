package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/constants"
	"zakatconnect_backend/internals/features/zakat/beneficiaries/controller"
	"zakatconnect_backend/internals/helpers/events"
	authMiddleware "zakatconnect_backend/internals/middlewares/auth"
)

// /api/a/beneficiaries
// Perubahan status lewat ApprovalRoutes (POST /beneficiaries/update-status).
func BeneficiaryRoutes(admin fiber.Router, db *gorm.DB, pub events.Publisher, log *zap.Logger) {
	ctrl := controller.NewBeneficiaryController(db, pub, log)
	manage := authMiddleware.RequireCapability(log, constants.CapManageBeneficiaries)

	g := admin.Group("/beneficiaries")
	g.Get("/", manage, ctrl.List)
	g.Get("/:id", manage, ctrl.Get)
	g.Post("/", manage, ctrl.Create)
	g.Patch("/:id", manage, ctrl.Update)
}
