package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/constants"
	"zakatconnect_backend/internals/features/zakat/reports/controller"
	"zakatconnect_backend/internals/features/zakat/reports/repository"
	authMiddleware "zakatconnect_backend/internals/middlewares/auth"
)

// /api/a/reports
func ReportRoutes(admin fiber.Router, db *gorm.DB, trendFallback bool, log *zap.Logger) {
	ctrl := controller.NewReportController(repository.New(db, log), trendFallback, log)

	g := admin.Group("/reports", authMiddleware.RequireCapability(log, constants.CapViewReports))
	g.Get("/summary", ctrl.Summary)
	g.Get("/trend", ctrl.Trend)
	g.Get("/breakdown", ctrl.Breakdown)
	g.Get("/export", authMiddleware.RequireCapability(log, constants.CapExportReports), ctrl.Export)
}
