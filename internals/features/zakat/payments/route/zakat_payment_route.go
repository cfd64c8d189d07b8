package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"zakatconnect_backend/internals/constants"
	"zakatconnect_backend/internals/features/zakat/payments/controller"
	"zakatconnect_backend/internals/features/zakat/payments/service"
	authMiddleware "zakatconnect_backend/internals/middlewares/auth"
)

// 🔓 /api/public/zakat-payments
func PaymentPublicRoutes(public fiber.Router, svc *service.Service, log *zap.Logger) {
	ctrl := controller.NewPaymentController(svc, log)

	g := public.Group("/zakat-payments")
	g.Post("/", ctrl.Create)
	g.Post("/notification", ctrl.Notification)
	g.Get("/:order_id", ctrl.Status)
}

// 🔐 /api/a/zakat-payments
func PaymentAdminRoutes(admin fiber.Router, svc *service.Service, log *zap.Logger) {
	ctrl := controller.NewPaymentController(svc, log)
	admin.Get("/zakat-payments", authMiddleware.RequireCapability(log, constants.CapRecordCollections), ctrl.List)
}
