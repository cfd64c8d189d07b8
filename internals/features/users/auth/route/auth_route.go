package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/configs"
	"zakatconnect_backend/internals/features/users/auth/controller"
	"zakatconnect_backend/internals/features/users/auth/service"
	rateLimiter "zakatconnect_backend/internals/middlewares"
	authMiddleware "zakatconnect_backend/internals/middlewares/auth"
)

// Base: /api/auth
func AuthRoutes(app fiber.Router, db *gorm.DB, cfg *configs.Config, log *zap.Logger) {
	svc := service.NewAuthService(db, cfg.JWT.Secret, cfg.JWT.AccessTTL)
	ctrl := controller.NewAuthController(svc, log)

	baseAuth := app.Group("/api/auth")

	// 🔓 public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(cfg.RateLimit), ctrl.Login)

	// 🔐 butuh token
	protected := baseAuth.Group("", authMiddleware.AuthMiddleware(db, authMiddleware.Options{
		Secret: cfg.JWT.Secret,
		Log:    log,
	}))
	protected.Post("/logout", ctrl.Logout)
	protected.Get("/me", ctrl.Me)
	protected.Post("/change-password", ctrl.ChangePassword)
}
