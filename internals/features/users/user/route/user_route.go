package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/constants"
	userController "zakatconnect_backend/internals/features/users/user/controller"
	authMiddleware "zakatconnect_backend/internals/middlewares/auth"
)

// /api/a/users
func UserAdminRoutes(admin fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctrl := userController.NewUserController(db, log)

	users := admin.Group("/users", authMiddleware.RequireCapability(log, constants.CapManageUsers))
	users.Get("/", ctrl.GetUsers)
	users.Get("/:id", ctrl.GetUser)
	users.Post("/", ctrl.CreateUser)
	users.Patch("/:id", ctrl.UpdateUser)
}
