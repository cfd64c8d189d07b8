package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	userRoute "zakatconnect_backend/internals/features/users/user/route"
)

func UserAdminRoutes(admin fiber.Router, db *gorm.DB, log *zap.Logger) {
	userRoute.UserAdminRoutes(admin, db, log)
}
