package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	mosqueAdminRoute "zakatconnect_backend/internals/features/mosques/mosque_admins/route"
	mosqueRoute "zakatconnect_backend/internals/features/mosques/mosques/route"
)

func MosquePublicRoutes(public fiber.Router, db *gorm.DB, log *zap.Logger) {
	mosqueRoute.MosquePublicRoutes(public, db, log)
}

func MosqueAdminRoutes(admin fiber.Router, db *gorm.DB, log *zap.Logger) {
	mosqueRoute.MosqueAdminRoutes(admin, db, log)
	mosqueAdminRoute.MosqueAdminRoutes(admin, db, log)
}
