// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/configs"
	paymentService "zakatconnect_backend/internals/features/zakat/payments/service"
	"zakatconnect_backend/internals/helpers/events"
	authMiddleware "zakatconnect_backend/internals/middlewares/auth"
	routeDetails "zakatconnect_backend/internals/route/details"
)

// path yang tidak boleh kena timeout / rate limit / kompresi
const (
	EventsPath              = "/api/a/events"
	PaymentNotificationPath = "/api/public/zakat-payments/notification"
)

// Deps: semua yang dibutuhkan untuk memasang route.
type Deps struct {
	DB     *gorm.DB
	Config *configs.Config
	Broker *events.Broker
	Snap   paymentService.SnapClient
	Log    *zap.Logger
}

var startTime time.Time

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("routes")

	BaseRoutes(app, d.DB)

	// ===================== AUTH =====================
	log.Info("Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, d.DB, d.Config, d.Log)

	// ===================== GROUPS =====================

	// PUBLIC → tanpa token
	log.Info("Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// ADMIN → JWT + blacklist; capability dicek per route
	log.Info("Setting up ADMIN group (Auth + capability)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(d.DB, authMiddleware.Options{
			Secret: d.Config.JWT.Secret,
			Log:    d.Log,
		}),
	)

	// ===================== MOUNT ROUTES =====================

	log.Info("Mounting Mosque routes...")
	routeDetails.MosquePublicRoutes(public, d.DB, d.Log)
	routeDetails.MosqueAdminRoutes(admin, d.DB, d.Log)

	log.Info("Mounting User routes...")
	routeDetails.UserAdminRoutes(admin, d.DB, d.Log)

	log.Info("Mounting Zakat routes...")
	routeDetails.ZakatPublicRoutes(public, d.zakat())
	routeDetails.ZakatAdminRoutes(admin, d.zakat())

	log.Info("Mounting Events stream...")
	routeDetails.EventRoutes(admin, d.Broker)
}

func (d Deps) zakat() routeDetails.ZakatDeps {
	return routeDetails.ZakatDeps{
		DB:            d.DB,
		Pub:           d.Broker,
		Snap:          d.Snap,
		ServerKey:     d.Config.Midtrans.ServerKey,
		TrendFallback: d.Config.Reports.TrendFallback,
		Log:           d.Log,
	}
}
