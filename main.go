package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	"zakatconnect_backend/internals/configs"
	database "zakatconnect_backend/internals/databases"
	scheduler "zakatconnect_backend/internals/features/users/auth/scheduler"
	paymentService "zakatconnect_backend/internals/features/zakat/payments/service"
	helper "zakatconnect_backend/internals/helpers"
	"zakatconnect_backend/internals/helpers/dbtime"
	"zakatconnect_backend/internals/helpers/events"
	"zakatconnect_backend/internals/helpers/logger"
	middlewares "zakatconnect_backend/internals/middlewares"
	reqLogger "zakatconnect_backend/internals/middlewares/logger"
	routes "zakatconnect_backend/internals/route"
	"zakatconnect_backend/internals/seeds"
)

func main() {
	cfg, err := configs.LoadEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ config:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer func() { _ = log.Sync() }()

	// 🔌 DB connect + pool + migrasi + warm-up
	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.Fatal("❌ DB connect gagal", zap.Error(err))
	}
	if err := database.TunePool(db, cfg.Database); err != nil {
		log.Fatal("❌ tune pool gagal", zap.Error(err))
	}
	if cfg.Database.RunMigrations {
		if err := database.RunMigrations(db, log); err != nil {
			log.Fatal("❌ migrasi gagal", zap.Error(err))
		}
	}
	if cfg.Database.RunSeeds {
		if err := seeds.RunAllSeeds(context.Background(), db, cfg.Database.SeedDir, log); err != nil {
			log.Fatal("❌ seeding gagal", zap.Error(err))
		}
	}
	database.WarmUpQueries(db, log)

	// ⏱ scheduler setelah DB siap
	cleanup, err := scheduler.StartBlacklistCleanupScheduler(db,
		cfg.Scheduler.BlacklistCleanupSpec, cfg.Scheduler.BlacklistTTL, cfg.Location(), log)
	if err != nil {
		log.Fatal("❌ scheduler gagal", zap.Error(err))
	}

	broker := events.NewBroker(16, log)

	// ✅ MIDTRANS (nil → checkout nonaktif)
	snapClient := paymentService.NewSnapClient(cfg.Midtrans.ServerKey, cfg.Midtrans.Production)
	if snapClient == nil {
		log.Warn("⚠️ MIDTRANS_SERVER_KEY kosong, pembayaran online nonaktif")
	}

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          helper.ErrorHandler,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	// stream SSE tidak boleh kena timeout/kompresi; webhook tidak kena rate limit
	streaming := func(c *fiber.Ctx) bool { return c.Path() == routes.EventsPath }

	app.Use(reqLogger.RequestContext(cfg.App.RequestTimeout, routes.EventsPath))
	app.Use(reqLogger.LoggerMiddleware(log))
	app.Use(middlewares.RecoveryMiddleware(log))
	app.Use(middlewares.CorsMiddleware(cfg.CORS))
	app.Use(middlewares.GlobalRateLimiter(cfg.RateLimit, routes.EventsPath, routes.PaymentNotificationPath))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault, Next: streaming})) // gzip
	app.Use(etag.New(etag.Config{Next: streaming}))                                      // 304 caching
	app.Use(dbtime.UseLocation(cfg.Location()))

	// ✅ Routes
	routes.SetupRoutes(app, routes.Deps{
		DB:     db,
		Config: cfg,
		Broker: broker,
		Snap:   snapClient,
		Log:    log,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		log.Info("✅ Listening", zap.String("port", cfg.App.Port))
		if err := app.Listen("0.0.0.0:" + cfg.App.Port); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("🛑 shutting down...")

	// tutup broker dulu supaya stream SSE selesai
	broker.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Warn("shutdown tidak bersih", zap.Error(err))
	}
	<-cleanup.Stop().Done()
	database.Close(db)
}
