package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	approvalRoute "zakatconnect_backend/internals/features/zakat/approvals/route"
	beneficiaryRoute "zakatconnect_backend/internals/features/zakat/beneficiaries/route"
	collectionRoute "zakatconnect_backend/internals/features/zakat/collections/route"
	distributionRoute "zakatconnect_backend/internals/features/zakat/distributions/route"
	giverRoute "zakatconnect_backend/internals/features/zakat/givers/route"
	paymentRoute "zakatconnect_backend/internals/features/zakat/payments/route"
	paymentService "zakatconnect_backend/internals/features/zakat/payments/service"
	productTypeRoute "zakatconnect_backend/internals/features/zakat/product_types/route"
	reportRoute "zakatconnect_backend/internals/features/zakat/reports/route"
	"zakatconnect_backend/internals/helpers/events"
)

type ZakatDeps struct {
	DB            *gorm.DB
	Pub           events.Publisher
	Snap          paymentService.SnapClient
	ServerKey     string
	TrendFallback bool
	Log           *zap.Logger
}

func (d ZakatDeps) payments() *paymentService.Service {
	return paymentService.New(d.DB, d.Snap, d.ServerKey, d.Pub, d.Log)
}

// 🔓 /api/public/...
func ZakatPublicRoutes(public fiber.Router, d ZakatDeps) {
	paymentRoute.PaymentPublicRoutes(public, d.payments(), d.Log)
}

// 🔐 /api/a/...
func ZakatAdminRoutes(admin fiber.Router, d ZakatDeps) {
	productTypeRoute.ProductTypeRoutes(admin, d.DB, d.Log)
	giverRoute.GiverRoutes(admin, d.DB, d.Log)

	// approval dulu: path-nya satu prefix dengan beneficiaries/distributions
	approvalRoute.ApprovalRoutes(admin, d.DB, d.Pub, d.Log)
	beneficiaryRoute.BeneficiaryRoutes(admin, d.DB, d.Pub, d.Log)
	distributionRoute.DistributionRoutes(admin, d.DB, d.Pub, d.Log)

	collectionRoute.CollectionRoutes(admin, d.DB, d.Pub, d.Log)
	paymentRoute.PaymentAdminRoutes(admin, d.payments(), d.Log)
	reportRoute.ReportRoutes(admin, d.DB, d.TrendFallback, d.Log)
}
