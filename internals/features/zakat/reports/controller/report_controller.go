package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"zakatconnect_backend/internals/features/zakat/reports/repository"
	"zakatconnect_backend/internals/features/zakat/reports/service"
	helper "zakatconnect_backend/internals/helpers"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
	"zakatconnect_backend/internals/helpers/dbtime"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	Repo     *repository.Repository
	Bucketer *service.Bucketer
	Log      *zap.Logger
}

func NewReportController(repo *repository.Repository, trendFallback bool, log *zap.Logger) *ReportController {
	if log == nil {
		log = zap.NewNop()
	}
	b := service.NewBucketer()
	b.Fallback = trendFallback
	return &ReportController{Repo: repo, Bucketer: b, Log: log.Named("reports")}
}

// load: scope (+?mosque_id) dan ?from=&to= → dataset.
func (ctrl *ReportController) load(c *fiber.Ctx) (repository.Dataset, dbtime.DateRange, error) {
	scope, err := helpersAuth.ResolveScope(c)
	if err != nil {
		return repository.Dataset{}, dbtime.DateRange{}, err
	}
	rng, err := dbtime.ParseDateRange(c)
	if err != nil {
		return repository.Dataset{}, dbtime.DateRange{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	ds := ctrl.Repo.Load(c.UserContext(), repository.Filter{Scope: scope, Range: rng})
	if len(ds.Degraded) > 0 {
		c.Set("X-Report-Degraded", strings.Join(ds.Degraded, ","))
	}
	return ds, rng, nil
}

// 📊 GET /api/a/reports/summary
func (ctrl *ReportController) Summary(c *fiber.Ctx) error {
	ds, _, err := ctrl.load(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", service.Summarize(ds.Collections, ds.Distributions, ds.Prices))
}

type trendResponse struct {
	service.Trend
	RunningBalance []service.BalancePoint `json:"running_balance"`
}

// 📈 GET /api/a/reports/trend?granularity=monthly|daily
func (ctrl *ReportController) Trend(c *fiber.Ctx) error {
	g, err := service.ParseGranularity(c.Query("granularity"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	ds, _, err := ctrl.load(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	tr := ctrl.Bucketer.Trend(ds.Collections, ds.Distributions, g, ds.Prices)
	return helper.JsonOK(c, "ok", trendResponse{Trend: tr, RunningBalance: service.RunningBalance(tr.Points)})
}

// 🥧 GET /api/a/reports/breakdown?by=type|product|mosque_collected|mosque_distributed|status
func (ctrl *ReportController) Breakdown(c *fiber.Ctx) error {
	by := strings.ToLower(strings.TrimSpace(c.Query("by", "type")))
	ds, _, err := ctrl.load(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var slices []service.Slice
	switch by {
	case "type":
		slices = service.CollectionsByType(ds.Collections, ds.Prices)
	case "product":
		slices = service.CollectionsByProduct(ds.Collections, ds.Prices)
	case "mosque_collected":
		slices = service.CollectedByMosque(ds.Collections, ds.Prices)
	case "mosque_distributed":
		slices = service.DistributedByMosque(ds.Distributions)
	case "status":
		slices = service.DistributedByStatus(ds.Distributions)
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "by harus type, product, mosque_collected, mosque_distributed, atau status")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"by": by, "slices": slices})
}

// 📥 GET /api/a/reports/export?granularity=&from=&to=
func (ctrl *ReportController) Export(c *fiber.Ctx) error {
	g, err := service.ParseGranularity(c.Query("granularity"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	ds, rng, err := ctrl.load(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// export tidak pakai data placeholder
	b := *ctrl.Bucketer
	b.Fallback = false

	buf, err := service.BuildWorkbook(service.Workbook{
		Title:   "Laporan Zakat",
		Period:  periodLabel(rng),
		Summary: service.Summarize(ds.Collections, ds.Distributions, ds.Prices),
		Trend:   b.Trend(ds.Collections, ds.Distributions, g, ds.Prices),
		Mosques: service.TotalsByMosque(ds.Mosques, ds.Collections, ds.Distributions, ds.Prices),
	})
	if err != nil {
		ctrl.Log.Error("build workbook gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat file laporan")
	}

	name := fmt.Sprintf("zakat-report-%s.xlsx", dbtime.Today(dbtime.GetAppLocation(c)).Format("20060102"))
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(buf.Bytes())
}

func periodLabel(rng dbtime.DateRange) string {
	format := func(t time.Time, empty string) string {
		if t.IsZero() {
			return empty
		}
		return t.Format(dbtime.DateLayout)
	}
	if rng.IsZero() {
		return "Semua waktu"
	}
	return format(rng.From, "awal") + " s/d " + format(rng.To, "sekarang")
}
