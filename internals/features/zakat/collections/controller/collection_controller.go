package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/features/zakat/collections/dto"
	"zakatconnect_backend/internals/features/zakat/collections/model"
	giverModel "zakatconnect_backend/internals/features/zakat/givers/model"
	productTypeModel "zakatconnect_backend/internals/features/zakat/product_types/model"
	reportService "zakatconnect_backend/internals/features/zakat/reports/service"
	helper "zakatconnect_backend/internals/helpers"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
	"zakatconnect_backend/internals/helpers/dbtime"
	"zakatconnect_backend/internals/helpers/events"
)

type CollectionController struct {
	DB  *gorm.DB
	Pub events.Publisher
	Log *zap.Logger
}

func NewCollectionController(db *gorm.DB, pub events.Publisher, log *zap.Logger) *CollectionController {
	if log == nil {
		log = zap.NewNop()
	}
	return &CollectionController{DB: db, Pub: events.OrNop(pub), Log: log.Named("collections")}
}

/* =========================================================
   GET /api/a/collections?type=&from=&to=&mosque_id=&page=&per_page=
========================================================= */
func (ctrl *CollectionController) List(c *fiber.Ctx) error {
	scope, err := helpersAuth.ResolveScope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rng, err := dbtime.ParseDateRange(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	p := helper.ResolvePaging(c, 20, 200)

	q := scope.Apply(ctrl.DB.WithContext(c.UserContext()).Model(&model.CollectionModel{}), "mosque_id")
	if t := strings.ToLower(strings.TrimSpace(c.Query("type"))); t != "" {
		if !model.IsValidType(t) {
			return helper.JsonError(c, fiber.StatusBadRequest, "type harus cash atau in_kind")
		}
		q = q.Where("type = ?", t)
	}
	if !rng.From.IsZero() {
		q = q.Where("collection_date >= ?", rng.From)
	}
	if !rng.To.IsZero() {
		q = q.Where("collection_date <= ?", rng.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung penerimaan")
	}
	var rows []model.CollectionModel
	if err := q.Order("collection_date DESC, created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		ctrl.Log.Error("list collections gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil penerimaan")
	}

	prices := ctrl.priceLookup(c, rows)
	out := make([]dto.CollectionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromModel(r, reportService.ValueOf(reportService.CollectionRecordFrom(r), prices)))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows)))
}

// priceLookup hanya untuk product type yang muncul di halaman ini.
// Gagal baca → harga kosong (nilai in_kind = kuantitas).
func (ctrl *CollectionController) priceLookup(c *fiber.Ctx, rows []model.CollectionModel) reportService.PriceLookup {
	seen := map[uuid.UUID]struct{}{}
	ids := make([]uuid.UUID, 0)
	for _, r := range rows {
		if r.ProductTypeID == nil {
			continue
		}
		if _, ok := seen[*r.ProductTypeID]; ok {
			continue
		}
		seen[*r.ProductTypeID] = struct{}{}
		ids = append(ids, *r.ProductTypeID)
	}
	if len(ids) == 0 {
		return reportService.PriceLookup{}
	}

	var products []productTypeModel.ProductTypeModel
	if err := ctrl.DB.WithContext(c.UserContext()).Where("id IN ?", ids).Find(&products).Error; err != nil {
		ctrl.Log.Warn("baca harga product type gagal", zap.Error(err))
		return reportService.PriceLookup{}
	}
	prices := make([]reportService.ProductPrice, 0, len(products))
	for _, p := range products {
		prices = append(prices, reportService.ProductPrice{ID: p.ID, Name: p.Name, Price: p.Price})
	}
	return reportService.NewPriceLookup(prices)
}

// GET /api/a/collections/:id
func (ctrl *CollectionController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID penerimaan tidak valid")
	}
	scope, err := helpersAuth.ResolveScope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var m model.CollectionModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Penerimaan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil penerimaan")
	}
	if !scope.Allows(m.MosqueID) {
		return helper.FromFiberError(c, helpersAuth.ErrMosqueForbidden)
	}

	prices := ctrl.priceLookup(c, []model.CollectionModel{m})
	return helper.JsonOK(c, "ok", dto.FromModel(m, reportService.ValueOf(reportService.CollectionRecordFrom(m), prices)))
}

/* =========================================================
   POST /api/a/collections
   Insert-only; koreksi dicatat sebagai penerimaan baru.
========================================================= */
func (ctrl *CollectionController) Create(c *fiber.Ctx) error {
	u, ok := helpersAuth.GetCurrentUser(c)
	if !ok {
		return helper.FromFiberError(c, helpersAuth.ErrUnauthenticated)
	}

	var req dto.CreateCollectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	if fe := req.AmountErrors(); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	loc := dbtime.GetAppLocation(c)
	on, err := dbtime.ParseDate(req.Date, loc)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"collection_date": {err.Error()}})
	}
	if on.IsZero() {
		on = dbtime.Today(loc)
	}

	mosqueID, err := helpersAuth.ResolveWriteMosque(c, req.MosqueID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	recordedBy := u.ID
	m := req.ToModel(mosqueID, on, &recordedBy)
	prices := reportService.PriceLookup{}
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if m.GiverID != nil {
			var g giverModel.GiverModel
			if err := tx.Select("id", "mosque_id").First(&g, "id = ?", *m.GiverID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusUnprocessableEntity, "Muzakki tidak ditemukan")
				}
				return err
			}
			if g.MosqueID == nil || *g.MosqueID != mosqueID {
				return fiber.NewError(fiber.StatusUnprocessableEntity, "Muzakki bukan milik masjid ini")
			}
		}
		if m.ProductTypeID != nil {
			var p productTypeModel.ProductTypeModel
			if err := tx.First(&p, "id = ?", *m.ProductTypeID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusUnprocessableEntity, "Jenis barang tidak ditemukan")
				}
				return err
			}
			prices = reportService.NewPriceLookup([]reportService.ProductPrice{{ID: p.ID, Name: p.Name, Price: p.Price}})
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.FromFiberError(c, err)
		}
		ctrl.Log.Error("create collection gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mencatat penerimaan")
	}

	value := reportService.ValueOf(reportService.CollectionRecordFrom(m), prices)
	ctrl.Log.Info("💰 collection recorded",
		zap.String("id", m.ID.String()),
		zap.String("mosque_id", m.MosqueID.String()),
		zap.String("type", m.Type),
		zap.String("value", value.StringFixed(2)),
	)
	ctrl.Pub.Publish(c.UserContext(), events.NewEvent(events.TopicCollections, m.MosqueID, m.ID))
	return helper.JsonCreated(c, "Penerimaan zakat dicatat", dto.FromModel(m, value))
}
