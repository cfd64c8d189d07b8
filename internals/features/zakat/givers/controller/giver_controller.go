package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/features/zakat/givers/dto"
	"zakatconnect_backend/internals/features/zakat/givers/model"
	helper "zakatconnect_backend/internals/helpers"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
)

type GiverController struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewGiverController(db *gorm.DB, log *zap.Logger) *GiverController {
	if log == nil {
		log = zap.NewNop()
	}
	return &GiverController{DB: db, Log: log.Named("givers")}
}

// GET /api/a/givers?q=&mosque_id=&page=&per_page=
func (ctrl *GiverController) List(c *fiber.Ctx) error {
	scope, err := helpersAuth.ResolveScope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 100)

	q := scope.Apply(ctrl.DB.WithContext(c.UserContext()).Model(&model.GiverModel{}), "mosque_id")
	if s := strings.ToLower(strings.TrimSpace(c.Query("q"))); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+s+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung muzakki")
	}
	var rows []model.GiverModel
	if err := q.Order("name ASC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		ctrl.Log.Error("list givers gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil muzakki")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows)))
}

// GET /api/a/givers/:id
func (ctrl *GiverController) Get(c *fiber.Ctx) error {
	g, err := ctrl.findScoped(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(g))
}

// POST /api/a/givers
func (ctrl *GiverController) Create(c *fiber.Ctx) error {
	var req dto.CreateGiverRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	// super-admin boleh tanpa masjid; selain itu dipaksa ke masjid scope
	var mosqueID *uuid.UUID
	id, err := helpersAuth.ResolveWriteMosque(c, req.MosqueID)
	switch {
	case err == nil:
		mosqueID = &id
	case errors.Is(err, helpersAuth.ErrMosqueContextMissing):
	default:
		return helper.FromFiberError(c, err)
	}

	g := req.ToModel(mosqueID)
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&g).Error; err != nil {
		ctrl.Log.Error("create giver gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat muzakki")
	}
	return helper.JsonCreated(c, "Muzakki berhasil dibuat", dto.FromModel(g))
}

// PATCH /api/a/givers/:id
func (ctrl *GiverController) Update(c *fiber.Ctx) error {
	var req dto.UpdateGiverRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if fe := helper.ValidateStruct(req); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	g, err := ctrl.findScoped(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !req.Apply(&g) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&g).Error; err != nil {
		ctrl.Log.Error("update giver gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui muzakki")
	}
	return helper.JsonUpdated(c, "Muzakki diperbarui", dto.FromModel(g))
}

// findScoped: :id harus ada dan (kalau bukan super-admin) milik masjid scope.
func (ctrl *GiverController) findScoped(c *fiber.Ctx) (model.GiverModel, error) {
	var g model.GiverModel
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return g, fiber.NewError(fiber.StatusBadRequest, "ID muzakki tidak valid")
	}
	scope, err := helpersAuth.ResolveScope(c)
	if err != nil {
		return g, err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return g, fiber.NewError(fiber.StatusNotFound, "Muzakki tidak ditemukan")
		}
		ctrl.Log.Error("get giver gagal", zap.Error(err))
		return g, err
	}
	if !scope.All && (g.MosqueID == nil || !scope.Allows(*g.MosqueID)) {
		return g, helpersAuth.ErrMosqueForbidden
	}
	return g, nil
}
