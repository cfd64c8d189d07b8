package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/features/mosques/mosques/dto"
	"zakatconnect_backend/internals/features/mosques/mosques/model"
	helper "zakatconnect_backend/internals/helpers"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
)

type MosqueController struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewMosqueController(db *gorm.DB, log *zap.Logger) *MosqueController {
	if log == nil {
		log = zap.NewNop()
	}
	return &MosqueController{DB: db, Log: log.Named("mosques")}
}

var mosqueSlugOpts = helper.SlugOptions{
	Table:       "mosques",
	SlugColumn:  "slug",
	MaxLen:      160,
	DefaultBase: "masjid",
}

// ✅ GET /api/a/mosques?q=&page=&per_page=
func (mc *MosqueController) List(c *fiber.Ctx) error {
	scope, err := helpersAuth.ResolveScope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 100)

	q := scope.Apply(mc.DB.WithContext(c.UserContext()).Model(&model.MosqueModel{}), "id")
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung masjid")
	}
	var rows []model.MosqueModel
	if err := q.Order("name ASC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil masjid")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows)))
}

// ✅ GET /api/a/mosques/:id
func (mc *MosqueController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID masjid tidak valid")
	}
	scope, err := helpersAuth.ResolveScope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !scope.Allows(id) {
		return helper.FromFiberError(c, helpersAuth.ErrMosqueForbidden)
	}

	var m model.MosqueModel
	if err := mc.DB.WithContext(c.UserContext()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Masjid tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil masjid")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// ✅ POST /api/a/mosques (super-admin)
func (mc *MosqueController) Create(c *fiber.Ctx) error {
	var req dto.CreateMosqueRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	base := req.Slug
	if base == "" {
		base = req.Name
	}
	var created model.MosqueModel
	err := mc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		slug, err := helper.GenerateUniqueSlug(c.UserContext(), tx, mosqueSlugOpts, base)
		if err != nil {
			return err
		}
		created = req.ToModel(slug)
		return tx.Create(&created).Error
	})
	if err != nil {
		if status, msg, ok := helper.MapPGError(err); ok {
			return helper.JsonError(c, status, msg)
		}
		mc.Log.Error("create mosque gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat masjid")
	}

	mc.Log.Info("🕌 mosque created", zap.String("id", created.ID.String()), zap.String("slug", created.Slug))
	return helper.JsonCreated(c, "Masjid berhasil dibuat", dto.FromModel(created))
}

// ✅ PATCH /api/a/mosques/:id
func (mc *MosqueController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID masjid tidak valid")
	}
	scope, err := helpersAuth.ResolveScope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !scope.Allows(id) {
		return helper.FromFiberError(c, helpersAuth.ErrMosqueForbidden)
	}

	var req dto.UpdateMosqueRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if fe := helper.ValidateStruct(req); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	var existing model.MosqueModel
	err = mc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Masjid tidak ditemukan")
			}
			return err
		}
		oldName := existing.Name
		req.Apply(&existing)

		// slug eksplisit menang; kalau tidak, ikut nama baru
		if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
			cand := helper.Slugify(*req.Slug, mosqueSlugOpts.MaxLen)
			if cand != existing.Slug {
				slug, err := helper.GenerateUniqueSlug(c.UserContext(), tx, mosqueSlugOpts, cand)
				if err != nil {
					return err
				}
				existing.Slug = slug
			}
		} else if existing.Name != oldName {
			cand := helper.Slugify(existing.Name, mosqueSlugOpts.MaxLen)
			if cand != existing.Slug {
				slug, err := helper.GenerateUniqueSlug(c.UserContext(), tx, mosqueSlugOpts, cand)
				if err != nil {
					return err
				}
				existing.Slug = slug
			}
		}
		return tx.Save(&existing).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.FromFiberError(c, err)
		}
		mc.Log.Error("update mosque gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui masjid")
	}
	return helper.JsonUpdated(c, "Masjid diperbarui", dto.FromModel(existing))
}

// 🔓 GET /api/public/mosques
func (mc *MosqueController) PublicList(c *fiber.Ctx) error {
	var rows []model.MosqueModel
	if err := mc.DB.WithContext(c.UserContext()).
		Select("id", "name", "slug", "city").
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil masjid")
	}
	return helper.JsonOK(c, "ok", dto.ToPublic(rows))
}
