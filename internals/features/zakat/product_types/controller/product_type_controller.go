package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/features/zakat/product_types/dto"
	"zakatconnect_backend/internals/features/zakat/product_types/model"
	helper "zakatconnect_backend/internals/helpers"
)

type ProductTypeController struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewProductTypeController(db *gorm.DB, log *zap.Logger) *ProductTypeController {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductTypeController{DB: db, Log: log.Named("product_types")}
}

// GET /api/a/product-types?q=
// Katalog global, tidak per masjid.
func (ctrl *ProductTypeController) List(c *fiber.Ctx) error {
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.ProductTypeModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	var rows []model.ProductTypeModel
	if err := q.Order("name ASC").Find(&rows).Error; err != nil {
		ctrl.Log.Error("list product types gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil jenis barang")
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// POST /api/a/product-types
func (ctrl *ProductTypeController) Create(c *fiber.Ctx) error {
	var req dto.CreateProductTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	if fe := req.PriceErrors(); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	m := req.ToModel()
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		ctrl.Log.Error("create product type gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat jenis barang")
	}
	return helper.JsonCreated(c, "Jenis barang berhasil dibuat", dto.FromModel(m))
}

// PATCH /api/a/product-types/:id
func (ctrl *ProductTypeController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID jenis barang tidak valid")
	}

	var req dto.UpdateProductTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if fe := helper.ValidateStruct(req); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	if fe := req.PriceErrors(); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	if req.Empty() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	var m model.ProductTypeModel
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Jenis barang tidak ditemukan")
			}
			return err
		}
		req.Apply(&m)
		return tx.Save(&m).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.FromFiberError(c, err)
		}
		ctrl.Log.Error("update product type gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui jenis barang")
	}

	ctrl.Log.Info("product type updated", zap.String("id", m.ID.String()), zap.String("price", m.Price.StringFixed(2)))
	return helper.JsonUpdated(c, "Jenis barang diperbarui", dto.FromModel(m))
}
