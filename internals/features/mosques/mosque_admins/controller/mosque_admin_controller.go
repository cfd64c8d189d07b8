package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/constants"
	"zakatconnect_backend/internals/features/mosques/mosque_admins/dto"
	"zakatconnect_backend/internals/features/mosques/mosque_admins/model"
	userModel "zakatconnect_backend/internals/features/users/user/model"
	helper "zakatconnect_backend/internals/helpers"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
)

type MosqueAdminController struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewMosqueAdminController(db *gorm.DB, log *zap.Logger) *MosqueAdminController {
	if log == nil {
		log = zap.NewNop()
	}
	return &MosqueAdminController{DB: db, Log: log.Named("mosque_admins")}
}

// ✅ POST /api/a/mosque-admins → tambah user sebagai pengelola masjid
func (ctrl *MosqueAdminController) AddAdmin(c *fiber.Ctx) error {
	var body dto.MosqueAdminRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if fe := helper.ValidateStruct(body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	scope, err := helpersAuth.ResolveScope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !scope.Allows(body.MosqueID) {
		return helper.FromFiberError(c, helpersAuth.ErrMosqueForbidden)
	}

	var admin model.MosqueAdminModel
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var user userModel.UserModel
		if err := tx.Select("id", "role").First(&user, "id = ?", body.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
			}
			return err
		}
		if user.Role == constants.RoleSuperAdmin {
			return fiber.NewError(fiber.StatusBadRequest, "Super-admin tidak perlu ditautkan ke masjid")
		}

		// Cek apakah sudah ada (aktif / pernah dicabut)
		res := tx.Where("mosque_id = ? AND user_id = ?", body.MosqueID, body.UserID).First(&admin)
		switch {
		case res.Error == nil && admin.IsActive:
			return fiber.NewError(fiber.StatusConflict, "User sudah jadi admin di masjid ini")
		case res.Error == nil:
			admin.IsActive = true
			return tx.Model(&admin).Update("is_active", true).Error
		case !errors.Is(res.Error, gorm.ErrRecordNotFound):
			return res.Error
		}

		admin = model.MosqueAdminModel{MosqueID: body.MosqueID, UserID: body.UserID, IsActive: true}
		return tx.Create(&admin).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.FromFiberError(c, err)
		}
		if status, msg, ok := helper.MapPGError(err); ok {
			return helper.JsonError(c, status, msg)
		}
		ctrl.Log.Error("add admin gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menambahkan admin")
	}
	return helper.JsonCreated(c, "Admin berhasil ditambahkan", dto.ToMosqueAdminResponse(admin))
}

// ✅ GET /api/a/mosque-admins?mosque_id= → admin aktif sebuah masjid
func (ctrl *MosqueAdminController) GetAdminsByMosque(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("mosque_id"))
	if raw == "" {
		return helper.FromFiberError(c, helpersAuth.ErrMosqueContextMissing)
	}
	// ResolveScope sudah mempersempit ke ?mosque_id (403 kalau di luar scope)
	scope, err := helpersAuth.ResolveScope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	mosqueID, _ := uuid.Parse(raw)
	if !scope.Allows(mosqueID) {
		return helper.FromFiberError(c, helpersAuth.ErrMosqueForbidden)
	}

	var admins []model.MosqueAdminModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Preload("User").
		Where("mosque_id = ? AND is_active = ?", mosqueID, true).
		Order("created_at ASC").
		Find(&admins).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar admin aktif")
	}
	return helper.JsonOK(c, "Daftar admin aktif berhasil diambil", dto.ToMosqueAdminResponses(admins))
}

// ✅ PUT /api/a/mosque-admins/revoke → nonaktifkan
func (ctrl *MosqueAdminController) RevokeAdmin(c *fiber.Ctx) error {
	var body dto.MosqueAdminRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if fe := helper.ValidateStruct(body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	scope, err := helpersAuth.ResolveScope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !scope.Allows(body.MosqueID) {
		return helper.FromFiberError(c, helpersAuth.ErrMosqueForbidden)
	}

	result := ctrl.DB.WithContext(c.UserContext()).Model(&model.MosqueAdminModel{}).
		Where("user_id = ? AND mosque_id = ? AND is_active = ?", body.UserID, body.MosqueID, true).
		Update("is_active", false)
	if result.Error != nil {
		ctrl.Log.Error("revoke admin gagal", zap.Error(result.Error))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menonaktifkan admin")
	}
	if result.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Tidak ditemukan admin aktif untuk user ini di masjid ini")
	}
	return helper.JsonOK(c, "Admin berhasil dinonaktifkan", nil)
}
