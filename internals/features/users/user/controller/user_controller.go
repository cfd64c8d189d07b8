package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/constants"
	mosqueAdminModel "zakatconnect_backend/internals/features/mosques/mosque_admins/model"
	authService "zakatconnect_backend/internals/features/users/auth/service"
	"zakatconnect_backend/internals/features/users/user/dto"
	"zakatconnect_backend/internals/features/users/user/model"
	helper "zakatconnect_backend/internals/helpers"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
)

type UserController struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewUserController(db *gorm.DB, log *zap.Logger) *UserController {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserController{DB: db, Log: log.Named("users")}
}

// usersInScope: super-admin → semua; selain itu user yang aktif di masjid scope.
func (uc *UserController) usersInScope(c *fiber.Ctx) (*gorm.DB, error) {
	scope, err := helpersAuth.ResolveScope(c)
	if err != nil {
		return nil, err
	}
	q := uc.DB.WithContext(c.UserContext()).Model(&model.UserModel{})
	if scope.All {
		return q, nil
	}
	members := scope.Apply(
		uc.DB.Model(&mosqueAdminModel.MosqueAdminModel{}).Select("user_id").Where("is_active = ?", true),
		"mosque_id",
	)
	return q.Where("id IN (?)", members), nil
}

// GET /api/a/users?q=&page=&per_page=
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	q, err := uc.usersInScope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if s := strings.ToLower(strings.TrimSpace(c.Query("q"))); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?", like, like)
	}
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}
	var users []model.UserModel
	if err := q.Order("full_name ASC").Offset(p.Offset).Limit(p.Limit).Find(&users).Error; err != nil {
		uc.Log.Error("list users gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve users")
	}
	return helper.JsonList(c, "Users fetched successfully", dto.FromModels(users),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(users)))
}

// GET /api/a/users/:id
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	q, err := uc.usersInScope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var user model.UserModel
	if err := q.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve user")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(user))
}

// POST /api/a/users
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	actor, ok := helpersAuth.GetCurrentUser(c)
	if !ok {
		return helper.FromFiberError(c, helpersAuth.ErrUnauthenticated)
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	// hanya super-admin yang boleh membuat super-admin
	if req.Role == constants.RoleSuperAdmin && actor.Role != constants.RoleSuperAdmin {
		return helper.JsonError(c, fiber.StatusForbidden, "Tidak boleh membuat super-admin")
	}

	// non super-admin wajib menautkan user ke masjid miliknya
	var mosqueID uuid.UUID
	if req.Role != constants.RoleSuperAdmin {
		id, err := helpersAuth.ResolveWriteMosque(c, req.MosqueID)
		switch {
		case err == nil:
			mosqueID = id
		case actor.Role == constants.RoleSuperAdmin && errors.Is(err, helpersAuth.ErrMosqueContextMissing):
			// super-admin boleh membuat user dulu, ditautkan belakangan
		default:
			return helper.FromFiberError(c, err)
		}
	}

	hash, err := authService.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	user := model.UserModel{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}
	err = uc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&model.UserModel{}).Where("LOWER(email) = ?", user.Email).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Email sudah terdaftar")
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if mosqueID != uuid.Nil {
			return tx.Create(&mosqueAdminModel.MosqueAdminModel{MosqueID: mosqueID, UserID: user.ID, IsActive: true}).Error
		}
		return nil
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.FromFiberError(c, err)
		}
		if status, msg, ok := helper.MapPGError(err); ok {
			return helper.JsonError(c, status, msg)
		}
		uc.Log.Error("create user gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	uc.Log.Info("👤 user created", zap.String("id", user.ID.String()), zap.String("role", user.Role))
	return helper.JsonCreated(c, "User created successfully", dto.FromModel(user))
}

// PATCH /api/a/users/:id
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	actor, ok := helpersAuth.GetCurrentUser(c)
	if !ok {
		return helper.FromFiberError(c, helpersAuth.ErrUnauthenticated)
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fe := helper.ValidateStruct(req); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	if req.Role != nil && *req.Role == constants.RoleSuperAdmin && actor.Role != constants.RoleSuperAdmin {
		return helper.JsonError(c, fiber.StatusForbidden, "Tidak boleh menjadikan super-admin")
	}
	updates := req.Updates()
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	q, err := uc.usersInScope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var user model.UserModel
	if err := q.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve user")
	}
	if user.Role == constants.RoleSuperAdmin && actor.Role != constants.RoleSuperAdmin {
		return helper.JsonError(c, fiber.StatusForbidden, "Tidak boleh mengubah super-admin")
	}

	if err := uc.DB.WithContext(c.UserContext()).Model(&user).Updates(updates).Error; err != nil {
		uc.Log.Error("update user gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	if err := uc.DB.WithContext(c.UserContext()).First(&user, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve user")
	}
	return helper.JsonUpdated(c, "User updated successfully", dto.FromModel(user))
}
