package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"zakatconnect_backend/internals/features/users/auth/service"
	helper "zakatconnect_backend/internals/helpers"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
)

type AuthController struct {
	Svc *service.AuthService
	Log *zap.Logger
}

func NewAuthController(svc *service.AuthService, log *zap.Logger) *AuthController {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthController{Svc: svc, Log: log.Named("auth")}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Email = strings.TrimSpace(req.Email)
	if fe := helper.ValidateStruct(req); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	res, err := ac.Svc.Login(c.UserContext(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	case errors.Is(err, service.ErrUserInactive):
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	case err != nil:
		ac.Log.Error("login gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal login")
	}

	ac.Log.Info("🔑 login", zap.String("user_id", res.User.ID.String()), zap.String("role", res.User.Role))
	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"access_token": res.AccessToken,
		"token_type":   "Bearer",
		"expires_at":   res.ExpiresAt,
		"user": fiber.Map{
			"id":         res.User.ID,
			"email":      res.User.Email,
			"full_name":  res.User.FullName,
			"role":       res.User.Role,
			"mosque_ids": res.MosqueIDs,
		},
	})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw, _ := c.Locals(helpersAuth.LocalRawToken).(string)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if err := ac.Svc.Logout(c.UserContext(), raw); err != nil {
		ac.Log.Error("blacklist token gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout")
	}
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	u, ok := helpersAuth.GetCurrentUser(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"id":           u.ID,
		"email":        u.Email,
		"role":         u.Role,
		"mosque_ids":   u.MosqueIDs,
		"capabilities": u.Capabilities.List(),
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	u, ok := helpersAuth.GetCurrentUser(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if fe := helper.ValidateStruct(req); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	err := ac.Svc.ChangePassword(c.UserContext(), u.ID, req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password incorrect")
	case errors.Is(err, service.ErrWeakPassword):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case err != nil:
		ac.Log.Error("change password gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}
	return helper.JsonUpdated(c, "Password changed successfully", nil)
}
