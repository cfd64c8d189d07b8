// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authRepo "zakatconnect_backend/internals/features/users/auth/repository"
	authService "zakatconnect_backend/internals/features/users/auth/service"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
)

type Options struct {
	Secret string
	Log    *zap.Logger
	// path yang dilewati (webhook dsb.)
	SkipPaths []string
	Now       func() time.Time
}

func AuthMiddleware(db *gorm.DB, opts Options) fiber.Handler {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("auth")
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	skip := make(map[string]struct{}, len(opts.SkipPaths))
	for _, p := range opts.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		// 1) Skip path tertentu
		if _, ok := skip[c.Path()]; ok {
			return c.Next()
		}

		// 2) Authorization header (atau cookie)
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		ctx := c.UserContext()

		// 3) Blacklist (disimpan sebagai fingerprint)
		blacklisted, err := authRepo.IsTokenBlacklisted(ctx, db, helpersAuth.TokenFingerprint(tokenString, opts.Secret))
		if err != nil {
			log.Error("cek blacklist gagal", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if blacklisted {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
		}

		// 4) Signature + exp
		if opts.Secret == "" {
			log.Error("JWT secret kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}
		claims, err := authService.ParseAccessToken(opts.Secret, tokenString, now())
		if err != nil {
			if errors.Is(err, authService.ErrTokenExpired) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 5) User masih ada & aktif; role diambil dari DB (bukan klaim token)
		user, err := authRepo.FindUserByID(ctx, db, claims.UserID())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			log.Error("load user gagal", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !user.IsActive {
			return fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
		}

		// 6) Masjid yang dikelola
		mosqueIDs, err := authRepo.ActiveMosqueIDs(ctx, db, user.ID)
		if err != nil {
			log.Error("load mosque membership gagal", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}

		helpersAuth.SetCurrentUser(c, helpersAuth.CurrentUser{
			ID:        user.ID,
			Email:     user.Email,
			Role:      user.Role,
			MosqueIDs: mosqueIDs,
		})
		c.Locals(helpersAuth.LocalRawToken, tokenString)
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", errors.New("unauthorized - No token provided")
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errors.New("unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", errors.New("unauthorized - Empty token")
	}
	return tok, nil
}
