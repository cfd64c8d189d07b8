package users

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"

	mosqueAdminModel "zakatconnect_backend/internals/features/mosques/mosque_admins/model"
	mosqueModel "zakatconnect_backend/internals/features/mosques/mosques/model"
	authService "zakatconnect_backend/internals/features/users/auth/service"
	"zakatconnect_backend/internals/features/users/user/model"
)

type UserSeed struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
	// slug masjid yang dikelola (admin/clerk)
	Mosques []string `json:"mosques"`
}

// SeedUsersFromJSON: email yang sudah ada dilewati; masjid harus sudah di-seed.
func SeedUsersFromJSON(ctx context.Context, db *gorm.DB, filePath string, log *zap.Logger) error {
	log.Info("📥 Membaca file user", zap.String("file", filePath))

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("baca %s: %w", filePath, err)
	}
	var inputs []UserSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	for _, data := range inputs {
		email := strings.ToLower(strings.TrimSpace(data.Email))
		var existing model.UserModel
		err := db.WithContext(ctx).Where("LOWER(email) = ?", email).First(&existing).Error
		if err == nil {
			log.Info("ℹ️ user sudah ada, dilewati", zap.String("email", email))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 🔐 hash password sebelum disimpan
		hash, err := authService.HashPassword(data.Password)
		if err != nil {
			return fmt.Errorf("hash password %q: %w", email, err)
		}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			u := model.UserModel{Email: email, FullName: data.FullName, PasswordHash: hash, Role: data.Role, IsActive: true}
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
			for _, slug := range data.Mosques {
				var m mosqueModel.MosqueModel
				if err := tx.Select("id").Where("slug = ?", slug).First(&m).Error; err != nil {
					return fmt.Errorf("masjid %q: %w", slug, err)
				}
				if err := tx.Create(&mosqueAdminModel.MosqueAdminModel{MosqueID: m.ID, UserID: u.ID, IsActive: true}).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("insert user %q: %w", email, err)
		}
		log.Info("✅ user ditambahkan", zap.String("email", email), zap.String("role", data.Role))
	}
	return nil
}
