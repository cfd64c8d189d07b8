package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	mosqueAdminModel "zakatconnect_backend/internals/features/mosques/mosque_admins/model"
	authModel "zakatconnect_backend/internals/features/users/auth/model"
	userModel "zakatconnect_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func UpdateUserPassword(ctx context.Context, db *gorm.DB, userID uuid.UUID, hash string) error {
	res := db.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{"password_hash": hash, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

/* ====================== MOSQUE MEMBERSHIP ====================== */

// ActiveMosqueIDs: masjid tempat user terdaftar sebagai admin/clerk aktif.
func ActiveMosqueIDs(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.WithContext(ctx).
		Model(&mosqueAdminModel.MosqueAdminModel{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Pluck("mosque_id", &ids).Error
	return ids, err
}

/* ====================== TOKEN BLACKLIST ====================== */

func BlacklistToken(ctx context.Context, db *gorm.DB, token string, expiredAt time.Time) error {
	row := authModel.TokenBlacklist{Token: token, ExpiredAt: expiredAt}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token"}}, DoNothing: true}).
		Create(&row).Error
}

func IsTokenBlacklisted(ctx context.Context, db *gorm.DB, token string) (bool, error) {
	var existing authModel.TokenBlacklist
	err := db.WithContext(ctx).Select("id").Where("token = ?", token).First(&existing).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// PurgeExpiredBlacklist soft-delete token yang expired sebelum `before`, batch per `limit`.
func PurgeExpiredBlacklist(ctx context.Context, db *gorm.DB, before time.Time, limit int) (int64, error) {
	var rows []authModel.TokenBlacklist
	if err := db.WithContext(ctx).
		Select("id").
		Where("expired_at < ?", before).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).Unscoped().Delete(&rows)
	return res.RowsAffected, res.Error
}
