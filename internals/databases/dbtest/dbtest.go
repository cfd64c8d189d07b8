// Package dbtest menyiapkan database SQLite in-memory untuk test repository/handler.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	mosqueAdminModel "zakatconnect_backend/internals/features/mosques/mosque_admins/model"
	mosqueModel "zakatconnect_backend/internals/features/mosques/mosques/model"
	authModel "zakatconnect_backend/internals/features/users/auth/model"
	userModel "zakatconnect_backend/internals/features/users/user/model"
	beneficiaryModel "zakatconnect_backend/internals/features/zakat/beneficiaries/model"
	collectionModel "zakatconnect_backend/internals/features/zakat/collections/model"
	distributionModel "zakatconnect_backend/internals/features/zakat/distributions/model"
	giverModel "zakatconnect_backend/internals/features/zakat/givers/model"
	paymentModel "zakatconnect_backend/internals/features/zakat/payments/model"
	productTypeModel "zakatconnect_backend/internals/features/zakat/product_types/model"
)

// New: DB baru per test, skema dari model gorm (bukan migrasi SQL postgres).
func New(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&mosqueModel.MosqueModel{},
		&userModel.UserModel{},
		&mosqueAdminModel.MosqueAdminModel{},
		&authModel.TokenBlacklist{},
		&productTypeModel.ProductTypeModel{},
		&giverModel.GiverModel{},
		&beneficiaryModel.BeneficiaryModel{},
		&collectionModel.CollectionModel{},
		&distributionModel.DistributionModel{},
		&paymentModel.ZakatPaymentModel{},
	))
	return db
}

// SeedMosque membuat satu masjid dan mengembalikan ID-nya.
func SeedMosque(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	m := mosqueModel.MosqueModel{Name: name, Slug: fmt.Sprintf("%s-%s", name, uuid.NewString()[:8])}
	require.NoError(t, db.Create(&m).Error)
	return m.ID
}

// SeedBeneficiary membuat penerima berstatus pending.
func SeedBeneficiary(t *testing.T, db *gorm.DB, mosqueID uuid.UUID, name string) beneficiaryModel.BeneficiaryModel {
	t.Helper()
	b := beneficiaryModel.BeneficiaryModel{MosqueID: mosqueID, Name: name, FamilyMembers: 1}
	require.NoError(t, db.Create(&b).Error)
	return b
}

// SeedUser membuat user aktif dengan password bcrypt (cost minimum biar test cepat).
func SeedUser(t *testing.T, db *gorm.DB, email, password, role string) userModel.UserModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := userModel.UserModel{Email: email, FullName: email, PasswordHash: string(hash), Role: role, IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// AssignMosque menghubungkan user ke masjid (mosque_admins aktif).
func AssignMosque(t *testing.T, db *gorm.DB, userID, mosqueID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&mosqueAdminModel.MosqueAdminModel{UserID: userID, MosqueID: mosqueID, IsActive: true}).Error)
}
