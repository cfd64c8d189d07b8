package seeds

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/seeds/mosques"
	"zakatconnect_backend/internals/seeds/producttypes"
	"zakatconnect_backend/internals/seeds/users"
)

// RunAllSeeds membaca data_*.json di dir. Urutan penting: user butuh masjid.
func RunAllSeeds(ctx context.Context, db *gorm.DB, dir string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("seeds")

	//* Mosque
	if err := mosques.SeedMosquesFromJSON(ctx, db, filepath.Join(dir, "data_mosques.json"), log); err != nil {
		return err
	}

	//* User
	if err := users.SeedUsersFromJSON(ctx, db, filepath.Join(dir, "data_users.json"), log); err != nil {
		return err
	}

	//* Product type
	return producttypes.SeedProductTypesFromJSON(ctx, db, filepath.Join(dir, "data_product_types.json"), log)
}
