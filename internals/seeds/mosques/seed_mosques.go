package mosques

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/features/mosques/mosques/model"
	helper "zakatconnect_backend/internals/helpers"
)

type MosqueSeed struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Address string `json:"address"`
	City    string `json:"city"`
	Region  string `json:"region"`
}

// SeedMosquesFromJSON: slug yang sudah ada dilewati.
func SeedMosquesFromJSON(ctx context.Context, db *gorm.DB, filePath string, log *zap.Logger) error {
	log.Info("📥 Membaca file masjid", zap.String("file", filePath))

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("baca %s: %w", filePath, err)
	}
	var inputs []MosqueSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	for _, m := range inputs {
		slug := m.Slug
		if slug == "" {
			slug = helper.Slugify(m.Name, 160)
		}
		var existing model.MosqueModel
		err := db.WithContext(ctx).Where("slug = ?", slug).First(&existing).Error
		if err == nil {
			log.Info("ℹ️ masjid sudah ada, dilewati", zap.String("slug", slug))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		row := model.MosqueModel{Name: m.Name, Slug: slug, Address: m.Address, City: m.City, Region: m.Region}
		if err := db.WithContext(ctx).Create(&row).Error; err != nil {
			return fmt.Errorf("insert masjid %q: %w", slug, err)
		}
		log.Info("✅ masjid ditambahkan", zap.String("slug", slug))
	}
	return nil
}
