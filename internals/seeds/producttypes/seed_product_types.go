package producttypes

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/features/zakat/product_types/model"
)

type ProductTypeSeed struct {
	Name  string          `json:"name"`
	Unit  string          `json:"unit"`
	Price decimal.Decimal `json:"price"`
}

// SeedProductTypesFromJSON: nama yang sudah ada dilewati (harga tidak ditimpa).
func SeedProductTypesFromJSON(ctx context.Context, db *gorm.DB, filePath string, log *zap.Logger) error {
	log.Info("📥 Membaca file product type", zap.String("file", filePath))

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("baca %s: %w", filePath, err)
	}
	var inputs []ProductTypeSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	for _, p := range inputs {
		var cnt int64
		if err := db.WithContext(ctx).Model(&model.ProductTypeModel{}).Where("name = ?", p.Name).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			continue
		}
		row := model.ProductTypeModel{Name: p.Name, Unit: p.Unit, Price: p.Price}
		if err := db.WithContext(ctx).Create(&row).Error; err != nil {
			return fmt.Errorf("insert product type %q: %w", p.Name, err)
		}
		log.Info("✅ product type ditambahkan", zap.String("name", p.Name))
	}
	return nil
}
