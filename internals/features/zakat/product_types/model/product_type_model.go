package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductTypeModel: jenis barang zakat in-kind (beras, kurma, ...) + harga per unit.
type ProductTypeModel struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string          `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Unit      string          `gorm:"column:unit;type:varchar(30)" json:"unit"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null;default:0" json:"price"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ProductTypeModel) TableName() string {
	return "product_types"
}

func (p *ProductTypeModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
