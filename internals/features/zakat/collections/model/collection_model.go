package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CollectionTypeCash   = "cash"
	CollectionTypeInKind = "in_kind"
)

// CollectionModel: satu penerimaan zakat. Insert-only.
// Untuk in_kind, Amount = kuantitas barang (nilai = kuantitas × harga product type).
type CollectionModel struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	MosqueID      uuid.UUID       `gorm:"column:mosque_id;type:uuid;not null;index" json:"mosque_id"`
	GiverID       *uuid.UUID      `gorm:"column:giver_id;type:uuid" json:"giver_id,omitempty"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null;default:0" json:"amount"`
	Type          string          `gorm:"column:type;type:varchar(10);not null" json:"type"`
	ProductTypeID *uuid.UUID      `gorm:"column:product_type_id;type:uuid" json:"product_type_id,omitempty"`
	CollectedOn   time.Time       `gorm:"column:collection_date;type:date;not null" json:"collection_date"`
	Notes         string          `gorm:"column:notes;type:text" json:"notes,omitempty"`
	RecordedBy    *uuid.UUID      `gorm:"column:recorded_by;type:uuid" json:"recorded_by,omitempty"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (CollectionModel) TableName() string {
	return "zakat_collections"
}

func (m *CollectionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func IsValidType(t string) bool {
	return t == CollectionTypeCash || t == CollectionTypeInKind
}
