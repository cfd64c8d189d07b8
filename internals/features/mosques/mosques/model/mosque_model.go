package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MosqueModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(150);not null" json:"name"`
	Slug      string    `gorm:"column:slug;type:varchar(160);not null;uniqueIndex" json:"slug"`
	Address   string    `gorm:"column:address;type:text" json:"address"`
	City      string    `gorm:"column:city;type:varchar(100)" json:"city"`
	Region    string    `gorm:"column:region;type:varchar(100)" json:"region"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (MosqueModel) TableName() string {
	return "mosques"
}

func (m *MosqueModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
