package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GiverModel struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	MosqueID  *uuid.UUID `gorm:"column:mosque_id;type:uuid;index" json:"mosque_id,omitempty"`
	Name      string     `gorm:"column:name;type:varchar(150);not null" json:"name"`
	Phone     string     `gorm:"column:phone;type:varchar(30)" json:"phone"`
	Email     string     `gorm:"column:email;type:varchar(255)" json:"email"`
	Address   string     `gorm:"column:address;type:text" json:"address"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (GiverModel) TableName() string {
	return "givers"
}

func (g *GiverModel) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
