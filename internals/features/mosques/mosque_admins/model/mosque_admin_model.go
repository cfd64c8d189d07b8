package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	Mosque "zakatconnect_backend/internals/features/mosques/mosques/model"
	User "zakatconnect_backend/internals/features/users/user/model"
)

// MosqueAdminModel menghubungkan user (admin/clerk) ke masjid yang dikelolanya.
type MosqueAdminModel struct {
	ID uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`

	MosqueID uuid.UUID          `gorm:"column:mosque_id;type:uuid;not null;uniqueIndex:uq_mosque_admin" json:"mosque_id"`
	Mosque   *Mosque.MosqueModel `gorm:"foreignKey:MosqueID;references:ID" json:"mosque,omitempty"`

	UserID uuid.UUID       `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_mosque_admin" json:"user_id"`
	User   *User.UserModel `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`

	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (MosqueAdminModel) TableName() string {
	return "mosque_admins"
}

func (m *MosqueAdminModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
