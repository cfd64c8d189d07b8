package model

import (
	"time"

	"gorm.io/gorm"
)

// TokenBlacklist: access token yang sudah logout; dicek AuthMiddleware tiap request.
type TokenBlacklist struct {
	ID        uint           `gorm:"column:id;primaryKey" json:"id"`
	Token     string         `gorm:"column:token;type:text;not null;unique" json:"-"`
	ExpiredAt time.Time      `gorm:"column:expired_at;not null" json:"expired_at"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
