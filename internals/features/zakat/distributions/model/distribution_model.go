package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DistributionStatusPending  = "pending"
	DistributionStatusApproved = "approved"
	DistributionStatusRejected = "rejected"

	// data lama memakai "completed" untuk distribusi yang sudah disetujui
	distributionStatusCompletedLegacy = "completed"

	DistributionTypeCash   = "cash"
	DistributionTypeInKind = "in_kind"
)

type DistributionModel struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	MosqueID      uuid.UUID         `gorm:"column:mosque_id;type:uuid;not null;index" json:"mosque_id"`
	BeneficiaryID uuid.UUID         `gorm:"column:beneficiary_id;type:uuid;not null;index" json:"beneficiary_id"`
	Amount        decimal.Decimal   `gorm:"column:amount;type:numeric(14,2);not null;default:0" json:"amount"`
	Type          string            `gorm:"column:type;type:varchar(10);not null;default:'cash'" json:"type"`
	Status        string            `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
	DistributedOn time.Time         `gorm:"column:distribution_date;type:date;not null" json:"distribution_date"`
	Meta          datatypes.JSONMap `gorm:"column:meta;type:jsonb" json:"meta,omitempty"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DistributionModel) TableName() string {
	return "zakat_distributions"
}

func (m *DistributionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = DistributionStatusPending
	}
	if m.Type == "" {
		m.Type = DistributionTypeCash
	}
	return nil
}

// NormalizeStatus menyeragamkan status dari storage (case, alias lama).
func NormalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == distributionStatusCompletedLegacy {
		return DistributionStatusApproved
	}
	return s
}

func IsValidStatus(s string) bool {
	switch s {
	case DistributionStatusPending, DistributionStatusApproved, DistributionStatusRejected:
		return true
	}
	return false
}

func (m DistributionModel) IsApproved() bool {
	return NormalizeStatus(m.Status) == DistributionStatusApproved
}

func (m DistributionModel) IsPending() bool {
	return NormalizeStatus(m.Status) == DistributionStatusPending
}
