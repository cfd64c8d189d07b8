package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BeneficiaryStatusPending  = "pending"
	BeneficiaryStatusApproved = "approved"
	BeneficiaryStatusRejected = "rejected"
)

type BeneficiaryModel struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	MosqueID      uuid.UUID `gorm:"column:mosque_id;type:uuid;not null;index" json:"mosque_id"`
	Code          string    `gorm:"column:code;type:varchar(32);not null;uniqueIndex" json:"code"`
	Name          string    `gorm:"column:name;type:varchar(150);not null" json:"name"`
	Address       string    `gorm:"column:address;type:text" json:"address"`
	City          string    `gorm:"column:city;type:varchar(100)" json:"city"`
	FamilyMembers int       `gorm:"column:family_members;not null;default:1" json:"family_members"`
	Status        string    `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BeneficiaryModel) TableName() string {
	return "beneficiaries"
}

func (b *BeneficiaryModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Code == "" {
		b.Code = NewBeneficiaryCode()
	}
	if b.Status == "" {
		b.Status = BeneficiaryStatusPending
	}
	return nil
}

// NewBeneficiaryCode → "BNF-1A2B3C4D"
func NewBeneficiaryCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BNF-" + strings.ToUpper(raw[:8])
}
