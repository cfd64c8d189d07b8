package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusExpired  = "expired"
	PaymentStatusCanceled = "canceled"
)

// ZakatPaymentModel: pembayaran zakat online via Midtrans Snap.
// Saat settlement, satu baris zakat_collections (cash) dibuat dan di-link lewat CollectionID.
type ZakatPaymentModel struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	MosqueID     uuid.UUID         `gorm:"column:mosque_id;type:uuid;not null;index" json:"mosque_id"`
	GiverID      *uuid.UUID        `gorm:"column:giver_id;type:uuid" json:"giver_id,omitempty"`
	GiverName    string            `gorm:"column:giver_name;type:varchar(150);not null" json:"giver_name"`
	GiverEmail   string            `gorm:"column:giver_email;type:varchar(255)" json:"giver_email,omitempty"`
	Amount       decimal.Decimal   `gorm:"column:amount;type:numeric(14,2);not null" json:"amount"`
	OrderID      string            `gorm:"column:order_id;type:varchar(100);not null;uniqueIndex" json:"order_id"`
	Status       string            `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentToken string            `gorm:"column:payment_token;type:text" json:"payment_token,omitempty"`
	PaidAt       *time.Time        `gorm:"column:paid_at" json:"paid_at,omitempty"`
	CollectionID *uuid.UUID        `gorm:"column:collection_id;type:uuid" json:"collection_id,omitempty"`
	Meta         datatypes.JSONMap `gorm:"column:meta;type:jsonb" json:"meta,omitempty"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ZakatPaymentModel) TableName() string {
	return "zakat_payments"
}

func (p *ZakatPaymentModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = PaymentStatusPending
	}
	return nil
}

func (p ZakatPaymentModel) IsPaid() bool { return p.Status == PaymentStatusPaid }

// IsOpen: masih bisa berubah status oleh webhook.
func (p ZakatPaymentModel) IsOpen() bool { return p.Status == PaymentStatusPending }
