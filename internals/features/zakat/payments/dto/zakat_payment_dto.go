package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"zakatconnect_backend/internals/features/zakat/payments/model"
)

type CreatePaymentRequest struct {
	MosqueID uuid.UUID       `json:"mosque_id" validate:"required"`
	Name     string          `json:"name" validate:"omitempty,max=150"`
	Email    string          `json:"email" validate:"omitempty,email,max=255"`
	Amount   decimal.Decimal `json:"amount"`
}

const AnonymousGiver = "Hamba Allah"

func (r *CreatePaymentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		r.Name = AnonymousGiver
	}
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// AmountErrors: rupiah bulat dan > 0 (Snap pakai gross_amount integer).
func (r CreatePaymentRequest) AmountErrors() map[string][]string {
	switch {
	case !r.Amount.IsPositive():
		return map[string][]string{"amount": {"harus lebih dari 0"}}
	case !r.Amount.Equal(r.Amount.Truncate(0)):
		return map[string][]string{"amount": {"harus bilangan bulat rupiah"}}
	}
	return nil
}

type CheckoutResponse struct {
	OrderID     string          `json:"order_id"`
	Amount      decimal.Decimal `json:"amount"`
	SnapToken   string          `json:"snap_token"`
	RedirectURL string          `json:"redirect_url"`
}

type PaymentStatusResponse struct {
	OrderID string          `json:"order_id"`
	Status  string          `json:"status"`
	Amount  decimal.Decimal `json:"amount"`
	PaidAt  *time.Time      `json:"paid_at,omitempty"`
}

func StatusFromModel(p model.ZakatPaymentModel) PaymentStatusResponse {
	return PaymentStatusResponse{OrderID: p.OrderID, Status: p.Status, Amount: p.Amount, PaidAt: p.PaidAt}
}

type PaymentResponse struct {
	ID           uuid.UUID       `json:"id"`
	MosqueID     uuid.UUID       `json:"mosque_id"`
	GiverID      *uuid.UUID      `json:"giver_id,omitempty"`
	GiverName    string          `json:"giver_name"`
	GiverEmail   string          `json:"giver_email,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	OrderID      string          `json:"order_id"`
	Status       string          `json:"status"`
	PaidAt       *time.Time      `json:"paid_at,omitempty"`
	CollectionID *uuid.UUID      `json:"collection_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func FromModels(rows []model.ZakatPaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, PaymentResponse{
			ID:           p.ID,
			MosqueID:     p.MosqueID,
			GiverID:      p.GiverID,
			GiverName:    p.GiverName,
			GiverEmail:   p.GiverEmail,
			Amount:       p.Amount,
			OrderID:      p.OrderID,
			Status:       p.Status,
			PaidAt:       p.PaidAt,
			CollectionID: p.CollectionID,
			CreatedAt:    p.CreatedAt,
		})
	}
	return out
}
